package model

import "time"

// CategoryType indicates whether a category is for income or expense transactions.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a spending or income category supplied by the caller.
// The extraction core treats the list as read-only; ids must be unique.
type Category struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Icon      string
	Type      CategoryType
	IsActive  bool
}
