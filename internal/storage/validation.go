package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ndhuy/tienoi/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidCategory    = errors.New("invalid category")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: nil", ErrInvalidTransaction)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidTransaction)
	}
	if txn.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	if txn.Type != model.CategoryTypeIncome && txn.Type != model.CategoryTypeExpense {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, txn.Type)
	}
	if txn.CategoryName == "" {
		return fmt.Errorf("%w: missing category name", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	return nil
}

func validateCategoryType(t model.CategoryType) error {
	if t != model.CategoryTypeIncome && t != model.CategoryTypeExpense {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCategory, t)
	}
	return nil
}
