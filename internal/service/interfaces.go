// Package service defines the interfaces the application layers share.
package service

import (
	"context"
	"time"

	"github.com/ndhuy/tienoi/internal/model"
)

// Storage defines the contract for the persistence layer. Only confirmed
// transactions ever reach it; parsed candidates live and die in memory.
type Storage interface {
	// Category operations
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, name string, categoryType model.CategoryType, icon string) (*model.Category, error)

	// Transaction operations
	SaveTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransactions(ctx context.Context, limit int) ([]model.Transaction, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// TransactionParser is the remote AI parser collaborator. Implementations
// may fail or return nothing; the caller is expected to fall back to the
// rule-based pipeline when that happens.
type TransactionParser interface {
	ParseTransactions(ctx context.Context, message string, categories []model.Category) ([]model.ParsedTransaction, error)
}

// Replier is the remote conversational reply collaborator, used for small
// talk and unclear messages only.
type Replier interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Prompter is the confirmation surface shown before anything is persisted.
// A nil transaction with a nil error means the user skipped the candidate.
type Prompter interface {
	ConfirmTransaction(ctx context.Context, parsed model.ParsedTransaction, categories []model.Category) (*model.Transaction, error)
	BeginBatch(total int)
	EndBatch()
}

// RetryOptions configures retry behavior for remote calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
