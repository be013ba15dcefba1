package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ndhuy/tienoi/internal/model"
)

// SaveTransaction persists a confirmed transaction. Missing id and
// created-at are filled in; everything else must already be valid since
// only the confirmation flow calls this.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if txn != nil && txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, date, type, amount, category_id, category_name, note, status, source, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.Date, string(txn.Type), txn.Amount,
		nullableString(txn.CategoryID), txn.CategoryName, txn.Note,
		string(txn.Status), string(txn.Source), txn.Confidence, txn.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	slog.Info("saved transaction",
		"id", txn.ID,
		"type", txn.Type,
		"amount", txn.Amount,
		"category", txn.CategoryName)
	return nil
}

// GetTransactions returns the most recent confirmed transactions, newest
// first. A non-positive limit returns everything.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, date, type, amount, category_id, category_name, note, status, source, confidence, created_at
		FROM transactions
		ORDER BY date DESC, created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var txType, status, source string
		var categoryID *string
		if err := rows.Scan(
			&txn.ID, &txn.Date, &txType, &txn.Amount,
			&categoryID, &txn.CategoryName, &txn.Note,
			&status, &source, &txn.Confidence, &txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Type = model.CategoryType(txType)
		txn.Status = model.TransactionStatus(status)
		txn.Source = model.ParseSource(source)
		if categoryID != nil {
			txn.CategoryID = *categoryID
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
