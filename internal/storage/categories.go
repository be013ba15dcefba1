package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ndhuy/tienoi/internal/model"
)

// GetCategories returns all active categories, expense first then income,
// in name order within each type.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, type, icon, is_active, created_at
		FROM categories
		WHERE is_active = 1
		ORDER BY type, name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByName returns an active category by name, or nil when none
// exists.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, type, icon, is_active, created_at
		FROM categories
		WHERE name = ? AND is_active = 1`

	row := s.db.QueryRowContext(ctx, query, name)
	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateCategory creates a new category, reactivating a soft-deleted one
// with the same name and type if it exists.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name string, categoryType model.CategoryType, icon string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	if err := validateCategoryType(categoryType); err != nil {
		return nil, err
	}

	existingQuery := `
		SELECT id, name, type, icon, is_active, created_at
		FROM categories
		WHERE name = ? AND type = ?`

	row := s.db.QueryRowContext(ctx, existingQuery, name, string(categoryType))
	existing, err := scanCategory(row)
	switch {
	case err == nil:
		if !existing.IsActive {
			if _, err := s.db.ExecContext(ctx,
				`UPDATE categories SET is_active = 1 WHERE id = ?`, existing.ID); err != nil {
				return nil, fmt.Errorf("failed to reactivate category: %w", err)
			}
			existing.IsActive = true
			slog.Info("reactivated existing category", "name", name)
		}
		return &existing, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	cat := model.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      categoryType,
		Icon:      icon,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, type, icon, is_active, created_at)
		VALUES (?, ?, ?, ?, 1, ?)`,
		cat.ID, cat.Name, string(cat.Type), cat.Icon, cat.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("created category", "name", name, "type", categoryType)
	return &cat, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (model.Category, error) {
	var cat model.Category
	var catType string
	var isActive int
	if err := row.Scan(&cat.ID, &cat.Name, &catType, &cat.Icon, &isActive, &cat.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Category{}, err
		}
		return model.Category{}, fmt.Errorf("failed to scan category: %w", err)
	}
	cat.Type = model.CategoryType(catType)
	cat.IsActive = isActive == 1
	return cat, nil
}
