package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ndhuy/tienoi/internal/model"
)

// ExpectedSchemaVersion is the latest schema version the application
// expects. A database that cannot reach it is a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS categories (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
					icon TEXT DEFAULT '',
					is_active INTEGER DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(name, type)
				)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					date DATETIME NOT NULL,
					type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
					amount REAL NOT NULL CHECK (amount > 0),
					category_id TEXT,
					category_name TEXT NOT NULL,
					note TEXT,
					status TEXT NOT NULL,
					source TEXT NOT NULL,
					confidence REAL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (category_id) REFERENCES categories(id)
				)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,
				`CREATE INDEX idx_transactions_category ON transactions(category_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Seed default Vietnamese categories",
		Up:          seedDefaultCategories,
	},
}

// defaultCategories is the out-of-the-box category list. "Khác" exists for
// both types so the fallback parser's degradation chain has somewhere to
// land without guessing.
var defaultCategories = []struct {
	name string
	typ  model.CategoryType
	icon string
}{
	{"Ăn uống", model.CategoryTypeExpense, "🍜"},
	{"Di chuyển", model.CategoryTypeExpense, "🛵"},
	{"Hóa đơn", model.CategoryTypeExpense, "🧾"},
	{"Mua sắm", model.CategoryTypeExpense, "🛍️"},
	{"Giải trí", model.CategoryTypeExpense, "🎬"},
	{"Sức khỏe", model.CategoryTypeExpense, "💊"},
	{"Giáo dục", model.CategoryTypeExpense, "📚"},
	{"Khác", model.CategoryTypeExpense, "📦"},
	{"Lương", model.CategoryTypeIncome, "💵"},
	{"Thưởng", model.CategoryTypeIncome, "🎁"},
	{"Khác", model.CategoryTypeIncome, "💰"},
}

func seedDefaultCategories(tx *sql.Tx) error {
	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO categories (id, name, type, icon, is_active)
		VALUES (?, ?, ?, ?, 1)`)
	if err != nil {
		return fmt.Errorf("failed to prepare seed statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, cat := range defaultCategories {
		if _, err := stmt.Exec(uuid.NewString(), cat.name, string(cat.typ), cat.icon); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.name, err)
		}
	}
	return nil
}

// Migrate applies all pending migrations in order.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO schema_migrations (version, description) VALUES (?, ?)`,
			migration.Version, migration.Description,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Info("applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	return nil
}

func (s *SQLiteStorage) schemaVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}
