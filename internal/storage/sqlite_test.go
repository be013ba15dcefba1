package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ndhuy/tienoi/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrate_SeedsDefaultCategories(t *testing.T) {
	store := newTestStorage(t)

	categories, err := store.GetCategories(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	byType := map[model.CategoryType]int{}
	hasOther := map[model.CategoryType]bool{}
	for _, cat := range categories {
		byType[cat.Type]++
		if cat.Name == "Khác" {
			hasOther[cat.Type] = true
		}
		assert.NotEmpty(t, cat.ID)
		assert.True(t, cat.IsActive)
	}

	assert.Greater(t, byType[model.CategoryTypeExpense], 0)
	assert.Greater(t, byType[model.CategoryTypeIncome], 0)
	assert.True(t, hasOther[model.CategoryTypeExpense], `expense "Khác" must exist for degradation`)
	assert.True(t, hasOther[model.CategoryTypeIncome], `income "Khác" must exist for degradation`)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))

	categories, err := store.GetCategories(context.Background())
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, cat := range categories {
		key := cat.Name + "/" + string(cat.Type)
		assert.False(t, seen[key], "duplicate seeded category %s", key)
		seen[key] = true
	}
}

func TestCreateCategory(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, "Thú cưng", model.CategoryTypeExpense, "🐱")
	require.NoError(t, err)
	assert.NotEmpty(t, cat.ID)
	assert.Equal(t, "Thú cưng", cat.Name)

	// Creating again returns the existing row instead of erroring.
	again, err := store.CreateCategory(ctx, "Thú cưng", model.CategoryTypeExpense, "🐱")
	require.NoError(t, err)
	assert.Equal(t, cat.ID, again.ID)
}

func TestCreateCategory_RejectsBadInput(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateCategory(ctx, "  ", model.CategoryTypeExpense, "")
	assert.Error(t, err)

	_, err = store.CreateCategory(ctx, "Đầu tư", model.CategoryType("saving"), "")
	assert.Error(t, err)
}

func TestGetCategoryByName(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	cat, err := store.GetCategoryByName(ctx, "Ăn uống")
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, model.CategoryTypeExpense, cat.Type)

	missing, err := store.GetCategoryByName(ctx, "Không tồn tại")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaveAndGetTransactions(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	cat, err := store.GetCategoryByName(ctx, "Ăn uống")
	require.NoError(t, err)
	require.NotNil(t, cat)

	txn := &model.Transaction{
		Date:         time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		Type:         model.CategoryTypeExpense,
		Amount:       50_000,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Note:         "Ăn phở",
		Status:       model.StatusUserConfirmed,
		Source:       model.SourceFallback,
		Confidence:   0.85,
	}
	require.NoError(t, store.SaveTransaction(ctx, txn))
	assert.NotEmpty(t, txn.ID, "id is assigned on save")

	older := &model.Transaction{
		Date:         time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Type:         model.CategoryTypeIncome,
		Amount:       15_000_000,
		CategoryName: "Lương",
		Status:       model.StatusUserModified,
		Source:       model.SourceAI,
		Confidence:   0.95,
	}
	require.NoError(t, store.SaveTransaction(ctx, older))

	got, err := store.GetTransactions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first.
	assert.Equal(t, txn.ID, got[0].ID)
	assert.Equal(t, "Ăn phở", got[0].Note)
	assert.Equal(t, model.SourceFallback, got[0].Source)
	assert.Empty(t, got[1].CategoryID, "category id may be absent")

	limited, err := store.GetTransactions(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSaveTransaction_RejectsInvalid(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	err := store.SaveTransaction(ctx, &model.Transaction{
		Date:         time.Now(),
		Type:         model.CategoryTypeExpense,
		Amount:       0,
		CategoryName: "Ăn uống",
		Status:       model.StatusUserConfirmed,
		Source:       model.SourceFallback,
	})
	assert.ErrorIs(t, err, ErrInvalidTransaction)
}
