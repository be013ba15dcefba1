package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/ndhuy/tienoi/internal/model"
)

// mockStorage is an in-memory service.Storage for engine tests.
type mockStorage struct {
	mu         sync.Mutex
	categories []model.Category
	saved      []model.Transaction
	saveErr    error
}

func newMockStorage(categories []model.Category) *mockStorage {
	return &mockStorage{categories: categories}
}

func (m *mockStorage) GetCategories(_ context.Context) ([]model.Category, error) {
	return m.categories, nil
}

func (m *mockStorage) GetCategoryByName(_ context.Context, name string) (*model.Category, error) {
	for i := range m.categories {
		if m.categories[i].Name == name {
			return &m.categories[i], nil
		}
	}
	return nil, nil
}

func (m *mockStorage) CreateCategory(_ context.Context, name string, categoryType model.CategoryType, icon string) (*model.Category, error) {
	cat := model.Category{ID: fmt.Sprintf("mock-%d", len(m.categories)), Name: name, Type: categoryType, Icon: icon, IsActive: true}
	m.categories = append(m.categories, cat)
	return &cat, nil
}

func (m *mockStorage) SaveTransaction(_ context.Context, txn *model.Transaction) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if txn.ID == "" {
		txn.ID = fmt.Sprintf("txn-%d", len(m.saved)+1)
	}
	m.saved = append(m.saved, *txn)
	return nil
}

func (m *mockStorage) GetTransactions(_ context.Context, limit int) ([]model.Transaction, error) {
	if limit > 0 && limit < len(m.saved) {
		return m.saved[:limit], nil
	}
	return m.saved, nil
}

func (m *mockStorage) Migrate(_ context.Context) error { return nil }
func (m *mockStorage) Close() error                    { return nil }

// mockAIParser returns canned results or errors and counts calls.
type mockAIParser struct {
	results []model.ParsedTransaction
	err     error
	calls   int
}

func (m *mockAIParser) ParseTransactions(_ context.Context, _ string, _ []model.Category) ([]model.ParsedTransaction, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

// mockReplier echoes a canned reply.
type mockReplier struct {
	reply string
	err   error
	calls int
}

func (m *mockReplier) Reply(_ context.Context, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

// mockPrompter accepts everything by default; skipIndexes marks candidates
// the simulated user rejects.
type mockPrompter struct {
	skipIndexes map[int]bool
	confirmed   int
	batches     []int
	index       int
}

func (m *mockPrompter) ConfirmTransaction(_ context.Context, parsed model.ParsedTransaction, _ []model.Category) (*model.Transaction, error) {
	defer func() { m.index++ }()
	if m.skipIndexes[m.index] {
		return nil, nil
	}
	m.confirmed++
	return &model.Transaction{
		Date:         parsed.Date,
		Type:         parsed.Type,
		Amount:       parsed.Amount,
		CategoryID:   parsed.CategoryID,
		CategoryName: parsed.CategoryName,
		Note:         parsed.Note,
		Status:       model.StatusUserConfirmed,
		Source:       parsed.Source,
		Confidence:   parsed.Confidence,
	}, nil
}

func (m *mockPrompter) BeginBatch(total int) { m.batches = append(m.batches, total) }
func (m *mockPrompter) EndBatch()            {}
