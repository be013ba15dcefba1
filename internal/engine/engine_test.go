package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndhuy/tienoi/internal/model"
	"github.com/ndhuy/tienoi/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineCategories() []model.Category {
	return []model.Category{
		{ID: "c1", Name: "Ăn uống", Type: model.CategoryTypeExpense},
		{ID: "c2", Name: "Di chuyển", Type: model.CategoryTypeExpense},
		{ID: "c4", Name: "Khác", Type: model.CategoryTypeExpense},
		{ID: "c5", Name: "Lương", Type: model.CategoryTypeIncome},
	}
}

// fastRetry keeps engine tests from sleeping through backoff.
func fastRetry() Config {
	return Config{RetryOpts: service.RetryOptions{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2.0,
	}}
}

func TestEngine_SmallTalkGoesToReplier(t *testing.T) {
	storage := newMockStorage(engineCategories())
	replier := &mockReplier{reply: "Chào bạn!"}
	e := NewWithConfig(storage, &mockAIParser{}, replier, &mockPrompter{}, fastRetry())

	result, err := e.ProcessMessage(context.Background(), "Chào bạn")
	require.NoError(t, err)
	assert.Equal(t, model.IntentSmallTalk, result.Intent.Intent)
	assert.Equal(t, "Chào bạn!", result.Reply)
	assert.Equal(t, 1, replier.calls)
	assert.Empty(t, result.Parsed)
	assert.Empty(t, storage.saved)
}

func TestEngine_SmallTalkWithoutReplierUsesCannedReply(t *testing.T) {
	e := NewWithConfig(newMockStorage(engineCategories()), nil, nil, &mockPrompter{}, fastRetry())

	result, err := e.ProcessMessage(context.Background(), "Chào bạn")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Reply)
}

func TestEngine_AIParseIsPreferred(t *testing.T) {
	storage := newMockStorage(engineCategories())
	ai := &mockAIParser{results: []model.ParsedTransaction{{
		Date:         time.Now(),
		Type:         model.CategoryTypeExpense,
		Amount:       50_000,
		CategoryID:   "c1",
		CategoryName: "Ăn uống",
		Source:       model.SourceAI,
		Confidence:   0.96,
	}}}
	prompter := &mockPrompter{}
	e := NewWithConfig(storage, ai, nil, prompter, fastRetry())

	result, err := e.ProcessMessage(context.Background(), "Ăn phở 50k hôm nay")
	require.NoError(t, err)
	require.Len(t, result.Parsed, 1)
	assert.Equal(t, model.SourceAI, result.Parsed[0].Source)
	require.Len(t, result.Saved, 1)
	assert.Equal(t, model.SourceAI, storage.saved[0].Source)
}

func TestEngine_FallbackWhenAIErrors(t *testing.T) {
	storage := newMockStorage(engineCategories())
	ai := &mockAIParser{err: errors.New("upstream down")}
	e := NewWithConfig(storage, ai, nil, &mockPrompter{}, fastRetry())

	result, err := e.ProcessMessage(context.Background(), "Ăn phở 50k hôm nay")
	require.NoError(t, err)
	require.Len(t, result.Parsed, 1)
	assert.Equal(t, model.SourceFallback, result.Parsed[0].Source)
	assert.InDelta(t, 50_000, result.Parsed[0].Amount, 0.001)
	assert.GreaterOrEqual(t, ai.calls, 2, "AI errors are retried before falling back")
}

func TestEngine_FallbackWhenAIReturnsNothing(t *testing.T) {
	storage := newMockStorage(engineCategories())
	ai := &mockAIParser{}
	e := NewWithConfig(storage, ai, nil, &mockPrompter{}, fastRetry())

	result, err := e.ProcessMessage(context.Background(), "Nhận lương 15 triệu")
	require.NoError(t, err)
	require.Len(t, result.Parsed, 1)
	assert.Equal(t, model.SourceFallback, result.Parsed[0].Source)
	assert.Equal(t, model.CategoryTypeIncome, result.Parsed[0].Type)
	assert.InDelta(t, 15_000_000, result.Parsed[0].Amount, 0.001)
}

func TestEngine_NoAIParserConfigured(t *testing.T) {
	storage := newMockStorage(engineCategories())
	e := NewWithConfig(storage, nil, nil, &mockPrompter{}, fastRetry())

	result, err := e.ProcessMessage(context.Background(), "đi grab 45k")
	require.NoError(t, err)
	require.Len(t, result.Parsed, 1)
	assert.Equal(t, "c2", result.Parsed[0].CategoryID)
}

func TestEngine_MultiTransactionBatch(t *testing.T) {
	storage := newMockStorage(engineCategories())
	prompter := &mockPrompter{skipIndexes: map[int]bool{1: true}}
	e := NewWithConfig(storage, nil, nil, prompter, fastRetry())

	result, err := e.ProcessMessage(context.Background(), "Ăn phở 30k, cafe 50k")
	require.NoError(t, err)
	require.Len(t, result.Parsed, 2)
	assert.Equal(t, []int{2}, prompter.batches)

	// The simulated user skipped the second candidate.
	require.Len(t, result.Saved, 1)
	assert.InDelta(t, 30_000, result.Saved[0].Amount, 0.001)
	require.Len(t, storage.saved, 1)
}

func TestEngine_UnparseableTransactionalMessage(t *testing.T) {
	storage := newMockStorage(engineCategories())
	e := NewWithConfig(storage, nil, nil, &mockPrompter{}, fastRetry())

	// Routed as transactional but the zero amount fails extraction.
	result, err := e.ProcessMessage(context.Background(), "mua gì đó 0k")
	require.NoError(t, err)
	assert.Empty(t, result.Parsed)
	assert.NotEmpty(t, result.Reply)
	assert.Empty(t, storage.saved)
}

func TestEngine_SaveErrorSurfaces(t *testing.T) {
	storage := newMockStorage(engineCategories())
	storage.saveErr = errors.New("disk full")
	e := NewWithConfig(storage, nil, nil, &mockPrompter{}, fastRetry())

	_, err := e.ProcessMessage(context.Background(), "Ăn phở 50k")
	assert.Error(t, err)
}
