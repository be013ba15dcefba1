// Package engine orchestrates one chat turn: intent routing, AI parsing
// with rule-based fallback, user confirmation, and persistence.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ndhuy/tienoi/internal/common"
	"github.com/ndhuy/tienoi/internal/fallback"
	"github.com/ndhuy/tienoi/internal/intent"
	"github.com/ndhuy/tienoi/internal/model"
	"github.com/ndhuy/tienoi/internal/service"
)

// Engine processes chat messages end to end. The remote AI collaborators
// are optional: without a parser every transactional message goes straight
// to the rule-based pipeline, and without a replier small talk gets a
// canned response.
type Engine struct {
	storage   service.Storage
	aiParser  service.TransactionParser
	replier   service.Replier
	prompter  service.Prompter
	parser    *fallback.Parser
	retryOpts service.RetryOptions
}

// Config holds configuration options for the engine.
type Config struct {
	RetryOpts service.RetryOptions
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		RetryOpts: service.RetryOptions{
			MaxAttempts:  2,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		},
	}
}

// New creates an engine with default configuration. aiParser and replier
// may be nil.
func New(storage service.Storage, aiParser service.TransactionParser, replier service.Replier, prompter service.Prompter) *Engine {
	return NewWithConfig(storage, aiParser, replier, prompter, DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(storage service.Storage, aiParser service.TransactionParser, replier service.Replier, prompter service.Prompter, cfg Config) *Engine {
	return &Engine{
		storage:   storage,
		aiParser:  aiParser,
		replier:   replier,
		prompter:  prompter,
		parser:    fallback.New(),
		retryOpts: cfg.RetryOpts,
	}
}

// TurnResult summarizes what one message produced.
type TurnResult struct {
	Reply  string
	Intent model.IntentClassification
	Parsed []model.ParsedTransaction
	Saved  []model.Transaction
}

// ProcessMessage handles one incoming chat message.
func (e *Engine) ProcessMessage(ctx context.Context, message string) (*TurnResult, error) {
	result := &TurnResult{Intent: intent.Classify(message)}

	slog.Debug("classified message",
		"intent", result.Intent.Intent,
		"confidence", result.Intent.Confidence)

	if result.Intent.Intent != model.IntentCreateTransaction {
		reply, err := e.reply(ctx, message)
		if err != nil {
			return nil, err
		}
		result.Reply = reply
		return result, nil
	}

	categories, err := e.storage.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	result.Parsed = e.parse(ctx, message, categories)
	if len(result.Parsed) == 0 {
		result.Reply = "Mình chưa hiểu giao dịch này, bạn ghi rõ số tiền giúp mình nhé."
		return result, nil
	}

	saved, err := e.confirmAndSave(ctx, result.Parsed, categories)
	if err != nil {
		return nil, err
	}
	result.Saved = saved
	return result, nil
}

// parse tries the remote AI parser first and falls back to the rule-based
// pipeline when it errors, times out, or extracts nothing.
func (e *Engine) parse(ctx context.Context, message string, categories []model.Category) []model.ParsedTransaction {
	if e.aiParser != nil {
		var parsed []model.ParsedTransaction
		err := common.WithRetry(ctx, func() error {
			var parseErr error
			parsed, parseErr = e.aiParser.ParseTransactions(ctx, message, categories)
			return parseErr
		}, e.retryOpts)

		if err == nil && len(parsed) > 0 {
			return parsed
		}
		if err != nil {
			slog.Warn("AI parser unavailable, using fallback", "error", err)
		} else {
			slog.Debug("AI parser extracted nothing, using fallback")
		}
	}

	return e.parser.Parse(message, categories)
}

func (e *Engine) confirmAndSave(ctx context.Context, parsed []model.ParsedTransaction, categories []model.Category) ([]model.Transaction, error) {
	e.prompter.BeginBatch(len(parsed))
	defer e.prompter.EndBatch()

	var saved []model.Transaction
	for _, candidate := range parsed {
		txn, err := e.prompter.ConfirmTransaction(ctx, candidate, categories)
		if err != nil {
			return saved, fmt.Errorf("confirmation aborted: %w", err)
		}
		if txn == nil {
			continue
		}

		if err := e.storage.SaveTransaction(ctx, txn); err != nil {
			return saved, fmt.Errorf("failed to save transaction: %w", err)
		}
		saved = append(saved, *txn)
	}

	slog.Info("processed transactions",
		"parsed", len(parsed),
		"saved", len(saved))
	return saved, nil
}

func (e *Engine) reply(ctx context.Context, message string) (string, error) {
	if e.replier == nil {
		return "Chào bạn! Ghi lại chi tiêu giúp bạn nhé, ví dụ: \"ăn phở 50k\".", nil
	}

	reply, err := e.replier.Reply(ctx, message)
	if err != nil {
		slog.Warn("reply service unavailable", "error", err)
		return "Xin lỗi, mình đang bận chút, bạn thử lại sau nhé.", nil
	}
	return reply, nil
}
