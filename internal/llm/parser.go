package llm

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ndhuy/tienoi/internal/common"
	"github.com/ndhuy/tienoi/internal/model"
)

const parseSystemPrompt = `You are a Vietnamese personal-finance assistant. Extract financial transactions from the user's message. You MUST respond with ONLY a valid JSON object of the form
{"transactions":[{"type":"income|expense","amount":50000,"category_name":"...","note":"...","date":"2006-01-02","confidence":0.95}]}
Amounts are Vietnamese đồng. Use only category names from the provided list. Return {"transactions":[]} when the message describes no transaction. Do not include any text outside the JSON.`

const replySystemPrompt = `You are a friendly Vietnamese personal-finance assistant. Reply briefly and warmly in Vietnamese. Do not invent transactions or numbers.`

// Parser implements the remote AI parser and reply collaborators on top of
// a completion Client.
type Parser struct {
	client Client
	cache  *responseCache
	logger *slog.Logger
	now    func() time.Time
}

// NewParser creates the remote AI parser from configuration.
func NewParser(cfg Config, logger *slog.Logger) (*Parser, error) {
	client, err := newOpenAIClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return NewParserWithClient(client, cfg.CacheTTL, logger), nil
}

// NewParserWithClient wires a Parser around an existing client, mainly for
// tests and alternative providers.
func NewParserWithClient(client Client, cacheTTL time.Duration, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		client: client,
		cache:  newResponseCache(cacheTTL),
		logger: logger,
		now:    time.Now,
	}
}

// ParseTransactions asks the model to extract transactions from a message.
// An empty slice with a nil error means the model saw no transaction; the
// caller decides whether to fall back to the rule-based pipeline.
func (p *Parser) ParseTransactions(ctx context.Context, message string, categories []model.Category) ([]model.ParsedTransaction, error) {
	key := cacheKey(message, categories)
	if cached, found := p.cache.get(key); found {
		p.logger.Debug("cache hit for message parse", "message_len", len(message))
		return cached, nil
	}

	content, err := p.client.Complete(ctx, parseSystemPrompt, buildParsePrompt(message, categories))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAIUnavailable, err)
	}

	parsed, err := p.decodeTransactions(content, categories)
	if err != nil {
		return nil, err
	}

	p.cache.set(key, parsed)
	return parsed, nil
}

// Reply generates a conversational reply for small-talk and unclear
// messages.
func (p *Parser) Reply(ctx context.Context, message string) (string, error) {
	content, err := p.client.Complete(ctx, replySystemPrompt, message)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrAIUnavailable, err)
	}
	return strings.TrimSpace(content), nil
}

func buildParsePrompt(message string, categories []model.Category) string {
	var b strings.Builder
	b.WriteString("Categories:\n")
	for _, cat := range categories {
		fmt.Fprintf(&b, "- %s (%s)\n", cat.Name, cat.Type)
	}
	b.WriteString("\nMessage:\n")
	b.WriteString(message)
	return b.String()
}

// wireTransaction is the JSON shape the model is asked to produce.
type wireTransaction struct {
	Type         string  `json:"type"`
	CategoryName string  `json:"category_name"`
	Note         string  `json:"note"`
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	Confidence   float64 `json:"confidence"`
}

// decodeTransactions validates the model output and maps it onto the
// domain model. Invalid entries are dropped, not errored: a partially
// usable response still beats falling back entirely.
func (p *Parser) decodeTransactions(content string, categories []model.Category) ([]model.ParsedTransaction, error) {
	var wire struct {
		Transactions []wireTransaction `json:"transactions"`
	}

	cleaned := cleanMarkdownWrapper(content)
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, fmt.Errorf("failed to parse LLM JSON response: %w", err)
	}

	results := make([]model.ParsedTransaction, 0, len(wire.Transactions))
	for _, wt := range wire.Transactions {
		txn, ok := p.toParsedTransaction(wt, categories)
		if !ok {
			p.logger.Debug("dropping invalid AI transaction",
				"type", wt.Type, "amount", wt.Amount, "category", wt.CategoryName)
			continue
		}
		results = append(results, txn)
	}
	return results, nil
}

func (p *Parser) toParsedTransaction(wt wireTransaction, categories []model.Category) (model.ParsedTransaction, bool) {
	if wt.Amount <= 0 {
		return model.ParsedTransaction{}, false
	}

	var txType model.CategoryType
	switch strings.ToLower(wt.Type) {
	case "income":
		txType = model.CategoryTypeIncome
	case "expense":
		txType = model.CategoryTypeExpense
	default:
		return model.ParsedTransaction{}, false
	}

	date := p.now()
	if wt.Date != "" {
		if parsed, err := time.Parse("2006-01-02", wt.Date); err == nil {
			date = parsed
		}
	}

	confidence := wt.Confidence
	if confidence <= 0 {
		confidence = 0.9
	}
	if confidence > model.AIConfidenceCeiling {
		confidence = model.AIConfidenceCeiling
	}

	categoryID, categoryName := resolveCategory(wt.CategoryName, txType, categories)

	return model.ParsedTransaction{
		Type:         txType,
		Amount:       wt.Amount,
		CategoryID:   categoryID,
		CategoryName: categoryName,
		Note:         strings.TrimSpace(wt.Note),
		Date:         date,
		Source:       model.SourceAI,
		Confidence:   confidence,
	}, true
}

// resolveCategory maps a model-reported category name back onto the
// caller's list, falling back to the name as given with an empty id when
// the model invented one.
func resolveCategory(name string, txType model.CategoryType, categories []model.Category) (string, string) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, cat := range categories {
		if cat.Type == txType && strings.ToLower(cat.Name) == lower {
			return cat.ID, cat.Name
		}
	}
	return "", strings.TrimSpace(name)
}

// cleanMarkdownWrapper strips a ```json fence if the model wrapped its
// response in one despite instructions.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

func cacheKey(message string, categories []model.Category) string {
	h := sha256.New()
	h.Write([]byte(message))
	for _, cat := range categories {
		h.Write([]byte{0})
		h.Write([]byte(cat.ID))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
