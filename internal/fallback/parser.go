package fallback

import (
	"fmt"
	"time"

	"github.com/ndhuy/tienoi/internal/model"
)

// Parser runs the extraction pipeline. It holds no mutable state; the
// clock is injectable so results are reproducible in tests.
type Parser struct {
	now func() time.Time
}

// New creates a parser using the system clock for default dates.
func New() *Parser {
	return &Parser{now: time.Now}
}

// NewWithClock creates a parser with an injected clock.
func NewWithClock(now func() time.Time) *Parser {
	return &Parser{now: now}
}

// Parse extracts zero or more transactions from a message against the
// caller's categories, using the parser's clock for the default date.
// A nil result means nothing could be extracted. Segments that fail are
// dropped silently; order follows the original message.
func (p *Parser) Parse(message string, categories []model.Category) []model.ParsedTransaction {
	return p.ParseAt(message, categories, p.now())
}

// ParseAt is Parse with an explicit default date, for callers replaying
// history and for tests.
func (p *Parser) ParseAt(message string, categories []model.Category, now time.Time) []model.ParsedTransaction {
	validateCategories(categories)

	var results []model.ParsedTransaction
	for _, seg := range segment(message) {
		if txn, ok := parseSegment(seg, categories, now); ok {
			results = append(results, txn)
		}
	}
	return results
}

// ParseOne preserves the single-transaction caller contract: it returns a
// transaction only when the message yields exactly one.
func (p *Parser) ParseOne(message string, categories []model.Category) (*model.ParsedTransaction, bool) {
	results := p.Parse(message, categories)
	if len(results) != 1 {
		return nil, false
	}
	return &results[0], true
}

// parseSegment runs the single-entry pipeline: normalize, extract amount,
// classify direction, resolve category, derive note, aggregate confidence.
// Any stage failure drops the whole segment; there is no partial result.
func parseSegment(seg string, categories []model.Category, now time.Time) (model.ParsedTransaction, bool) {
	normalized := normalize(seg)

	amount, ok := extractAmount(normalized)
	if !ok {
		return model.ParsedTransaction{}, false
	}

	txType, typeBonus := classifyType(normalized)

	match, ok := matchCategory(normalized, categories, txType)
	if !ok {
		return model.ParsedTransaction{}, false
	}

	note, _ := extractNote(seg)

	raw := baselineConfidence + amount.bonus + typeBonus
	if match.score > 0 {
		raw += categoryMatchBonus
	}
	if match.guessed {
		raw -= guessPenalty
	}

	return model.ParsedTransaction{
		Type:         txType,
		Amount:       amount.value,
		CategoryID:   match.category.ID,
		CategoryName: match.category.Name,
		Note:         note,
		Date:         resolveDate(normalized, now),
		Source:       model.SourceFallback,
		Confidence:   finalizeConfidence(raw),
	}, true
}

// validateCategories panics on duplicate ids. A malformed list is a caller
// programming error: tolerating it silently risks resolving the wrong
// category by id collision.
func validateCategories(categories []model.Category) {
	seen := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		if cat.ID == "" {
			continue
		}
		if _, dup := seen[cat.ID]; dup {
			panic(fmt.Sprintf("fallback: duplicate category id %q", cat.ID))
		}
		seen[cat.ID] = struct{}{}
	}
}
