// Package model defines the core domain models used throughout the application.
package model

import "time"

// ParseSource records which parser produced a ParsedTransaction.
type ParseSource string

const (
	// SourceAI marks transactions extracted by the remote AI parser.
	SourceAI ParseSource = "ai"
	// SourceFallback marks transactions extracted by the rule-based fallback.
	SourceFallback ParseSource = "fallback"
)

// Confidence ceilings per parse source. The gap between them lets callers
// rank an AI parse above a rule-based parse of the same message.
const (
	// FallbackConfidenceCeiling is the maximum confidence a rule-based
	// extraction may report.
	FallbackConfidenceCeiling = 0.85
	// AIConfidenceCeiling is the maximum confidence accepted from the
	// remote AI parser.
	AIConfidenceCeiling = 0.98
)

// ParsedTransaction is one extracted transaction awaiting user confirmation.
// It is immutable once produced; the confirmation UI may copy-and-edit it
// but never mutates the original.
type ParsedTransaction struct {
	Date         time.Time
	Type         CategoryType
	CategoryID   string
	CategoryName string
	Note         string
	Source       ParseSource
	Amount       float64
	Confidence   float64
}

// Intent is the coarse classification of an incoming chat message.
type Intent string

const (
	// IntentSmallTalk routes the message to the conversational reply service.
	IntentSmallTalk Intent = "small_talk"
	// IntentCreateTransaction routes the message to transaction extraction.
	IntentCreateTransaction Intent = "create_transaction"
	// IntentUnknown means neither score was decisive.
	IntentUnknown Intent = "unknown"
)

// IntentClassification is the result of classifying one message.
type IntentClassification struct {
	Intent     Intent
	Confidence float64
}
