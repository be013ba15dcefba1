// Package fallback implements the rule-based transaction extraction
// pipeline used when the remote AI parser is unavailable or returns
// nothing. It is pure and deterministic: the only inputs are the message,
// the caller's category list, and an injectable clock.
//
// Confidence is intentionally capped below what the AI parser may report
// so callers can rank the two sources.
package fallback
