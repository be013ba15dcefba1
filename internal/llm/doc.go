// Package llm talks to the remote AI collaborators: the transaction parser
// and the conversational reply service. It wraps an OpenAI-compatible chat
// completions API with response caching and confidence clamping. The
// rule-based fallback in internal/fallback takes over whenever this
// package errors out or extracts nothing.
package llm
