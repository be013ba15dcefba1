package llm

import (
	"context"
	"time"
)

// Client defines the raw interface an LLM provider must implement.
type Client interface {
	// Complete sends a system+user prompt pair and returns the text of
	// the first completion choice.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config holds configuration for the remote AI services.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	CacheTTL    time.Duration
}
