package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ndhuy/tienoi/internal/llm"
	"github.com/ndhuy/tienoi/internal/storage"
	"github.com/spf13/viper"
)

// openStorage opens and migrates the SQLite database named in config,
// defaulting to ~/.local/share/tienoi/tienoi.db.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "tienoi", "tienoi.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Debug("opened database", "path", dbPath)
	return store, nil
}

// buildAIParser constructs the remote AI parser from config. A missing
// API key is not an error: it just means rule-based parsing only.
func buildAIParser() (*llm.Parser, error) {
	apiKey := viper.GetString("llm.api_key")
	if apiKey == "" {
		slog.Debug("no LLM API key configured, running rule-based only")
		return nil, nil
	}

	cfg := llm.Config{
		APIKey:      apiKey,
		BaseURL:     viper.GetString("llm.base_url"),
		Model:       viper.GetString("llm.model"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		Temperature: viper.GetFloat64("llm.temperature"),
		Timeout:     viper.GetDuration("llm.timeout"),
		CacheTTL:    viper.GetDuration("llm.cache_ttl"),
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	return llm.NewParser(cfg, slog.Default())
}
