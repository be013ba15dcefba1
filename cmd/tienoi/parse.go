package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ndhuy/tienoi/internal/cli"
	"github.com/ndhuy/tienoi/internal/fallback"
	"github.com/ndhuy/tienoi/internal/intent"
	"github.com/ndhuy/tienoi/internal/model"
	"github.com/spf13/cobra"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <message>",
		Short: "Phân tích một câu mà không lưu",
		Long: `Parse a single message and print the extracted transactions without
saving anything. Useful for checking how a phrasing will be read.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}
	cmd.Flags().Bool("json", false, "print results as JSON")
	cmd.Flags().Bool("offline", false, "skip the AI parser and use rules only")
	return cmd
}

// parseOutput is the JSON shape of one extracted transaction.
type parseOutput struct {
	Type       string  `json:"type"`
	Category   string  `json:"category"`
	Note       string  `json:"note,omitempty"`
	Date       string  `json:"date"`
	Source     string  `json:"source"`
	Amount     float64 `json:"amount"`
	Confidence float64 `json:"confidence"`
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	message := strings.Join(args, " ")
	asJSON, _ := cmd.Flags().GetBool("json")
	offline, _ := cmd.Flags().GetBool("offline")

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	categories, err := store.GetCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	classification := intent.Classify(message)
	if classification.Intent != model.IntentCreateTransaction {
		if asJSON {
			return printJSON(cmd, map[string]any{
				"intent":     classification.Intent,
				"confidence": classification.Confidence,
			})
		}
		cmd.Printf("intent: %s (%.2f)\n", classification.Intent, classification.Confidence)
		return nil
	}

	parsed := parseMessage(cmd, message, categories, offline)
	if len(parsed) == 0 {
		if asJSON {
			return printJSON(cmd, []parseOutput{})
		}
		cmd.Println(cli.FormatWarning("Không đọc được giao dịch nào"))
		return nil
	}

	if asJSON {
		out := make([]parseOutput, 0, len(parsed))
		for _, p := range parsed {
			out = append(out, parseOutput{
				Type:       string(p.Type),
				Amount:     p.Amount,
				Category:   p.CategoryName,
				Note:       p.Note,
				Date:       p.Date.Format("2006-01-02"),
				Source:     string(p.Source),
				Confidence: p.Confidence,
			})
		}
		return printJSON(cmd, out)
	}

	for _, p := range parsed {
		direction := "chi"
		if p.Type == model.CategoryTypeIncome {
			direction = "thu"
		}
		line := fmt.Sprintf("%s %s | %s | %s | %.2f (%s)",
			direction, cli.FormatVND(p.Amount), p.CategoryName,
			p.Date.Format("02/01/2006"), p.Confidence, p.Source)
		if p.Note != "" {
			line += " | " + p.Note
		}
		cmd.Println(line)
	}
	return nil
}

// parseMessage mirrors the engine's AI-first order but without retries or
// confirmation, since nothing is saved here.
func parseMessage(cmd *cobra.Command, message string, categories []model.Category, offline bool) []model.ParsedTransaction {
	if !offline {
		aiParser, err := buildAIParser()
		if err != nil {
			slog.Warn("failed to build AI parser, using rules", "error", err)
		} else if aiParser != nil {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			parsed, err := aiParser.ParseTransactions(ctx, message, categories)
			if err == nil && len(parsed) > 0 {
				return parsed
			}
			if err != nil {
				slog.Warn("AI parse failed, using rules", "error", err)
			}
		}
	}
	return fallback.New().Parse(message, categories)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}
