package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ndhuy/tienoi/internal/cli"
	"github.com/ndhuy/tienoi/internal/engine"
	"github.com/spf13/cobra"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Trò chuyện và ghi thu chi",
		Long: `Start an interactive chat session. Each message is classified and,
when it describes a transaction, parsed and confirmed before saving.`,
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	aiParser, err := buildAIParser()
	if err != nil {
		return err
	}

	prompter := cli.NewPrompter(os.Stdin, os.Stdout)
	var eng *engine.Engine
	if aiParser != nil {
		eng = engine.New(store, aiParser, aiParser, prompter)
	} else {
		eng = engine.New(store, nil, nil, prompter)
	}

	fmt.Println(cli.RenderBox("tienoi", "Gõ thu chi của bạn, \"thoát\" để dừng."))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(cli.FormatPrompt("bạn> "))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			fmt.Println()
			return nil
		}

		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if isQuit(message) {
			fmt.Println(cli.SubtleStyle.Render("Hẹn gặp lại!"))
			return nil
		}

		result, err := eng.ProcessMessage(ctx, message)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Println(cli.FormatWarning(err.Error()))
			continue
		}

		if result.Reply != "" {
			fmt.Println(result.Reply)
		}
		if len(result.Saved) > 0 {
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Đã ghi %d giao dịch", len(result.Saved))))
		}
	}
}

func isQuit(message string) bool {
	switch strings.ToLower(message) {
	case "thoát", "thoat", "quit", "exit", "q":
		return true
	}
	return false
}
