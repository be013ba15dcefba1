package main

import (
	"fmt"

	"github.com/ndhuy/tienoi/internal/cli"
	"github.com/ndhuy/tienoi/internal/model"
	"github.com/spf13/cobra"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Xem giao dịch đã lưu",
	}
	cmd.AddCommand(transactionsListCmd())
	return cmd
}

func transactionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Liệt kê giao dịch gần nhất",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions, err := store.GetTransactions(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}
			if len(transactions) == 0 {
				cmd.Println(cli.SubtleStyle.Render("Chưa có giao dịch nào."))
				return nil
			}

			for _, txn := range transactions {
				sign := "-"
				if txn.Type == model.CategoryTypeIncome {
					sign = "+"
				}
				line := fmt.Sprintf("%s  %s%s  %s",
					txn.Date.Format("02/01/2006"), sign, cli.FormatVND(txn.Amount), txn.CategoryName)
				if txn.Note != "" {
					line += "  " + cli.SubtleStyle.Render(txn.Note)
				}
				cmd.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum number of transactions to show")
	return cmd
}
