package main

import (
	"fmt"

	"github.com/ndhuy/tienoi/internal/cli"
	"github.com/ndhuy/tienoi/internal/model"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Quản lý danh mục thu chi",
	}
	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())
	return cmd
}

func categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Liệt kê danh mục",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}

			var lastType model.CategoryType
			for _, cat := range categories {
				if cat.Type != lastType {
					heading := "Chi tiêu"
					if cat.Type == model.CategoryTypeIncome {
						heading = "Thu nhập"
					}
					cmd.Println(cli.TitleStyle.Render(heading))
					lastType = cat.Type
				}
				cmd.Printf("  %s %s\n", cat.Icon, cat.Name)
			}
			return nil
		},
	}
}

func categoriesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Thêm danh mục mới",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			typeFlag, _ := cmd.Flags().GetString("type")
			icon, _ := cmd.Flags().GetString("icon")

			var categoryType model.CategoryType
			switch typeFlag {
			case "income":
				categoryType = model.CategoryTypeIncome
			case "expense":
				categoryType = model.CategoryTypeExpense
			default:
				return fmt.Errorf("invalid --type %q: must be income or expense", typeFlag)
			}

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := store.CreateCategory(ctx, args[0], categoryType, icon)
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Đã thêm danh mục %s %s", cat.Icon, cat.Name)))
			return nil
		},
	}
	cmd.Flags().String("type", "expense", "category type (income, expense)")
	cmd.Flags().String("icon", "📌", "category icon")
	return cmd
}
