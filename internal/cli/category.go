package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage category labels",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category (adding an existing name is a no-op)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryAdd,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	Args:  cobra.NoArgs,
	RunE:  runCategoryList,
}

var categorySearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Find categories containing a term (case-insensitive)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategorySearch,
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categorySearchCmd)
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	app, cleanup := openApp()
	defer cleanup()

	if err := app.store.AddCategory(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Category %q available\n", args[0])
	return nil
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	app, cleanup := openApp()
	defer cleanup()

	names, err := app.store.GetCategories(context.Background())
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func runCategorySearch(cmd *cobra.Command, args []string) error {
	app, cleanup := openApp()
	defer cleanup()

	names, err := app.store.SearchCategories(context.Background(), args[0])
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}
