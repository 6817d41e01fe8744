package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/feira/internal/ports/primary"
	"github.com/example/feira/internal/wire"
)

var productCmd = &cobra.Command{
	Use:     "product",
	Aliases: []string{"produto"},
	Short:   "Manage the product catalog",
}

var productCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Register a new product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, _ := cmd.Flags().GetString("unit")
		description, _ := cmd.Flags().GetString("description")
		category, _ := cmd.Flags().GetString("category")

		_, err := wire.CatalogAdapter().CreateProduct(NewContext(), primary.CreateProductRequest{
			Name:        args[0],
			DefaultUnit: unit,
			Description: description,
			Category:    category,
		})
		if err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	},
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		_, err := wire.CatalogAdapter().ListProducts(NewContext(), category)
		return err
	},
}

var productShowCmd = &cobra.Command{
	Use:   "show [product-id]",
	Short: "Show product details and its producers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.CatalogAdapter().ShowProduct(NewContext(), args[0])
		return err
	},
}

var productSearchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Find products whose name contains text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.CatalogAdapter().SearchProducts(NewContext(), strings.Join(args, " "))
		return err
	},
}

func init() {
	productCreateCmd.Flags().StringP("unit", "u", "", "Default unit, e.g. kg, maço, un (required)")
	productCreateCmd.Flags().StringP("description", "d", "", "Description")
	productCreateCmd.Flags().StringP("category", "c", "", "Category, e.g. verdura, legume, fruta")
	productCreateCmd.MarkFlagRequired("unit")

	productListCmd.Flags().StringP("category", "c", "", "Only products of this category")

	productCmd.AddCommand(productCreateCmd)
	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productShowCmd)
	productCmd.AddCommand(productSearchCmd)
}

// ProductCmd returns the product command
func ProductCmd() *cobra.Command {
	return productCmd
}
