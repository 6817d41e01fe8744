package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/feira/internal/ports/primary"
	"github.com/example/feira/internal/wire"
)

var producerCmd = &cobra.Command{
	Use:     "producer",
	Aliases: []string{"produtor"},
	Short:   "Manage producers",
}

var producerCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Register a new producer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taxID, _ := cmd.Flags().GetString("tax-id")
		phone, _ := cmd.Flags().GetString("phone")
		address, _ := cmd.Flags().GetString("address")

		_, err := wire.CatalogAdapter().CreateProducer(NewContext(), primary.CreateProducerRequest{
			Name:    args[0],
			TaxID:   taxID,
			Phone:   phone,
			Address: address,
		})
		if err != nil {
			return fmt.Errorf("failed to create producer: %w", err)
		}
		return nil
	},
}

var producerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List producers by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, _ := cmd.Flags().GetString("product")
		_, err := wire.CatalogAdapter().ListProducers(NewContext(), productID)
		return err
	},
}

var producerShowCmd = &cobra.Command{
	Use:   "show [producer-id]",
	Short: "Show producer details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.CatalogAdapter().ShowProducer(NewContext(), args[0])
		return err
	},
}

var producerSearchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Find producers whose name contains text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.CatalogAdapter().SearchProducers(NewContext(), strings.Join(args, " "))
		return err
	},
}

var producerContactCmd = &cobra.Command{
	Use:   "contact [producer-id] [phone]",
	Short: "Change the phone of a producer (empty phone clears it)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		phone := ""
		if len(args) == 2 {
			phone = args[1]
		}
		return wire.CatalogAdapter().UpdateContact(NewContext(), args[0], phone)
	},
}

func init() {
	producerCreateCmd.Flags().String("tax-id", "", "CPF or CNPJ")
	producerCreateCmd.Flags().String("phone", "", "Phone number")
	producerCreateCmd.Flags().String("address", "", "Address")

	producerListCmd.Flags().String("product", "", "Only producers that supply this product")

	producerCmd.AddCommand(producerCreateCmd)
	producerCmd.AddCommand(producerListCmd)
	producerCmd.AddCommand(producerShowCmd)
	producerCmd.AddCommand(producerSearchCmd)
	producerCmd.AddCommand(producerContactCmd)
}

// ProducerCmd returns the producer command
func ProducerCmd() *cobra.Command {
	return producerCmd
}
