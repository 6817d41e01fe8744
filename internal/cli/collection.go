package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/core/syncstatus"
	"github.com/example/feira/internal/ports/primary"
	"github.com/example/feira/internal/wire"
)

var collectionCmd = &cobra.Command{
	Use:     "collection",
	Aliases: []string{"coleta"},
	Short:   "Record and manage collections",
	Long:    "Record collections of products from producers, list them and track their sync state",
}

var collectionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Record a new collection",
	Long: `Record a collection of a product from a producer, dated now.

The unit defaults to the product's default unit.

Examples:
  feira collection create --product 1 --producer 101 --quantity 12.5
  feira collection create --product 6 --producer 103 --quantity 4 --unit maço --notes "chuva"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		productID, _ := cmd.Flags().GetString("product")
		producerID, _ := cmd.Flags().GetString("producer")
		quantity, _ := cmd.Flags().GetFloat64("quantity")
		unit, _ := cmd.Flags().GetString("unit")
		technician, _ := cmd.Flags().GetString("technician")
		notes, _ := cmd.Flags().GetString("notes")

		if unit == "" && productID != "" {
			p, err := wire.CatalogService().GetProduct(ctx, productID)
			switch {
			case err == nil:
				unit = p.DefaultUnit()
			case errors.Is(err, collection.ErrProductNotFound):
				// reported by the create below
			default:
				return err
			}
		}

		_, err := wire.CollectionAdapter().Create(ctx, primary.CreateCollectionRequest{
			ProductID:    productID,
			ProducerID:   producerID,
			Quantity:     quantity,
			Unit:         unit,
			TechnicianID: technician,
			Notes:        notes,
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		return nil
	},
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	Long: `List collections, most recent first.

Only one filter applies, in this order: --date, --from/--to, --product,
--producer, --status. --limit caps the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := collectionFilters(cmd)
		if err != nil {
			return err
		}
		_, err = wire.CollectionAdapter().List(NewContext(), filters)
		return err
	},
}

var collectionShowCmd = &cobra.Command{
	Use:   "show [collection-id]",
	Short: "Show collection details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.CollectionAdapter().Show(NewContext(), args[0])
		return err
	},
}

var collectionPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List collections awaiting sync, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.CollectionAdapter().Pending(NewContext())
		return err
	},
}

var collectionMarkSyncedCmd = &cobra.Command{
	Use:   "mark-synced [collection-id...]",
	Short: "Mark collections as synchronized",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		adapter := wire.CollectionAdapter()
		for _, id := range args {
			if err := adapter.MarkSynced(ctx, id); err != nil {
				return err
			}
		}
		return nil
	},
}

var collectionMarkErrorCmd = &cobra.Command{
	Use:   "mark-error [collection-id...]",
	Short: "Mark collections as failed to synchronize",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		adapter := wire.CollectionAdapter()
		for _, id := range args {
			if err := adapter.MarkError(ctx, id); err != nil {
				return err
			}
		}
		return nil
	},
}

var collectionSetQuantityCmd = &cobra.Command{
	Use:   "set-quantity [collection-id] [quantity]",
	Short: "Change the quantity of a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := strconv.ParseFloat(strings.Replace(args[1], ",", ".", 1), 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		return wire.CollectionAdapter().SetQuantity(NewContext(), args[0], quantity)
	},
}

var collectionNoteCmd = &cobra.Command{
	Use:   "note [collection-id] [text]",
	Short: "Replace the notes of a collection (empty text clears them)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes := ""
		if len(args) == 2 {
			notes = args[1]
		}
		return wire.CollectionAdapter().Note(NewContext(), args[0], notes)
	},
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete [collection-id]",
	Short: "Delete a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CollectionAdapter().Delete(NewContext(), args[0])
	},
}

var collectionStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the count and total quantity of a day (default today)",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := dayFlag(cmd, "date")
		if err != nil {
			return err
		}
		if day == nil {
			now := time.Now()
			day = &now
		}
		_, err = wire.CollectionAdapter().Stats(NewContext(), *day)
		return err
	},
}

var collectionExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export collections as a JSON batch for the server",
	Long: `Write collections as a JSON batch tagged with this device's identifier.

With --pending only the sync queue is exported and the list filters are
ignored. The batch goes to stdout unless --output is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pendingOnly, _ := cmd.Flags().GetBool("pending")
		output, _ := cmd.Flags().GetString("output")

		filters, err := collectionFilters(cmd)
		if err != nil {
			return err
		}

		adapter := wire.CollectionAdapter()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()
			adapter = wire.CollectionAdapterWithOutput(f)
		}

		n, err := adapter.Export(NewContext(), filters, pendingOnly, wire.Config().Device.ID, time.Now())
		if err != nil {
			return fmt.Errorf("failed to export collections: %w", err)
		}
		if output != "" {
			fmt.Printf("✓ Exported %d collection(s) to %s\n", n, output)
		}
		return nil
	},
}

// collectionFilters reads the list filter flags shared by list and export.
func collectionFilters(cmd *cobra.Command) (primary.CollectionFilters, error) {
	var (
		filters primary.CollectionFilters
		err     error
	)
	if filters.Date, err = dayFlag(cmd, "date"); err != nil {
		return filters, err
	}
	if filters.From, err = dayFlag(cmd, "from"); err != nil {
		return filters, err
	}
	if filters.To, err = dayFlag(cmd, "to"); err != nil {
		return filters, err
	}
	if (filters.From == nil) != (filters.To == nil) {
		return filters, errors.New("--from and --to must be used together")
	}
	filters.ProductID, _ = cmd.Flags().GetString("product")
	filters.ProducerID, _ = cmd.Flags().GetString("producer")
	status, _ := cmd.Flags().GetString("status")
	filters.Status = syncstatus.Status(strings.ToUpper(status))
	filters.Limit, _ = cmd.Flags().GetInt("limit")
	return filters, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "only collections of this day (YYYY-MM-DD)")
	cmd.Flags().String("from", "", "period start day, inclusive (requires --to)")
	cmd.Flags().String("to", "", "period end day, inclusive (requires --from)")
	cmd.Flags().String("product", "", "only collections of this product")
	cmd.Flags().String("producer", "", "only collections from this producer")
	cmd.Flags().String("status", "", "only collections with this sync status (PENDING, SYNCED, ERROR)")
	cmd.Flags().Int("limit", 0, "maximum number of collections")
}

func init() {
	// collection create flags
	collectionCreateCmd.Flags().StringP("product", "p", "", "Product ID (required)")
	collectionCreateCmd.Flags().StringP("producer", "r", "", "Producer ID (required)")
	collectionCreateCmd.Flags().Float64P("quantity", "q", 0, "Quantity collected (required)")
	collectionCreateCmd.Flags().StringP("unit", "u", "", "Unit (default: the product's default unit)")
	collectionCreateCmd.Flags().String("technician", "", "Technician ID")
	collectionCreateCmd.Flags().StringP("notes", "n", "", "Free-text notes")
	collectionCreateCmd.MarkFlagRequired("product")
	collectionCreateCmd.MarkFlagRequired("producer")
	collectionCreateCmd.MarkFlagRequired("quantity")

	addFilterFlags(collectionListCmd)
	addFilterFlags(collectionExportCmd)
	collectionExportCmd.Flags().Bool("pending", false, "export only collections awaiting sync")
	collectionExportCmd.Flags().StringP("output", "o", "", "write the batch to this file")

	collectionStatsCmd.Flags().String("date", "", "day to summarize (YYYY-MM-DD, default today)")

	// Register subcommands
	collectionCmd.AddCommand(collectionCreateCmd)
	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionShowCmd)
	collectionCmd.AddCommand(collectionPendingCmd)
	collectionCmd.AddCommand(collectionMarkSyncedCmd)
	collectionCmd.AddCommand(collectionMarkErrorCmd)
	collectionCmd.AddCommand(collectionSetQuantityCmd)
	collectionCmd.AddCommand(collectionNoteCmd)
	collectionCmd.AddCommand(collectionDeleteCmd)
	collectionCmd.AddCommand(collectionStatsCmd)
	collectionCmd.AddCommand(collectionExportCmd)
}

// CollectionCmd returns the collection command
func CollectionCmd() *cobra.Command {
	return collectionCmd
}
