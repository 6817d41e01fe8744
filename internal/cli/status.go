package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/feira/internal/db"
	"github.com/example/feira/internal/wire"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database location, table sizes and today's activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		database := wire.Database()
		cfg := wire.Config()

		fmt.Println("feira status")
		fmt.Println()
		fmt.Printf("Database: %s\n", database.Path())
		fmt.Printf("SQLite:   %s\n", database.SQLiteVersion(ctx))
		if cfg.Device.ID != "" {
			fmt.Printf("Device:   %s\n", cfg.Device.ID)
		} else {
			fmt.Println("Device:   (not set, run `feira init`)")
		}
		fmt.Println()

		for _, table := range db.Tables {
			n, err := database.Count(ctx, table, "")
			if err != nil {
				return fmt.Errorf("failed to read status: %w", err)
			}
			fmt.Printf("  %-18s %d\n", table, n)
		}
		fmt.Println()

		summary, err := wire.CollectionService().DailySummary(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("failed to read status: %w", err)
		}
		pending, err := wire.CollectionService().ListPendingSync(ctx)
		if err != nil {
			return fmt.Errorf("failed to read status: %w", err)
		}
		fmt.Printf("Today:        %d collection(s), %g total\n", summary.Count, summary.TotalQuantity)
		fmt.Printf("Pending sync: %d\n", len(pending))
		return nil
	},
}

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return statusCmd
}
