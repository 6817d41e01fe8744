package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/feira/internal/config"
	"github.com/example/feira/internal/wire"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the feira data directory and database",
	Long: `Create the data directory, the collection database with its schema and
the reference catalog, and a config.json carrying this device's identifier.

Running init again is safe: existing data and settings are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		cfg := wire.Config()
		database := wire.Database()

		fmt.Printf("Initializing feira database at %s\n", database.Path())
		if err := database.Open(ctx); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		fmt.Println("✓ Database initialized successfully")

		products, err := database.Count(ctx, "products", "")
		if err != nil {
			return err
		}
		producers, err := database.Count(ctx, "producers", "")
		if err != nil {
			return err
		}
		fmt.Printf("✓ Catalog ready: %d product(s), %d producer(s)\n", products, producers)

		if !config.Exists(cfg.Dir) || cfg.Device.ID == "" {
			if cfg.Device.ID == "" {
				cfg.Device.ID = uuid.NewString()
			}
			if err := config.Save(cfg.Dir, cfg); err != nil {
				return err
			}
			fmt.Printf("✓ Config written (device %s)\n", cfg.Device.ID)
		}

		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Println("  feira product list")
		fmt.Println("  feira collection create --product 1 --producer 101 --quantity 10")
		return nil
	},
}

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return initCmd
}
