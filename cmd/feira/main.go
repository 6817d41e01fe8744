package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/feira/internal/cli"
	"github.com/example/feira/internal/version"
	"github.com/example/feira/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "feira",
		Short:   "feira - offline collection log for farmers' market technicians",
		Version: version.String(),
		Long: `feira records collections of products from producers in a local SQLite
store and keeps each record's sync state until it reaches the server.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.ApplyGlobalFlags()
		},
	}
	cli.RegisterGlobalFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	// Entity commands
	rootCmd.AddCommand(cli.CollectionCmd())
	rootCmd.AddCommand(cli.ProductCmd())
	rootCmd.AddCommand(cli.ProducerCmd())

	err := rootCmd.Execute()
	if cerr := wire.Close(); cerr != nil {
		fmt.Fprintln(os.Stderr, cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
