// Package cli provides CLI commands for the feira application.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/feira/internal/config"
	"github.com/example/feira/internal/wire"
)

// globalOverrides collects the persistent root flags for the current invocation.
var globalOverrides config.Overrides

// dayLayouts are the accepted --date formats, ISO first.
var dayLayouts = []string{"2006-01-02", "02/01/2006"}

// RegisterGlobalFlags adds the persistent flags every command understands.
func RegisterGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&globalOverrides.Dir, "dir", "", "data directory (default ~/.feira)")
	root.PersistentFlags().StringVar(&globalOverrides.DBPath, "db", "", "database file (default <dir>/feira_coleta.db)")
	root.PersistentFlags().StringVar(&globalOverrides.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// ApplyGlobalFlags hands the parsed root flags to the wire container.
// Should be called once at CLI startup in PersistentPreRun.
func ApplyGlobalFlags() {
	wire.Configure(globalOverrides)
}

// NewContext creates the context for one command invocation.
// CLI commands should use this instead of context.Background() directly.
func NewContext() context.Context {
	return context.Background()
}

// parseDay parses a calendar day in the local timezone.
func parseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dayLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD or DD/MM/YYYY)", raw)
}

// dayFlag parses the named flag when it was set.
func dayFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil, nil
	}
	t, err := parseDay(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
