package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagEnvOnly bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event-spider",
		Short: "Discover nearby events from Brazilian ticketing sites",
		Long: `event-spider sweeps Sympla, Eventbrite, Ingresse and Shotgun for
upcoming events in a city and upserts them into the locations table.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "config/config.yaml", "Path to the YAML config file")
	cmd.PersistentFlags().BoolVar(&flagEnvOnly, "env-only", false, "Skip the config file and read SPIDER_* env vars only")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newDiscoverCmd())

	return cmd
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
