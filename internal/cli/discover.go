package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luvbee/event-spider/internal/config"
	"github.com/luvbee/event-spider/internal/db"
	"github.com/luvbee/event-spider/internal/logger"
)

var (
	flagCity   string
	flagState  string
	flagFormat string
)

func newDiscoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Run one discovery sweep for a city and exit",
		RunE:  runDiscover,
	}

	cmd.Flags().StringVar(&flagCity, "city", "", "City name, e.g. Curitiba (required)")
	cmd.Flags().StringVar(&flagState, "state", "", "Two-letter state code, e.g. PR (required)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	cmd.MarkFlagRequired("city")
	cmd.MarkFlagRequired("state")

	return cmd
}

func runDiscover(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(flagFormat)
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagConfig, flagEnvOnly)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close(dbConn)

	if err := db.AutoMigrate(dbConn); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sp := buildSpider(cfg, log, dbConn)
	result, err := sp.Run(ctx, flagCity, strings.ToUpper(strings.TrimSpace(flagState)))
	if err != nil {
		return fmt.Errorf("running sweep: %w", err)
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Found %d events: %d saved, %d updated\n", result.TotalFound, result.Saved, result.Updated)
	for _, msg := range result.Errors {
		fmt.Fprintf(os.Stderr, "source error: %s\n", msg)
	}
	if len(result.Errors) > 0 {
		log.Warn("sweep finished with source errors", zap.Int("count", len(result.Errors)))
	}
	return nil
}
