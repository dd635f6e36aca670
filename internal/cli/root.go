package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tempo/internal/config"
	"tempo/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "Personal time tracking from the command line",
	Long: `tempo logs durations of named activities under categories, shows daily and
rolling-window aggregates, and can import activity durations from a
fitness-tracking service.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles what every command needs: validated configuration and an open
// record store.
type app struct {
	cfg    *config.Config
	store  *storage.SQLiteStore
	logger *slog.Logger
}

// openApp initializes logging and configuration and opens the store. The
// returned cleanup must be deferred.
func openApp() (*app, func()) {
	logger := SetupLogger()
	LoadEnvFile()
	cfg := LoadAndValidateConfig(logger)
	store := InitStore(logger, cfg.DBPath)

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close record store", "error", err)
		}
	}
	return &app{cfg: cfg, store: store, logger: logger}, cleanup
}
