package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tempo/internal/config"
	"tempo/internal/core"
	"tempo/internal/provider"
	"tempo/internal/provider/googlefit"
	"tempo/internal/provider/memory"
	"tempo/internal/services"
	"tempo/internal/worker"
)

var syncCmd = &cobra.Command{
	Use:   "sync [date]",
	Short: "Import activities from the configured provider",
	Long: `Merge a day's externally recorded activities into the store. The merge is
idempotent: re-running it for the same day and provider response adds nothing.

With --follow the command keeps running and merges today's activities on an
interval (TEMPO_SYNC_INTERVAL) until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

var syncFollow bool

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncFollow, "follow", false, "Keep syncing today on an interval")
}

func newProvider(ctx context.Context, cfg *config.Config) (provider.ActivityProvider, error) {
	switch cfg.Provider {
	case config.ProviderGoogleFit:
		return googlefit.NewFromEnv(ctx)
	case config.ProviderMemory:
		return memory.NewFromFile(cfg.ProviderSeedFile), nil
	default:
		return nil, fmt.Errorf("no activity provider configured: set TEMPO_PROVIDER to %q or %q",
			config.ProviderGoogleFit, config.ProviderMemory)
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	app, cleanup := openApp()
	defer cleanup()
	ctx := context.Background()

	prov, err := newProvider(ctx, app.cfg)
	if err != nil {
		return err
	}
	syncService := services.NewSyncService(app.store, prov)

	if syncFollow {
		if len(args) != 0 {
			return fmt.Errorf("--follow always syncs today; drop the date argument")
		}
		return followSync(app, syncService)
	}

	date := core.Today()
	if len(args) == 1 {
		if date, err = core.ParseDate(args[0]); err != nil {
			return err
		}
	}

	result, err := syncService.MergeDay(ctx, date)
	if err != nil {
		return err
	}
	fmt.Printf("Synced %s: %d imported, %d already present\n", date, result.Imported, result.Skipped)
	return nil
}

func followSync(app *app, syncService *services.SyncService) error {
	w := worker.NewSyncWorker(syncService, worker.Config{PollInterval: app.cfg.SyncInterval})

	ctx, done := GracefulShutdown(app.logger, 30*time.Second, func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := w.Stop(stopCtx); err != nil {
			app.logger.Error("Failed to stop sync worker", "error", err)
		}
	})

	if err := w.Start(ctx); err != nil {
		return err
	}

	WaitForShutdown(ctx, done)
	return nil
}
