package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tempo/internal/core"
	"tempo/internal/services"
)

// Config holds configuration for the sync worker.
type Config struct {
	// PollInterval is how often today's provider activities are merged.
	PollInterval time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{PollInterval: 15 * time.Minute}
}

// SyncWorker periodically merges the current day's provider activities into
// the store, off the caller's synchronous path. Provider failures are logged
// and retried on the next tick; they never stop the loop.
type SyncWorker struct {
	sync   *services.SyncService
	config Config

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewSyncWorker(syncService *services.SyncService, config Config) *SyncWorker {
	return &SyncWorker{sync: syncService, config: config}
}

// Start begins the merge loop. Returns an error if already running.
func (w *SyncWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("sync worker is already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.runLoop(ctx)

	slog.InfoContext(ctx, "Sync worker started",
		"poll_interval", w.config.PollInterval)

	return nil
}

// Stop gracefully stops the worker and waits for the loop to finish.
func (w *SyncWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)

	select {
	case <-w.doneCh:
		slog.InfoContext(ctx, "Sync worker stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Sync worker stop timed out")
		return ctx.Err()
	}

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	return nil
}

// IsRunning reports whether the worker loop is active.
func (w *SyncWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *SyncWorker) runLoop(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	// Merge immediately on startup, then on every tick.
	w.mergeToday(ctx)

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.mergeToday(ctx)
		}
	}
}

func (w *SyncWorker) mergeToday(ctx context.Context) {
	result, err := w.sync.MergeDay(ctx, core.Today())
	if err != nil {
		if errors.Is(err, core.ErrSyncFailed) {
			slog.WarnContext(ctx, "Provider sync failed, will retry next tick", "error", err)
		} else {
			slog.ErrorContext(ctx, "Sync merge failed", "error", err)
		}
		return
	}

	if result.Imported > 0 {
		slog.InfoContext(ctx, "Imported provider activities",
			"run_id", result.RunID,
			"date", result.Date,
			"imported", result.Imported)
	}
}
