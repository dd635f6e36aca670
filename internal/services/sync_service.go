package services

import (
	"context"
	"fmt"
	"log/slog"

	"tempo/internal/core"
	"tempo/internal/provider"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// SyncStore is the slice of the record store the merge needs.
type SyncStore interface {
	GetActivitiesByDate(ctx context.Context, date string) ([]core.ActivityRecord, error)
	AddActivity(ctx context.Context, date, activity string, duration float64, category string) error
}

// SyncService merges a provider's day into the record store. The merge is an
// idempotent upsert-by-absence: an incoming (name, hours) pair becomes the
// triple (category=name, activity="", duration=hours), and is inserted only
// if that exact triple is not already stored for the date. Re-running a merge
// for the same provider response adds nothing.
type SyncService struct {
	store    SyncStore
	provider provider.ActivityProvider
	group    singleflight.Group
}

func NewSyncService(store SyncStore, p provider.ActivityProvider) *SyncService {
	return &SyncService{store: store, provider: p}
}

// SyncResult reports what one merge run did.
type SyncResult struct {
	RunID    string
	Date     string
	Imported int
	Skipped  int
}

type recordKey struct {
	category string
	activity string
	duration float64
}

// MergeDay fetches the date's activities from the provider and stores the
// absent ones. Concurrent merges for the same date are collapsed into one
// run. Provider failures come back as core.ErrSyncFailed; store failures
// propagate as storage errors.
func (s *SyncService) MergeDay(ctx context.Context, date string) (SyncResult, error) {
	v, err, _ := s.group.Do(date, func() (any, error) {
		return s.mergeDay(ctx, date)
	})
	if err != nil {
		return SyncResult{}, err
	}
	return v.(SyncResult), nil
}

func (s *SyncService) mergeDay(ctx context.Context, date string) (SyncResult, error) {
	result := SyncResult{RunID: uuid.NewString(), Date: date}

	if _, err := core.ParseDate(date); err != nil {
		return result, err
	}

	incoming, err := s.provider.FetchDay(ctx, date)
	if err != nil {
		slog.ErrorContext(ctx, "Provider fetch failed",
			"run_id", result.RunID, "date", date, "error", err)
		return result, fmt.Errorf("%w: fetch %s: %v", core.ErrSyncFailed, date, err)
	}

	existing, err := s.store.GetActivitiesByDate(ctx, date)
	if err != nil {
		return result, fmt.Errorf("read existing records: %w", err)
	}

	present := make(map[recordKey]bool, len(existing))
	for _, r := range existing {
		present[recordKey{r.Category, r.Activity, r.Duration}] = true
	}

	for _, in := range incoming {
		if in.Hours <= 0 {
			result.Skipped++
			continue
		}
		// The provider-reported name becomes the category label; the
		// activity field stays empty for imported records.
		key := recordKey{category: in.Name, activity: "", duration: in.Hours}
		if present[key] {
			result.Skipped++
			continue
		}
		if err := s.store.AddActivity(ctx, date, "", in.Hours, in.Name); err != nil {
			return result, fmt.Errorf("store imported record: %w", err)
		}
		present[key] = true
		result.Imported++
	}

	slog.InfoContext(ctx, "Sync merge completed",
		"run_id", result.RunID,
		"date", date,
		"incoming", len(incoming),
		"imported", result.Imported,
		"skipped", result.Skipped)

	return result, nil
}
