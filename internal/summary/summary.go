// Package summary turns raw activity records into the aggregates the
// presentation layer renders: per-day per-category totals over fixed rolling
// windows, and the derived daily productivity metrics. It only reads through
// the store's query surface and never mutates.
package summary

import (
	"context"
	"fmt"
	"time"

	"tempo/internal/core"
	"tempo/internal/storage"
)

// Window is a trailing range length in days. Only the three fixed windows
// are supported.
type Window int

const (
	Week  Window = 7
	Month Window = 30
	Year  Window = 365
)

func (w Window) Valid() bool {
	switch w {
	case Week, Month, Year:
		return true
	}
	return false
}

// WindowFromDays maps a day count to a supported window.
func WindowFromDays(days int) (Window, error) {
	w := Window(days)
	if !w.Valid() {
		return 0, fmt.Errorf("%w: %d days", core.ErrInvalidWindow, days)
	}
	return w, nil
}

// Store is the slice of the record store's query surface the engine needs.
type Store interface {
	SummarizeRange(ctx context.Context, since string) ([]storage.DailyCategorySum, error)
	GetActivitiesByDate(ctx context.Context, date string) ([]core.ActivityRecord, error)
}

// Service computes summaries over a record store.
type Service struct {
	store          Store
	classification core.Classification
	now            func() time.Time
}

func NewService(store Store, classification core.Classification) *Service {
	return &Service{
		store:          store,
		classification: classification,
		now:            time.Now,
	}
}

// WindowSummary returns, for every date within the trailing window that has
// records, the per-category duration totals. Days with no activity are absent
// from the result, not zero-filled; chart consumers handle sparse days.
func (s *Service) WindowSummary(ctx context.Context, w Window) (map[string]map[string]float64, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %d days", core.ErrInvalidWindow, int(w))
	}

	since := s.now().AddDate(0, 0, -int(w)).Format(core.DateLayout)
	sums, err := s.store.SummarizeRange(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("summarize range since %s: %w", since, err)
	}

	result := make(map[string]map[string]float64)
	for _, c := range sums {
		day := result[c.Date]
		if day == nil {
			day = make(map[string]float64)
			result[c.Date] = day
		}
		day[c.Category] += c.Hours
	}
	return result, nil
}

// ratioEpsilon is the smallest elapsed-since-midnight span the ratio divides
// by. Below it the ratio is reported undefined.
const ratioEpsilon = time.Second

// Productivity computes the day's tracked, exercise and improvement hours and
// the productivity ratio: tracked hours over hours elapsed since midnight of
// `at`. Exactly at midnight the ratio is undefined (Defined=false) instead of
// a division by zero.
func (s *Service) Productivity(ctx context.Context, date string, at time.Time) (core.ProductivityReport, error) {
	report := core.ProductivityReport{Date: date}

	records, err := s.store.GetActivitiesByDate(ctx, date)
	if err != nil {
		return report, fmt.Errorf("get activities for %s: %w", date, err)
	}

	for _, r := range records {
		report.TrackedHours += r.Duration
		tag, ok := s.classification.Tag(r.Category)
		if !ok {
			continue
		}
		switch tag {
		case core.TagExercise:
			report.ExerciseHours += r.Duration
		case core.TagImprovement:
			report.ImprovementHours += r.Duration
		}
	}

	midnight := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	elapsed := at.Sub(midnight)
	if elapsed >= ratioEpsilon {
		report.Ratio = report.TrackedHours / elapsed.Hours()
		report.Defined = true
	}

	return report, nil
}
