package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tempo/internal/core"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "tempo.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAddActivityRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.AddActivity(ctx, "2024-01-05", "Read", 3.5, "Books"); err != nil {
		t.Fatalf("add: %v", err)
	}

	records, err := store.GetActivitiesByDate(ctx, "2024-01-05")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	r := records[0]
	if r.Activity != "Read" || r.Category != "Books" || r.Duration != 3.5 {
		t.Errorf("got (%q, %q, %v), want (Read, Books, 3.5)", r.Activity, r.Category, r.Duration)
	}
	if r.ID == 0 {
		t.Error("expected an assigned id")
	}
}

func TestAddActivityDuplicatesAreAdditive(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// Two sessions of the same activity are two rows, never merged.
	for i := 0; i < 2; i++ {
		if err := store.AddActivity(ctx, "2024-01-05", "Email", 1.0, "Work"); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	records, err := store.GetActivitiesByDate(ctx, "2024-01-05")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
}

func TestAddActivityValidation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.AddActivity(ctx, "2024-01-05", "Read", -1, ""); !errors.Is(err, core.ErrInvalidDuration) {
		t.Errorf("negative duration: got %v, want ErrInvalidDuration", err)
	}
	if err := store.AddActivity(ctx, "someday", "Read", 1, ""); !errors.Is(err, core.ErrInvalidDate) {
		t.Errorf("bad date: got %v, want ErrInvalidDate", err)
	}
}

func TestEditActivityReportsRowsAffected(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.AddActivity(ctx, "2024-01-05", "Read", 1.0, "Books"); err != nil {
		t.Fatalf("add: %v", err)
	}

	affected, err := store.EditActivity(ctx, "2024-01-05", "Read", 2.0)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}

	// A non-matching edit is not an error, but it must say zero rows changed.
	affected, err = store.EditActivity(ctx, "2024-01-05", "Nope", 2.0)
	if err != nil {
		t.Fatalf("edit miss: %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0", affected)
	}

	records, _ := store.GetActivitiesByDate(ctx, "2024-01-05")
	if records[0].Duration != 2.0 {
		t.Errorf("duration = %v, want 2.0", records[0].Duration)
	}
}

func TestEditActivityInCategory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// Same activity name under two categories; only one may change.
	store.AddActivity(ctx, "2024-01-05", "Reading", 1.0, "Leisure")
	store.AddActivity(ctx, "2024-01-05", "Reading", 1.0, "Study")

	affected, err := store.EditActivityInCategory(ctx, "2024-01-05", "Reading", "Study", 3.0)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected = %d, want 1", affected)
	}

	records, _ := store.GetActivitiesByDate(ctx, "2024-01-05")
	for _, r := range records {
		want := 1.0
		if r.Category == "Study" {
			want = 3.0
		}
		if r.Duration != want {
			t.Errorf("category %s duration = %v, want %v", r.Category, r.Duration, want)
		}
	}
}

func TestRemoveActivityByDurationDisambiguates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.AddActivity(ctx, "2024-01-05", "Read", 1.0, "")
	store.AddActivity(ctx, "2024-01-05", "Read", 2.0, "")

	affected, err := store.RemoveActivityByDuration(ctx, "2024-01-05", "Read", 1.0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected = %d, want 1", affected)
	}

	records, err := store.GetActivitiesByDate(ctx, "2024-01-05")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(records) != 1 || records[0].Duration != 2.0 {
		t.Errorf("expected only the 2.0-hour record to remain, got %+v", records)
	}
}

func TestRemoveActivityReportsRowsAffected(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.AddActivity(ctx, "2024-01-05", "Read", 1.0, "")

	affected, err := store.RemoveActivity(ctx, "2024-01-05", "Gone")
	if err != nil {
		t.Fatalf("remove miss: %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0", affected)
	}

	affected, err = store.RemoveActivity(ctx, "2024-01-05", "Read")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}
}

func TestGetDatesDescendingDeduplicated(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.AddActivity(ctx, "2024-01-01", "A", 1, "")
	store.AddActivity(ctx, "2024-03-01", "B", 1, "")
	store.AddActivity(ctx, "2024-02-01", "C", 1, "")
	store.AddActivity(ctx, "2024-02-01", "D", 1, "")

	dates, err := store.GetDates(ctx)
	if err != nil {
		t.Fatalf("dates: %v", err)
	}
	want := []string{"2024-03-01", "2024-02-01", "2024-01-01"}
	if len(dates) != len(want) {
		t.Fatalf("dates = %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("dates = %v, want %v", dates, want)
		}
	}
}

func TestGetTodayActivitiesGroupedByCategory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	today := core.Today()

	store.AddActivity(ctx, today, "Email", 1.0, "Work")
	store.AddActivity(ctx, today, "Email", 0.5, "Work")
	store.AddActivity(ctx, today, "Run", 2.0, "Fitness")
	// Other days must not leak into today's grouping.
	store.AddActivity(ctx, "2020-01-01", "Email", 9.0, "Work")

	grouped, err := store.GetTodayActivitiesGroupedByCategory(ctx)
	if err != nil {
		t.Fatalf("grouped: %v", err)
	}
	if len(grouped) != 2 {
		t.Fatalf("categories = %d, want 2", len(grouped))
	}

	work := grouped["Work"]
	if len(work) != 1 || work[0].Activity != "Email" || work[0].Hours != 1.5 {
		t.Errorf("Work = %+v, want [{Email 1.5}]", work)
	}
	fitness := grouped["Fitness"]
	if len(fitness) != 1 || fitness[0].Activity != "Run" || fitness[0].Hours != 2.0 {
		t.Errorf("Fitness = %+v, want [{Run 2}]", fitness)
	}
}

func TestGroupingKeyIsCategoryActivityPair(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	today := core.Today()

	// Same activity name in two categories keeps independent totals.
	store.AddActivity(ctx, today, "Reading", 1.0, "Leisure")
	store.AddActivity(ctx, today, "Reading", 2.0, "Study")

	grouped, err := store.GetTodayActivitiesGroupedByCategory(ctx)
	if err != nil {
		t.Fatalf("grouped: %v", err)
	}
	if grouped["Leisure"][0].Hours != 1.0 || grouped["Study"][0].Hours != 2.0 {
		t.Errorf("totals merged across categories: %+v", grouped)
	}
}

func TestAddCategoryIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.AddCategory(ctx, "Work"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := store.AddCategory(ctx, "Work"); err != nil {
		t.Fatalf("second add should be a no-op, got %v", err)
	}

	names, err := store.GetCategories(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	count := 0
	for _, n := range names {
		if n == "Work" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Work appears %d times, want 1", count)
	}
}

func TestAddCategoryRejectsBlank(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.AddCategory(ctx, "  "); !errors.Is(err, core.ErrEmptyCategory) {
		t.Errorf("got %v, want ErrEmptyCategory", err)
	}
}

func TestSearchCategories(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, name := range []string{"Work", "Workout", "Reading"} {
		if err := store.AddCategory(ctx, name); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	names, err := store.SearchCategories(ctx, "work")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("matches = %v, want [Work Workout]", names)
	}

	names, err = store.SearchCategories(ctx, "zzz")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("matches = %v, want none", names)
	}
}

func TestSummarizeRange(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.AddActivity(ctx, "2024-01-01", "Old", 5.0, "Work")
	store.AddActivity(ctx, "2024-06-01", "Email", 1.0, "Work")
	store.AddActivity(ctx, "2024-06-01", "Call", 0.5, "Work")
	store.AddActivity(ctx, "2024-06-02", "Run", 2.0, "Fitness")

	sums, err := store.SummarizeRange(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("sums = %+v, want 2 cells", sums)
	}
	if sums[0].Date != "2024-06-01" || sums[0].Category != "Work" || sums[0].Hours != 1.5 {
		t.Errorf("first cell = %+v, want {2024-06-01 Work 1.5}", sums[0])
	}
	if sums[1].Date != "2024-06-02" || sums[1].Category != "Fitness" || sums[1].Hours != 2.0 {
		t.Errorf("second cell = %+v, want {2024-06-02 Fitness 2}", sums[1])
	}
}
