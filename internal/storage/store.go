package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tempo/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore owns the activities and categories tables. It is the single
// source of truth for records; everything else reads through its query
// methods and never holds a competing writable handle.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and brings
// the schema up to date. Callers own the returned store and must Close it.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AddActivity appends a record. Duplicate (date, category, activity) content
// is legal: two sessions of the same activity on the same day are two rows.
// An empty category means "uncategorized".
func (s *SQLiteStore) AddActivity(ctx context.Context, date, activity string, duration float64, category string) error {
	rec := core.ActivityRecord{Date: date, Category: category, Activity: activity, Duration: duration}
	if err := rec.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activities (date, category, activity, duration) VALUES (?, ?, ?, ?)`,
		rec.Date, rec.Category, rec.Activity, rec.Duration)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}

	slog.InfoContext(ctx, "Activity saved",
		"date", rec.Date,
		"category", rec.Category,
		"activity", rec.Activity,
		"hours", rec.Duration)

	return nil
}

// AddTodayActivity binds the date to the current day.
func (s *SQLiteStore) AddTodayActivity(ctx context.Context, category, activity string, duration float64) error {
	return s.AddActivity(ctx, core.Today(), activity, duration, category)
}

// EditActivity sets the duration on every record matching (date, activity)
// and reports how many rows changed. Zero means nothing matched; callers
// should surface that instead of treating the edit as applied.
func (s *SQLiteStore) EditActivity(ctx context.Context, date, activity string, duration float64) (int64, error) {
	if duration <= 0 {
		return 0, core.ErrInvalidDuration
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE activities SET duration=? WHERE date=? AND activity=?`,
		duration, date, activity)
	if err != nil {
		return 0, fmt.Errorf("update activity: %w", err)
	}
	return rowsAffected(res)
}

// EditActivityInCategory is the category-qualified form of EditActivity,
// disambiguating same-name activities living under different categories.
func (s *SQLiteStore) EditActivityInCategory(ctx context.Context, date, activity, category string, duration float64) (int64, error) {
	if duration <= 0 {
		return 0, core.ErrInvalidDuration
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE activities SET duration=? WHERE date=? AND activity=? AND category=?`,
		duration, date, activity, category)
	if err != nil {
		return 0, fmt.Errorf("update activity: %w", err)
	}
	return rowsAffected(res)
}

// RemoveActivity deletes every record matching (date, activity) and reports
// how many rows went away.
func (s *SQLiteStore) RemoveActivity(ctx context.Context, date, activity string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM activities WHERE date=? AND activity=?`,
		date, activity)
	if err != nil {
		return 0, fmt.Errorf("delete activity: %w", err)
	}
	return rowsAffected(res)
}

// RemoveActivityByDuration additionally filters by exact duration, so one of
// several same-name sessions on a day can be removed without touching the rest.
func (s *SQLiteStore) RemoveActivityByDuration(ctx context.Context, date, activity string, duration float64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM activities WHERE date=? AND activity=? AND duration=?`,
		date, activity, duration)
	if err != nil {
		return 0, fmt.Errorf("delete activity: %w", err)
	}
	return rowsAffected(res)
}

// GetDates returns every date with at least one record, deduplicated, newest
// first.
func (s *SQLiteStore) GetDates(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT date FROM activities ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// GetActivitiesByDate returns the date's records in insertion order.
func (s *SQLiteStore) GetActivitiesByDate(ctx context.Context, date string) ([]core.ActivityRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, category, activity, duration FROM activities WHERE date=? ORDER BY id`,
		date)
	if err != nil {
		return nil, fmt.Errorf("query activities by date: %w", err)
	}
	defer rows.Close()

	var records []core.ActivityRecord
	for rows.Next() {
		var r core.ActivityRecord
		if err := rows.Scan(&r.ID, &r.Date, &r.Category, &r.Activity, &r.Duration); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetTodayActivitiesGroupedByCategory sums today's durations grouped by the
// (category, activity) pair. Two categories may each hold an activity of the
// same name with independent totals.
func (s *SQLiteStore) GetTodayActivitiesGroupedByCategory(ctx context.Context) (map[string][]core.ActivityTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, activity, SUM(duration) FROM activities WHERE date=? GROUP BY category, activity`,
		core.Today())
	if err != nil {
		return nil, fmt.Errorf("query today grouped: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]core.ActivityTotal)
	for rows.Next() {
		var category string
		var total core.ActivityTotal
		if err := rows.Scan(&category, &total.Activity, &total.Hours); err != nil {
			return nil, fmt.Errorf("scan grouped row: %w", err)
		}
		grouped[category] = append(grouped[category], total)
	}
	return grouped, rows.Err()
}

// AddCategory inserts a category name. Inserting an existing name is a no-op,
// not an error.
func (s *SQLiteStore) AddCategory(ctx context.Context, name string) error {
	if err := core.ValidateCategoryName(name); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO categories (name) VALUES (?)`, name)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetCategories returns all category names in arbitrary order.
func (s *SQLiteStore) GetCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()
	return scanNames(rows)
}

// SearchCategories matches names containing the term, case-insensitively.
func (s *SQLiteStore) SearchCategories(ctx context.Context, term string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM categories WHERE name LIKE ?`, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}
	defer rows.Close()
	return scanNames(rows)
}

// DailyCategorySum is one (date, category) cell of a range summary.
type DailyCategorySum struct {
	Date     string
	Category string
	Hours    float64
}

// SummarizeRange sums durations grouped by (date, category) for all records
// with date >= since, oldest date first. Days without records simply do not
// appear.
func (s *SQLiteStore) SummarizeRange(ctx context.Context, since string) ([]DailyCategorySum, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, category, SUM(duration) FROM activities
		 WHERE date >= ? GROUP BY date, category ORDER BY date ASC`,
		since)
	if err != nil {
		return nil, fmt.Errorf("query range summary: %w", err)
	}
	defer rows.Close()

	var sums []DailyCategorySum
	for rows.Next() {
		var c DailyCategorySum
		if err := rows.Scan(&c.Date, &c.Category, &c.Hours); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		sums = append(sums, c)
	}
	return sums, rows.Err()
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func scanNames(rows *sql.Rows) ([]string, error) {
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
