package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar-date form used everywhere: as the activities
// table partition key, in queries and on the CLI.
const DateLayout = "2006-01-02"

type (
	// ActivityRecord is one logged (date, category, activity, duration) entry.
	// Duplicate (date, category, activity) rows with different durations are
	// legitimate: the store appends, it never merges.
	ActivityRecord struct {
		ID       int64
		Date     string // DateLayout form
		Category string // empty string means "uncategorized"
		Activity string
		Duration float64 // hours
	}

	// ActivityTotal is an activity with its summed duration within one category.
	ActivityTotal struct {
		Activity string
		Hours    float64
	}

	// ProviderActivity is one entry of an external provider's day: the
	// provider-reported activity name and its duration in hours.
	ProviderActivity struct {
		Name  string
		Hours float64
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrEmptyCategory   = errors.New("empty category name")
	ErrInvalidWindow   = errors.New("unsupported summary window")
	ErrSyncFailed      = errors.New("sync failed")
)

// ParseDate validates a calendar date string and normalizes it to DateLayout.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(DateLayout), nil
}

// Today returns the current calendar date in DateLayout form.
func Today() string {
	return time.Now().Format(DateLayout)
}

// Validate rejects records the store must never see: an unparseable date or a
// non-positive duration. The activity name may be empty (provider imports keep
// their label in the category field) and so may the category.
func (r ActivityRecord) Validate() error {
	if _, err := ParseDate(r.Date); err != nil {
		return err
	}
	if r.Duration <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// ValidateCategoryName rejects blank names before they reach the categories table.
func ValidateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyCategory
	}
	return nil
}
