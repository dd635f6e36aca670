// Package googlefit adapts the Google Fit sessions API to the
// ActivityProvider port.
package googlefit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"tempo/internal/core"
	ports "tempo/internal/provider"

	"google.golang.org/api/fitness/v1"
	goption "google.golang.org/api/option"
)

type Client struct {
	svc *fitness.Service
}

var _ ports.ActivityProvider = (*Client)(nil)

// NewFromEnv creates a Google Fit client using environment variables.
// Credentials come from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE
// or GOOGLE_APPLICATION_CREDENTIALS, in that order.
func NewFromEnv(ctx context.Context) (*Client, error) {
	svc, err := newFitnessService(ctx)
	if err != nil {
		return nil, fmt.Errorf("fitness service: %w", err)
	}
	return &Client{svc: svc}, nil
}

func newFitnessService(ctx context.Context) (*fitness.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))

	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		data, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing Google Fit credentials: set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE")
	}

	svc, err := fitness.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(fitness.FitnessActivityReadScope))
	if err != nil {
		return nil, fmt.Errorf("new fitness service: %w", err)
	}
	return svc, nil
}

// FetchDay lists the sessions recorded on the given calendar date and
// converts them to (name, hours) pairs.
func (c *Client) FetchDay(ctx context.Context, date string) ([]core.ProviderActivity, error) {
	day, err := time.ParseInLocation(core.DateLayout, date, time.Local)
	if err != nil {
		return nil, core.ErrInvalidDate
	}
	start := day
	end := day.AddDate(0, 0, 1)

	resp, err := c.svc.Users.Sessions.List("me").
		StartTime(start.Format(time.RFC3339)).
		EndTime(end.Format(time.RFC3339)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list sessions for %s: %w", date, err)
	}

	activities := sessionsToActivities(resp.Session)
	slog.InfoContext(ctx, "Fetched Google Fit sessions",
		"date", date,
		"sessions", len(resp.Session),
		"activities", len(activities))

	return activities, nil
}

// sessionsToActivities converts API sessions to provider activities,
// dropping sessions without a positive duration.
func sessionsToActivities(sessions []*fitness.Session) []core.ProviderActivity {
	out := make([]core.ProviderActivity, 0, len(sessions))
	for _, s := range sessions {
		if s == nil || s.EndTimeMillis <= s.StartTimeMillis {
			continue
		}
		hours := float64(s.EndTimeMillis-s.StartTimeMillis) / 1000 / 60 / 60
		out = append(out, core.ProviderActivity{Name: s.Name, Hours: hours})
	}
	return out
}
