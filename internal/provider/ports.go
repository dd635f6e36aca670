// Package provider defines the port for external activity suppliers.
package provider

import (
	"context"

	"tempo/internal/core"
)

// ActivityProvider supplies one day's recorded activities from an external
// service: (name, duration hours) pairs. Authentication and transport are the
// adapter's business; callers see only the finished sequence or an error.
type ActivityProvider interface {
	FetchDay(ctx context.Context, date string) ([]core.ProviderActivity, error)
}
