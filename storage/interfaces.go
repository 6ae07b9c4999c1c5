package storage

import (
	"context"

	"vehicle-insights/models"
)

// ListingSource is the interface any dataset backend must satisfy.
// Load failures are returned as *models.DataUnavailableError.
type ListingSource interface {
	Load(ctx context.Context) (*models.Dataset, error)
	Close() error
}
