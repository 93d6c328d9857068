// Package repository holds the read-only dashboard state derived at startup.
package repository

import (
	"context"

	"github.com/okian/squadform/internal/domain/metric"
	"github.com/okian/squadform/internal/domain/model"
)

// Store provides read access to the derived dashboard state.
type Store interface {
	// Rebuild derives a new snapshot from records and publishes it.
	Rebuild(ctx context.Context, records []model.PlayerRecord, reg *metric.Registry) error

	// Current returns the published snapshot or ErrNoSnapshot.
	Current() (*Snapshot, error)

	// Player returns one record by id. Returns ErrNotFound if the id is unknown.
	Player(ctx context.Context, id string) (model.PlayerRecord, error)

	// TopN returns the top-N ranked records, highest season average first.
	TopN(ctx context.Context, n int) ([]model.RankedPlayer, error)

	// Count returns the number of records in the current snapshot.
	Count(ctx context.Context) int
}
