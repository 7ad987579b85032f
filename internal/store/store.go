// Package store implements the snapshot storage gateway. The engine persists
// its full state after every mutation; writes are issued fire-and-forget, so
// implementations must be safe to call from a background goroutine.
package store

import (
	"context"

	"github.com/JunoAX/chorepoints-go/internal/models"
)

// Store loads and saves full state snapshots. Load returns (nil, nil) when no
// snapshot exists yet.
type Store interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
	Close()
}
