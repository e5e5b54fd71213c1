package domain

import (
	"context"
	"time"
)

// SnapshotRepository defines the interface for snapshot persistence operations.
// A store holds exactly one snapshot, addressed by its store name.
type SnapshotRepository interface {
	// Load retrieves the snapshot saved under storeName
	// Returns ErrSnapshotNotFound if the store has never been saved
	Load(ctx context.Context, storeName string) (*Snapshot, error)

	// Save replaces the snapshot saved under storeName
	Save(ctx context.Context, storeName string, snap *Snapshot) error
}

// SnapshotCache defines the interface for a byte-level snapshot cache
type SnapshotCache interface {
	// Get returns the cached payload and whether it was present
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores payload under key for ttl (zero means no expiry)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Delete removes key from the cache
	Delete(ctx context.Context, key string) error
}
