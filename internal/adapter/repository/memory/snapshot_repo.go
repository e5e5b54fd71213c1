package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/simaogato/darkmoney-backend/internal/domain"
)

// SnapshotRepository keeps snapshots in process memory.
// Snapshots are stored as encoded documents so callers never share state with the store.
type SnapshotRepository struct {
	mu     sync.RWMutex
	stores map[string][]byte
}

// NewSnapshotRepository creates an empty in-memory repository
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{stores: make(map[string][]byte)}
}

// Load implements domain.SnapshotRepository
func (r *SnapshotRepository) Load(_ context.Context, storeName string) (*domain.Snapshot, error) {
	r.mu.RLock()
	payload, ok := r.stores[storeName]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Save implements domain.SnapshotRepository
func (r *SnapshotRepository) Save(_ context.Context, storeName string, snap *domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	r.mu.Lock()
	r.stores[storeName] = payload
	r.mu.Unlock()
	return nil
}
