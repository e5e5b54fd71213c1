package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/simaogato/darkmoney-backend/internal/domain"
)

// snapshotRepository implements domain.SnapshotRepository
type snapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *DB) domain.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Load retrieves the snapshot document stored under storeName
func (r *snapshotRepository) Load(ctx context.Context, storeName string) (*domain.Snapshot, error) {
	query := `
		SELECT payload
		FROM snapshots
		WHERE store_name = $1
	`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query, storeName).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return &snap, nil
}

// Save upserts the snapshot document stored under storeName
func (r *snapshotRepository) Save(ctx context.Context, storeName string, snap *domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (store_name, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (store_name)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, storeName, string(payload)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}
