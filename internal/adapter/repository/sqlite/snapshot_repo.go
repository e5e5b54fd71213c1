package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/simaogato/darkmoney-backend/internal/domain"

	_ "modernc.org/sqlite"
)

// SnapshotRepository stores one JSON snapshot document per store name in SQLite
type SnapshotRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSnapshotRepository opens (creating if needed) the database at dbPath and migrates it
func NewSnapshotRepository(dbPath string, log zerolog.Logger) (*SnapshotRepository, error) {
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

	return &SnapshotRepository{
		db:  db,
		log: log.With().Str("component", "sqlite_repository").Logger(),
	}, nil
}

// Close closes the database
func (r *SnapshotRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements domain.SnapshotRepository
func (r *SnapshotRepository) Load(ctx context.Context, storeName string) (*domain.Snapshot, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE store_name = ?`, storeName).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	return &snap, nil
}

// Save implements domain.SnapshotRepository
func (r *SnapshotRepository) Save(ctx context.Context, storeName string, snap *domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (store_name, payload, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		ON CONFLICT (store_name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, storeName, string(payload))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	r.log.Debug().
		Str("store", storeName).
		Int("transactions", len(snap.Transactions)).
		Int("bytes", len(payload)).
		Msg("snapshot saved")

	return nil
}
