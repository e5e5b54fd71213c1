package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/simaogato/darkmoney-backend/internal/domain"
)

// KeyPrefix namespaces snapshot entries in a shared cache
const KeyPrefix = "darkmoney:snapshot:"

// CachedRepository is a read-through cache in front of a SnapshotRepository.
// Cache failures are logged and never fail a Load or Save; the inner repository
// stays the source of truth.
type CachedRepository struct {
	inner domain.SnapshotRepository
	cache domain.SnapshotCache
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCachedRepository wraps inner with cache; entries live for ttl (zero means no expiry)
func NewCachedRepository(inner domain.SnapshotRepository, cache domain.SnapshotCache, ttl time.Duration, log zerolog.Logger) *CachedRepository {
	return &CachedRepository{
		inner: inner,
		cache: cache,
		ttl:   ttl,
		log:   log.With().Str("component", "snapshot_cache").Logger(),
	}
}

// Load returns the cached snapshot for storeName, falling back to the inner repository on a miss
func (r *CachedRepository) Load(ctx context.Context, storeName string) (*domain.Snapshot, error) {
	key := KeyPrefix + storeName

	payload, ok, err := r.cache.Get(ctx, key)
	switch {
	case err != nil:
		r.log.Warn().Err(err).Str("store", storeName).Msg("cache read failed")
	case ok:
		var snap domain.Snapshot
		if err := json.Unmarshal(payload, &snap); err == nil {
			r.log.Debug().Str("store", storeName).Msg("cache hit")
			return &snap, nil
		}
		r.log.Warn().Str("store", storeName).Msg("discarding undecodable cache entry")
	}

	snap, err := r.inner.Load(ctx, storeName)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(snap); err != nil {
		r.log.Warn().Err(err).Str("store", storeName).Msg("cache encode failed")
	} else if err := r.cache.Set(ctx, key, encoded, r.ttl); err != nil {
		r.log.Warn().Err(err).Str("store", storeName).Msg("cache write failed")
	}

	return snap, nil
}

// Save writes through to the inner repository and evicts the cached entry
func (r *CachedRepository) Save(ctx context.Context, storeName string, snap *domain.Snapshot) error {
	if err := r.inner.Save(ctx, storeName, snap); err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, KeyPrefix+storeName); err != nil {
		r.log.Warn().Err(err).Str("store", storeName).Msg("cache eviction failed")
	}
	return nil
}
