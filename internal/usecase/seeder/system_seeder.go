package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/simaogato/darkmoney-backend/internal/domain"
)

// SystemSeeder handles seeding of the starter categories
type SystemSeeder struct {
	repo domain.SnapshotRepository
}

// NewSystemSeeder creates a new SystemSeeder instance
func NewSystemSeeder(repo domain.SnapshotRepository) *SystemSeeder {
	return &SystemSeeder{
		repo: repo,
	}
}

// Seed ensures the store exists and carries every default category.
// A store that was never saved is created with an empty snapshot.
// An existing store only gets the default categories it is missing; nothing is saved
// when none are missing.
func (s *SystemSeeder) Seed(ctx context.Context, storeName string) error {
	snap, err := s.repo.Load(ctx, storeName)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		if err := s.repo.Save(ctx, storeName, domain.NewSnapshot()); err != nil {
			return fmt.Errorf("failed to create store %q: %w", storeName, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load store %q: %w", storeName, err)
	}

	existing := make(map[string]bool, len(snap.Categories))
	for _, c := range snap.Categories {
		existing[c.ID] = true
	}

	added := 0
	for _, c := range domain.DefaultCategories() {
		if existing[c.ID] {
			continue
		}
		if err := c.Validate(); err != nil {
			return err
		}
		snap.Categories = append(snap.Categories, c)
		added++
	}

	if added == 0 {
		return nil
	}

	if err := s.repo.Save(ctx, storeName, snap); err != nil {
		return fmt.Errorf("failed to save store %q: %w", storeName, err)
	}
	return nil
}
