package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/darkmoney-backend/internal/domain"
)

func TestSnapshotRepository_LoadMissing(t *testing.T) {
	repo := NewSnapshotRepository()

	_, err := repo.Load(context.Background(), "finance_data")

	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestSnapshotRepository_SaveCopiesState(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepository()

	snap := domain.NewSnapshot()
	snap.SavingsGoals = []domain.SavingsGoal{{ID: "g1", Name: "Trip", TargetAmount: decimal.NewFromInt(1000)}}
	require.NoError(t, repo.Save(ctx, "finance_data", snap))

	// Mutating the caller's copy must not leak into the store
	snap.SavingsGoals[0].Name = "changed"

	loaded, err := repo.Load(ctx, "finance_data")
	require.NoError(t, err)
	assert.Equal(t, "Trip", loaded.SavingsGoals[0].Name)

	// Nor must mutating a loaded copy
	loaded.SavingsGoals = nil
	again, err := repo.Load(ctx, "finance_data")
	require.NoError(t, err)
	assert.Len(t, again.SavingsGoals, 1)
}

func TestSnapshotRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepository()
	require.NoError(t, repo.Save(ctx, "finance_data", domain.NewSnapshot()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = repo.Save(ctx, "finance_data", domain.NewSnapshot())
		}()
		go func() {
			defer wg.Done()
			_, err := repo.Load(ctx, "finance_data")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
