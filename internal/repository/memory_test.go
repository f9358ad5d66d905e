package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/department-enricher/internal/domain"
)

func TestMemoryRunRepository_ListRecent(t *testing.T) {
	repo := NewMemoryRunRepository()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		run := &domain.EnrichmentRun{ID: id, Status: domain.RunStatusSucceeded}
		require.NoError(t, repo.Create(ctx, run))
		assert.False(t, run.CreatedAt.IsZero())
	}

	runs, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)

	runs, err = repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestMemoryUnknownCodeRepository_Top(t *testing.T) {
	repo := NewMemoryUnknownCodeRepository()
	ctx := context.Background()

	require.NoError(t, repo.Increment(ctx, "<D30>", 2))
	require.NoError(t, repo.Increment(ctx, "<D31>", 5))
	require.NoError(t, repo.Increment(ctx, "<D30>", 1))
	require.NoError(t, repo.Increment(ctx, "<D32>", 1))

	top, err := repo.Top(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.UnknownCodeCount{
		{Code: "<D31>", Count: 5},
		{Code: "<D30>", Count: 3},
	}, top)
}
