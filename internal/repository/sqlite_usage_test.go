package repository

import (
	"context"
	"testing"

	"github.com/mindmapdigital/projectflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageRepo_GetCount_NoRow(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	repo := NewSQLiteUsageRepo(db)
	ctx := context.Background()
	owner := newTestOwner(t, users)

	count, err := repo.GetCount(ctx, owner.ID, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUsageRepo_SetAndGetCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	repo := NewSQLiteUsageRepo(db)
	ctx := context.Background()
	owner := newTestOwner(t, users)

	require.NoError(t, repo.SetCount(ctx, owner.ID, "2026-08", 3))
	count, err := repo.GetCount(ctx, owner.ID, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Upsert overwrites rather than accumulates.
	require.NoError(t, repo.SetCount(ctx, owner.ID, "2026-08", 7))
	count, err = repo.GetCount(ctx, owner.ID, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestUsageRepo_CountsAreScopedByMonth(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	repo := NewSQLiteUsageRepo(db)
	ctx := context.Background()
	owner := newTestOwner(t, users)

	require.NoError(t, repo.SetCount(ctx, owner.ID, "2026-07", 9))
	require.NoError(t, repo.SetCount(ctx, owner.ID, "2026-08", 1))

	july, err := repo.GetCount(ctx, owner.ID, "2026-07")
	require.NoError(t, err)
	august, err2 := repo.GetCount(ctx, owner.ID, "2026-08")
	require.NoError(t, err2)
	assert.Equal(t, 9, july)
	assert.Equal(t, 1, august)
}
