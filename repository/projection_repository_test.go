package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkuminecz/ynab-reports/repository/testutil"
)

func TestProjectionRepository_UpsertAndGetAll(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewProjectionRepository(testDB.DB)
	ctx := context.Background()

	jan := testutil.CreateTestProjectionWithBalance("2025-01", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), -5000, 24)
	feb := testutil.CreateTestProjectionWithBalance("2025-02", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), -4800, 23)

	// Insert out of order; GetAll sorts by snapshot date.
	require.NoError(t, repo.Upsert(ctx, feb))
	require.NoError(t, repo.Upsert(ctx, jan))
	assert.NotZero(t, jan.ID)
	assert.False(t, jan.CreatedAt.IsZero())

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2025-01", all[0].SnapshotMonth)
	assert.Equal(t, "2025-02", all[1].SnapshotMonth)
	assert.Equal(t, -5000.0, all[0].TotalBalance)
}

func TestProjectionRepository_UpsertReplacesSameSnapshotDate(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewProjectionRepository(testDB.DB)
	ctx := context.Background()

	snapshotDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	first := testutil.CreateTestProjectionWithBalance("2025-03", snapshotDate, -4000, 20)
	require.NoError(t, repo.Upsert(ctx, first))

	// A rebuild for the same month overwrites rather than duplicating.
	second := testutil.CreateTestProjectionWithBalance("2025-03", snapshotDate, -3900, 19)
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, -3900.0, all[0].TotalBalance)
	assert.Equal(t, 19, all[0].MonthsToPayoff)
}

func TestProjectionRepository_GetByMonth(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewProjectionRepository(testDB.DB)
	ctx := context.Background()

	projection := testutil.CreateTestProjection("2025-04", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Upsert(ctx, projection))

	found, err := repo.GetByMonth(ctx, "2025-04")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, projection.ID, found.ID)
	assert.Equal(t, "smart", found.Strategy)

	missing, err := repo.GetByMonth(ctx, "2020-01")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProjectionRepository_GetLatest(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewProjectionRepository(testDB.DB)
	ctx := context.Background()

	// Empty store has no latest.
	latest, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	for _, month := range []string{"2025-01", "2025-03", "2025-02"} {
		date, parseErr := time.Parse("2006-01", month)
		require.NoError(t, parseErr)
		require.NoError(t, repo.Upsert(ctx, testutil.CreateTestProjection(month, date.UTC())))
	}

	latest, err = repo.GetLatest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "2025-03", latest.SnapshotMonth)
}

func TestProjectionRepository_GetByDateRange(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewProjectionRepository(testDB.DB)
	ctx := context.Background()

	for _, month := range []string{"2025-01", "2025-02", "2025-03", "2025-04"} {
		date, parseErr := time.Parse("2006-01", month)
		require.NoError(t, parseErr)
		require.NoError(t, repo.Upsert(ctx, testutil.CreateTestProjection(month, date.UTC())))
	}

	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	ranged, err := repo.GetByDateRange(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, "2025-02", ranged[0].SnapshotMonth)
	assert.Equal(t, "2025-03", ranged[1].SnapshotMonth)
}

func TestProjectionRepository_CountAndClear(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewProjectionRepository(testDB.DB)
	ctx := context.Background()

	count, oldest, newest, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Nil(t, oldest)
	assert.Nil(t, newest)

	for _, month := range []string{"2025-01", "2025-02"} {
		date, parseErr := time.Parse("2006-01", month)
		require.NoError(t, parseErr)
		require.NoError(t, repo.Upsert(ctx, testutil.CreateTestProjection(month, date.UTC())))
	}

	count, oldest, newest, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.NotNil(t, oldest)
	require.NotNil(t, newest)
	assert.Equal(t, time.January, oldest.Month())
	assert.Equal(t, time.February, newest.Month())

	require.NoError(t, repo.Clear(ctx))

	count, _, _, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
