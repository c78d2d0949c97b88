package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkuminecz/ynab-reports/repository/testutil"
)

func TestPaymentRepository_RecordAndGetHistory(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewPaymentRepository(testDB.DB)
	ctx := context.Background()

	jan := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Record(ctx, testutil.CreateTestPaymentRecord("Visa", feb)))
	require.NoError(t, repo.Record(ctx, testutil.CreateTestPaymentRecord("Visa", jan)))
	require.NoError(t, repo.Record(ctx, testutil.CreateTestPaymentRecord("Car Loan", jan)))

	all, err := repo.GetHistory(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Car Loan", all[0].AccountName)
	assert.Equal(t, "Visa", all[1].AccountName)
	assert.True(t, all[2].PaymentDate.After(all[0].PaymentDate))

	visaOnly, err := repo.GetHistory(ctx, "Visa")
	require.NoError(t, err)
	require.Len(t, visaOnly, 2)
	for _, p := range visaOnly {
		assert.Equal(t, "Visa", p.AccountName)
	}
}

func TestPaymentRepository_RecordReplacesSameDateAndAccount(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewPaymentRepository(testDB.DB)
	ctx := context.Background()

	date := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	first := testutil.CreateTestPaymentRecord("Visa", date)
	require.NoError(t, repo.Record(ctx, first))

	second := testutil.CreateTestPaymentRecord("Visa", date)
	second.TotalPayment = 300
	require.NoError(t, repo.Record(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	all, err := repo.GetHistory(ctx, "Visa")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 300.0, all[0].TotalPayment)
}

func TestPaymentRepository_CountAndClear(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewPaymentRepository(testDB.DB)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	date := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Record(ctx, testutil.CreateTestPaymentRecord("Visa", date)))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.Clear(ctx))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
