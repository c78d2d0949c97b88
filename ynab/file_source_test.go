package ynab

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBudgetFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "budget.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestFileSource(t *testing.T) {
	path := writeBudgetFile(t, `{
		"accounts": [
			{"id": "cc-1", "name": "Visa", "type": "creditCard", "balance": -900000}
		],
		"categories": [
			{"id": "cat-1", "name": "Visa", "balance": 100000}
		],
		"transactions": [
			{"id": "t-1", "account_id": "cc-1", "date": "2025-08-01T00:00:00Z", "amount": -100000},
			{"id": "t-2", "account_id": "cc-1", "date": "2025-06-01T00:00:00Z", "amount": -50000}
		]
	}`)
	source := NewFileSource(path)
	ctx := context.Background()

	accounts, err := source.Accounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Visa", accounts[0].Name)
	assert.Equal(t, int64(-900000), accounts[0].Balance)

	categories, err := source.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)

	// Only transactions on or after the cutoff come back.
	transactions, err := source.Transactions(ctx, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "t-1", transactions[0].ID)
}

func TestFileSource_MissingFile(t *testing.T) {
	source := NewFileSource("/nonexistent/budget.json")
	_, err := source.Accounts(context.Background())
	require.Error(t, err)
}

func TestFileSource_MalformedFile(t *testing.T) {
	path := writeBudgetFile(t, "{not json")
	source := NewFileSource(path)
	_, err := source.Accounts(context.Background())
	require.Error(t, err)
}
