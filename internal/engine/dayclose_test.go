package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/testutil"
)

func TestEndDayAggregates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	db.SeedPaper(100)
	ctx := context.Background()

	eng := New(db.Storage, "alice")

	_, err := eng.ProcessTransaction(ctx, model.ServicePhotocopy, 10, 1)
	require.NoError(t, err)
	_, err = eng.ProcessTransaction(ctx, model.ServiceScanning, 1, 0)
	require.NoError(t, err)

	_, err = eng.RecordExpense(ctx, model.ExpenseMottakase, 5.0, "")
	require.NoError(t, err)
	_, err = eng.RecordExpense(ctx, "Transport", 3.0, "taxi")
	require.NoError(t, err)

	record, err := eng.EndDay(ctx)
	require.NoError(t, err)

	assert.InDelta(t, 24.00, record.DailyIncome, 0.001)
	assert.InDelta(t, 5.00, record.Mottakase, 0.001)
	assert.Zero(t, record.Pampiri)
	// Free-form categories only reach the total.
	assert.InDelta(t, 8.00, record.TotalExpenses, 0.001)
	assert.InDelta(t, 16.00, record.Balance, 0.001)
	assert.Equal(t, 10, record.PapersUsed)

	stored, err := db.Storage.GetDailyRecord(ctx, record.Date)
	require.NoError(t, err)
	assert.Equal(t, record.Balance, stored.Balance)
}

// Closing the same day again recomputes from source rows, so a second run
// after more activity replaces the first record rather than doubling it.
func TestEndDayIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	db.SeedPaper(100)
	ctx := context.Background()

	eng := New(db.Storage, "alice")
	_, err := eng.ProcessTransaction(ctx, model.ServicePhotocopy, 5, 1)
	require.NoError(t, err)

	first, err := eng.EndDay(ctx)
	require.NoError(t, err)

	again, err := eng.EndDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.DailyIncome, again.DailyIncome)
	assert.Equal(t, first.Balance, again.Balance)

	_, err = eng.ProcessTransaction(ctx, model.ServicePrinting, 2, 1)
	require.NoError(t, err)

	third, err := eng.EndDay(ctx)
	require.NoError(t, err)
	assert.InDelta(t, first.DailyIncome+6.00, third.DailyIncome, 0.001)

	records, err := db.Storage.ListDailyRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCloseDateEmptyDay(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	eng := New(db.Storage, "alice")
	record, err := eng.CloseDate(ctx, "2026-08-01")
	require.NoError(t, err)

	assert.Zero(t, record.DailyIncome)
	assert.Zero(t, record.TotalExpenses)
	assert.Zero(t, record.Balance)
	assert.Zero(t, record.PapersUsed)
}
