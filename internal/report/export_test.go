package report

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moses-ramoeletsi/copyshop/internal/engine"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/testutil"
)

func TestExportTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	db.SeedPaper(100)
	ctx := context.Background()

	eng := engine.New(db.Storage, "alice")
	_, err := eng.ProcessTransaction(ctx, model.ServicePhotocopy, 10, 1)
	require.NoError(t, err)
	_, err = eng.ProcessTransaction(ctx, model.ServiceScanning, 1, 0)
	require.NoError(t, err)

	exporter, err := NewExporter(db.Storage, t.TempDir(), nil)
	require.NoError(t, err)

	path, err := exporter.Transactions(ctx)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Date", "Service", "Quantity", "Amount", "Papers Used", "Timestamp", "Created By"}, rows[0])
	assert.Equal(t, "Photocopy", rows[1][1])
	assert.Equal(t, "10", rows[1][2])
	assert.Equal(t, "20.00", rows[1][3])
	assert.Equal(t, "alice", rows[1][6])
	assert.Equal(t, "Scanning", rows[2][1])
}

func TestExportDailyRecords(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	record := &model.DailyRecord{
		Date:          "2026-08-28",
		DailyIncome:   100.0,
		Pampiri:       20.0,
		TotalExpenses: 20.0,
		Balance:       80.0,
		PapersUsed:    40,
	}
	require.NoError(t, db.Storage.UpsertDailyRecord(ctx, record))

	exporter, err := NewExporter(db.Storage, t.TempDir(), nil)
	require.NoError(t, err)

	path, err := exporter.DailyRecords(ctx)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2026-08-28", rows[1][0])
	assert.Equal(t, "100.00", rows[1][1])
	assert.Equal(t, "20.00", rows[1][3])
	assert.Equal(t, "80.00", rows[1][7])
	assert.Equal(t, "40", rows[1][8])
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old_report.txt"), []byte("x"), 0640))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old_export.csv"), []byte("x"), 0640))

	// Missing directories are skipped, not errors.
	missing := filepath.Join(dir, "does-not-exist")
	require.NoError(t, Clean(dir, missing))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTimestampSuffixFormat(t *testing.T) {
	suffix := timestampSuffix()
	_, err := time.Parse("20060102_150405", suffix)
	assert.NoError(t, err)
}
