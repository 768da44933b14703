package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/moses-ramoeletsi/copyshop/internal/common"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
)

func TestUpsertDailyRecordReplaces(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	first := &model.DailyRecord{
		Date:          "2026-08-28",
		DailyIncome:   100.0,
		Mottakase:     10.0,
		TotalExpenses: 10.0,
		Balance:       90.0,
		PapersUsed:    40,
	}
	if err := store.UpsertDailyRecord(ctx, first); err != nil {
		t.Fatalf("UpsertDailyRecord failed: %v", err)
	}

	// A second close of the same day overwrites the first record.
	second := &model.DailyRecord{
		Date:          "2026-08-28",
		DailyIncome:   150.0,
		Mottakase:     10.0,
		Pampiri:       20.0,
		TotalExpenses: 30.0,
		Balance:       120.0,
		PapersUsed:    60,
	}
	if err := store.UpsertDailyRecord(ctx, second); err != nil {
		t.Fatalf("UpsertDailyRecord failed: %v", err)
	}

	got, err := store.GetDailyRecord(ctx, "2026-08-28")
	if err != nil {
		t.Fatalf("GetDailyRecord failed: %v", err)
	}
	if got.DailyIncome != 150.0 || got.Balance != 120.0 || got.PapersUsed != 60 {
		t.Errorf("Expected second record to win, got %+v", got)
	}

	records, err := store.ListDailyRecords(ctx)
	if err != nil {
		t.Fatalf("ListDailyRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record for the day, got %d", len(records))
	}
}

func TestGetDailyRecordNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetDailyRecord(context.Background(), "2000-01-01")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListDailyRecordsOrdered(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	for _, date := range []string{"2026-08-28", "2026-08-26", "2026-08-27"} {
		record := &model.DailyRecord{Date: date, DailyIncome: 1.0, Balance: 1.0}
		if err := store.UpsertDailyRecord(ctx, record); err != nil {
			t.Fatalf("UpsertDailyRecord failed: %v", err)
		}
	}

	records, err := store.ListDailyRecords(ctx)
	if err != nil {
		t.Fatalf("ListDailyRecords failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"2026-08-26", "2026-08-27", "2026-08-28"} {
		if records[i].Date != want {
			t.Errorf("Record %d: expected date %s, got %s", i, want, records[i].Date)
		}
	}
}
