package storage

import (
	"context"
	"testing"
	"time"

	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/service"
)

func TestSaveTransactionAssignsID(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	txn := createTestTransactions(1, "alice")[0]
	if err := store.SaveTransaction(context.Background(), &txn); err != nil {
		t.Fatalf("SaveTransaction failed: %v", err)
	}
	if txn.ID == 0 {
		t.Error("Expected transaction ID to be assigned")
	}
}

func TestGetTransactionsFilters(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	today := model.DateKey(time.Now())

	for _, txn := range createTestTransactions(6, "alice") {
		saved := txn
		if err := store.SaveTransaction(ctx, &saved); err != nil {
			t.Fatalf("SaveTransaction failed: %v", err)
		}
	}
	bobTxn := createTestTransactions(1, "bob")[0]
	if err := store.SaveTransaction(ctx, &bobTxn); err != nil {
		t.Fatalf("SaveTransaction failed: %v", err)
	}

	tests := []struct {
		name      string
		filter    service.TransactionFilter
		wantCount int
	}{
		{
			name:      "no filter returns everything",
			filter:    service.TransactionFilter{},
			wantCount: 7,
		},
		{
			name:      "filter by creator",
			filter:    service.TransactionFilter{CreatedBy: "bob"},
			wantCount: 1,
		},
		{
			name:      "filter by date range",
			filter:    service.TransactionFilter{StartDate: today, EndDate: today},
			wantCount: 7,
		},
		{
			name:      "date range excluding today",
			filter:    service.TransactionFilter{StartDate: "2000-01-01", EndDate: "2000-01-02"},
			wantCount: 0,
		},
		{
			name:      "limit caps results",
			filter:    service.TransactionFilter{Limit: 3},
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.GetTransactions(ctx, tt.filter)
			if err != nil {
				t.Fatalf("GetTransactions failed: %v", err)
			}
			if len(got) != tt.wantCount {
				t.Errorf("Expected %d transactions, got %d", tt.wantCount, len(got))
			}
		})
	}
}

func TestGetDailySummary(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now()
	today := model.DateKey(now)

	txns := []model.Transaction{
		{Timestamp: now, Date: today, Service: model.ServicePhotocopy, CreatedBy: "alice", Quantity: 10, PapersUsed: 10, Amount: 20.0},
		{Timestamp: now, Date: today, Service: model.ServicePrinting, CreatedBy: "alice", Quantity: 5, PapersUsed: 5, Amount: 15.0},
	}
	for _, txn := range txns {
		saved := txn
		if err := store.SaveTransaction(ctx, &saved); err != nil {
			t.Fatalf("SaveTransaction failed: %v", err)
		}
	}

	summary, err := store.GetDailySummary(ctx, today)
	if err != nil {
		t.Fatalf("GetDailySummary failed: %v", err)
	}
	if summary.Count != 2 {
		t.Errorf("Expected 2 transactions, got %d", summary.Count)
	}
	if summary.TotalAmount != 35.0 {
		t.Errorf("Expected total 35.0, got %v", summary.TotalAmount)
	}
	if summary.PapersUsed != 15 {
		t.Errorf("Expected 15 papers used, got %d", summary.PapersUsed)
	}
}

func TestGetDailySummaryEmptyDay(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	summary, err := store.GetDailySummary(context.Background(), "2000-01-01")
	if err != nil {
		t.Fatalf("GetDailySummary failed: %v", err)
	}
	if summary.Count != 0 || summary.TotalAmount != 0 || summary.PapersUsed != 0 {
		t.Errorf("Expected zero summary for empty day, got %+v", summary)
	}
}

func TestGetServiceSummary(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now()
	today := model.DateKey(now)

	txns := []model.Transaction{
		{Timestamp: now, Date: today, Service: model.ServicePhotocopy, CreatedBy: "alice", Quantity: 10, PapersUsed: 10, Amount: 20.0},
		{Timestamp: now, Date: today, Service: model.ServicePhotocopy, CreatedBy: "bob", Quantity: 5, PapersUsed: 5, Amount: 10.0},
		{Timestamp: now, Date: today, Service: model.ServiceFile, CreatedBy: "alice", Quantity: 2, Amount: 30.0},
	}
	for _, txn := range txns {
		saved := txn
		if err := store.SaveTransaction(ctx, &saved); err != nil {
			t.Fatalf("SaveTransaction failed: %v", err)
		}
	}

	summary, err := store.GetServiceSummary(ctx, today, today)
	if err != nil {
		t.Fatalf("GetServiceSummary failed: %v", err)
	}

	photocopy := summary[model.ServicePhotocopy]
	if photocopy.Count != 2 || photocopy.Amount != 30.0 || photocopy.PapersUsed != 15 {
		t.Errorf("Unexpected photocopy totals: %+v", photocopy)
	}
	file := summary[model.ServiceFile]
	if file.Count != 1 || file.Amount != 30.0 {
		t.Errorf("Unexpected file totals: %+v", file)
	}
	if _, ok := summary[model.ServiceScanning]; ok {
		t.Error("Expected no scanning entry for day without scans")
	}
}

func TestGetUserActivity(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now()
	today := model.DateKey(now)

	txns := []model.Transaction{
		{Timestamp: now, Date: today, Service: model.ServicePhotocopy, CreatedBy: "alice", Quantity: 10, PapersUsed: 10, Amount: 20.0},
		{Timestamp: now, Date: today, Service: model.ServiceScanning, CreatedBy: "alice", Quantity: 1, Amount: 4.0},
		{Timestamp: now, Date: today, Service: model.ServicePrinting, CreatedBy: "bob", Quantity: 1, PapersUsed: 1, Amount: 3.0},
	}
	for _, txn := range txns {
		saved := txn
		if err := store.SaveTransaction(ctx, &saved); err != nil {
			t.Fatalf("SaveTransaction failed: %v", err)
		}
	}

	activity, err := store.GetUserActivity(ctx, today, today, "alice")
	if err != nil {
		t.Fatalf("GetUserActivity failed: %v", err)
	}
	if activity.Count != 2 {
		t.Errorf("Expected 2 transactions for alice, got %d", activity.Count)
	}
	if activity.Total != 24.0 {
		t.Errorf("Expected total 24.0 for alice, got %v", activity.Total)
	}
	if activity.ByService[model.ServicePhotocopy] != 1 || activity.ByService[model.ServiceScanning] != 1 {
		t.Errorf("Unexpected service breakdown: %+v", activity.ByService)
	}
}

func TestGetDailyStats(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now()
	today := model.DateKey(now)

	for _, createdBy := range []string{"alice", "alice", "bob"} {
		txn := model.Transaction{
			Timestamp: now, Date: today, Service: model.ServicePhotocopy,
			CreatedBy: createdBy, Quantity: 1, PapersUsed: 1, Amount: 2.0,
		}
		if err := store.SaveTransaction(ctx, &txn); err != nil {
			t.Fatalf("SaveTransaction failed: %v", err)
		}
	}

	stats, err := store.GetDailyStats(ctx, today, today)
	if err != nil {
		t.Fatalf("GetDailyStats failed: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("Expected stats for 1 day, got %d", len(stats))
	}
	if stats[0].Date != today || stats[0].Count != 3 || stats[0].Revenue != 6.0 || stats[0].ActiveUsers != 2 {
		t.Errorf("Unexpected daily stat: %+v", stats[0])
	}
}
