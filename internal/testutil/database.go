// Package testutil provides shared helpers for tests that need a real
// migrated database.
package testutil

import (
	"context"
	"testing"

	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/service"
	"github.com/moses-ramoeletsi/copyshop/internal/storage"
)

// TestDB wraps a migrated in-memory database for a single test.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a new in-memory database, runs all migrations and
// registers cleanup on t.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// SeedPaper sets the paper stock to the given sheet count, failing the test
// on error.
func (db *TestDB) SeedPaper(sheets int) {
	db.t.Helper()
	if err := db.Storage.ApplyStockDelta(context.Background(), model.ItemPaper, sheets); err != nil {
		db.t.Fatalf("failed to seed paper stock: %v", err)
	}
}

// SeedStock adds quantity of an item, failing the test on error.
func (db *TestDB) SeedStock(item model.Item, quantity int) {
	db.t.Helper()
	if err := db.Storage.ApplyStockDelta(context.Background(), item, quantity); err != nil {
		db.t.Fatalf("failed to seed %s stock: %v", item, err)
	}
}
