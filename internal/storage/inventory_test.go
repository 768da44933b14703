package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moses-ramoeletsi/copyshop/internal/common"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
)

func TestGetStockDefaultsToZero(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	for _, item := range model.Items {
		stock, err := store.GetStock(ctx, item)
		if err != nil {
			t.Fatalf("GetStock(%s) failed: %v", item, err)
		}
		if stock != 0 {
			t.Errorf("Expected %s stock 0 on fresh database, got %d", item, stock)
		}
	}
}

func TestApplyStockDelta(t *testing.T) {
	tests := []struct {
		wantErr   error
		name      string
		item      model.Item
		seed      int
		delta     int
		wantStock int
	}{
		{
			name:      "addition from zero",
			item:      model.ItemPaper,
			delta:     500,
			wantStock: 500,
		},
		{
			name:      "decrement within stock",
			item:      model.ItemFile,
			seed:      20,
			delta:     -5,
			wantStock: 15,
		},
		{
			name:      "decrement to exactly zero",
			item:      model.ItemEnvelope,
			seed:      10,
			delta:     -10,
			wantStock: 0,
		},
		{
			name:    "decrement past zero rejected",
			item:    model.ItemPaper,
			seed:    10,
			delta:   -11,
			wantErr: common.ErrInsufficientStock,
		},
		{
			name:    "unknown item rejected",
			item:    model.Item("toner"),
			delta:   5,
			wantErr: ErrInvalidItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()

			ctx := context.Background()
			if tt.seed > 0 {
				if err := store.ApplyStockDelta(ctx, tt.item, tt.seed); err != nil {
					t.Fatalf("Failed to seed stock: %v", err)
				}
			}

			err := store.ApplyStockDelta(ctx, tt.item, tt.delta)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
				}
				if tt.item.Valid() {
					stock, getErr := store.GetStock(ctx, tt.item)
					if getErr != nil {
						t.Fatalf("GetStock failed: %v", getErr)
					}
					if stock != tt.seed {
						t.Errorf("Stock changed by failed delta: want %d, got %d", tt.seed, stock)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyStockDelta failed: %v", err)
			}

			stock, err := store.GetStock(ctx, tt.item)
			if err != nil {
				t.Fatalf("GetStock failed: %v", err)
			}
			if stock != tt.wantStock {
				t.Errorf("Expected stock %d, got %d", tt.wantStock, stock)
			}
		})
	}
}

func TestGetAllStock(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.ApplyStockDelta(ctx, model.ItemPaper, 2500); err != nil {
		t.Fatalf("Failed to seed paper: %v", err)
	}
	if err := store.ApplyStockDelta(ctx, model.ItemFile, 30); err != nil {
		t.Fatalf("Failed to seed files: %v", err)
	}

	stock, err := store.GetAllStock(ctx)
	if err != nil {
		t.Fatalf("GetAllStock failed: %v", err)
	}

	want := map[model.Item]int{
		model.ItemPaper:    2500,
		model.ItemFile:     30,
		model.ItemEnvelope: 0,
	}
	for item, wantQty := range want {
		if stock[item] != wantQty {
			t.Errorf("Expected %s stock %d, got %d", item, wantQty, stock[item])
		}
	}
}

func TestPaperAdditionLog(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.LogPaperAddition(ctx, 500, "alice"); err != nil {
		t.Fatalf("LogPaperAddition failed: %v", err)
	}
	if err := store.LogPaperAddition(ctx, 2500, "bob"); err != nil {
		t.Fatalf("LogPaperAddition failed: %v", err)
	}

	today := model.DateKey(time.Now())
	additions, err := store.GetPaperAdditions(ctx, today, today)
	if err != nil {
		t.Fatalf("GetPaperAdditions failed: %v", err)
	}
	if len(additions) != 2 {
		t.Fatalf("Expected 2 paper additions, got %d", len(additions))
	}
	if additions[0].QuantityAdded != 500 || additions[0].CreatedBy != "alice" {
		t.Errorf("Unexpected first addition: %+v", additions[0])
	}

	if err := store.ClearPaperAdditions(ctx); err != nil {
		t.Fatalf("ClearPaperAdditions failed: %v", err)
	}
	additions, err = store.GetPaperAdditions(ctx, today, today)
	if err != nil {
		t.Fatalf("GetPaperAdditions after clear failed: %v", err)
	}
	if len(additions) != 0 {
		t.Errorf("Expected no paper additions after clear, got %d", len(additions))
	}
}
