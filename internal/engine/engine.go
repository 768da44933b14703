// Package engine implements the point-of-sale operations: selling services,
// moving stock, recording expenses and closing out the day.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/service"
)

// Engine coordinates point-of-sale operations against storage. Operator
// attribution (created_by on rows) comes from the operator name it was
// constructed with.
type Engine struct {
	storage  service.Storage
	operator string
}

// New creates an engine acting on behalf of the named operator.
func New(storage service.Storage, operator string) *Engine {
	return &Engine{
		storage:  storage,
		operator: operator,
	}
}

// ProcessTransaction sells quantity units of a service: it derives the
// charge from the fixed price list, decrements any consumed stock and
// records the transaction row. All writes happen in one database
// transaction, so a failed stock decrement never leaves an orphaned sale
// (and vice versa).
func (e *Engine) ProcessTransaction(ctx context.Context, svc model.Service, quantity, papersPerUnit int) (*model.Transaction, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	if papersPerUnit < 0 {
		return nil, fmt.Errorf("papers per unit cannot be negative, got %d", papersPerUnit)
	}

	price, err := PriceFor(svc)
	if err != nil {
		return nil, err
	}

	totalPapers := 0
	if papersPerUnit > 0 {
		totalPapers = quantity * papersPerUnit
	}

	ts := time.Now()
	txn := &model.Transaction{
		Date:       model.DateKey(ts),
		Service:    svc,
		Quantity:   quantity,
		Amount:     float64(quantity) * price,
		PapersUsed: totalPapers,
		Timestamp:  ts,
		CreatedBy:  e.operator,
	}

	tx, err := e.storage.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	switch svc {
	case model.ServiceFile:
		if err := tx.ApplyStockDelta(ctx, model.ItemFile, -quantity); err != nil {
			return nil, err
		}
	case model.ServiceEnvelope:
		if err := tx.ApplyStockDelta(ctx, model.ItemEnvelope, -quantity); err != nil {
			return nil, err
		}
	}

	if totalPapers > 0 {
		if err := tx.ApplyStockDelta(ctx, model.ItemPaper, -totalPapers); err != nil {
			return nil, err
		}
	}

	if err := tx.SaveTransaction(ctx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Processed transaction",
		"service", txn.Service,
		"quantity", txn.Quantity,
		"amount", txn.Amount,
		"papers_used", txn.PapersUsed)

	return txn, nil
}

// RecordExpense appends one immutable expense entry for today.
func (e *Engine) RecordExpense(ctx context.Context, category string, amount float64, description string) (*model.Expense, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %.2f", amount)
	}

	ts := time.Now()
	expense := &model.Expense{
		Date:        model.DateKey(ts),
		Category:    category,
		Amount:      amount,
		Description: description,
		Timestamp:   ts,
		CreatedBy:   e.operator,
	}

	if err := e.storage.SaveExpense(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// AddStock adds quantity of an item, converting paper units to sheets.
// Paper additions are also written to the paper stock audit log. It returns
// the raw quantity added (sheets for paper).
func (e *Engine) AddStock(ctx context.Context, item model.Item, quantity int, unit model.Unit) (int, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	delta := quantity
	if item == model.ItemPaper {
		delta = unit.Sheets(quantity)
	}

	tx, err := e.storage.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.ApplyStockDelta(ctx, item, delta); err != nil {
		return 0, err
	}

	if item == model.ItemPaper {
		if err := tx.LogPaperAddition(ctx, delta, e.operator); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit stock addition: %w", err)
	}

	slog.Info("Added stock", "item", item, "quantity", quantity, "unit", unit, "delta", delta)

	return delta, nil
}

// StockLevels returns the full inventory snapshot with the paper sheet
// count decomposed into boxes, rims and loose sheets.
func (e *Engine) StockLevels(ctx context.Context) (*model.StockLevels, error) {
	stock, err := e.storage.GetAllStock(ctx)
	if err != nil {
		return nil, err
	}

	return &model.StockLevels{
		Paper:     model.BreakdownPaper(stock[model.ItemPaper]),
		Files:     stock[model.ItemFile],
		Envelopes: stock[model.ItemEnvelope],
	}, nil
}

// LowStockItems returns the items currently below their stock thresholds.
func (e *Engine) LowStockItems(ctx context.Context) ([]model.Item, error) {
	stock, err := e.storage.GetAllStock(ctx)
	if err != nil {
		return nil, err
	}

	var low []model.Item
	for _, item := range model.Items {
		if stock[item] < StockThresholds[item] {
			low = append(low, item)
		}
	}

	return low, nil
}
