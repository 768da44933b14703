package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/moses-ramoeletsi/copyshop/internal/model"
)

// EndDay closes out the current date: it recomputes the day's income and
// expense aggregates from source rows and upserts the daily record. Running
// it again for the same date recomputes and replaces the prior record, so
// repeated closes converge on the same result.
func (e *Engine) EndDay(ctx context.Context) (*model.DailyRecord, error) {
	return e.CloseDate(ctx, model.DateKey(time.Now()))
}

// CloseDate recomputes and upserts the daily record for one date.
func (e *Engine) CloseDate(ctx context.Context, date string) (*model.DailyRecord, error) {
	expenses, err := e.storage.GetExpenseTotalsByCategory(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense totals: %w", err)
	}

	// total_expenses covers every category; only the four named ones get
	// their own column.
	totalExpenses := 0.0
	for _, amount := range expenses {
		totalExpenses += amount
	}

	summary, err := e.storage.GetDailySummary(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily summary: %w", err)
	}

	record := &model.DailyRecord{
		Date:          date,
		DailyIncome:   summary.TotalAmount,
		Mottakase:     expenses[model.ExpenseMottakase],
		Pampiri:       expenses[model.ExpensePampiri],
		InkCartridge:  expenses[model.ExpenseInk],
		Drawings:      expenses[model.ExpenseDrawings],
		TotalExpenses: totalExpenses,
		Balance:       summary.TotalAmount - totalExpenses,
		PapersUsed:    summary.PapersUsed,
	}

	if err := e.storage.UpsertDailyRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to upsert daily record: %w", err)
	}

	slog.Info("Closed day",
		"date", date,
		"income", record.DailyIncome,
		"expenses", record.TotalExpenses,
		"balance", record.Balance)

	return record, nil
}
