package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/moses-ramoeletsi/copyshop/internal/model"
)

// SaveExpense appends one immutable expense row.
func (s *SQLiteStorage) SaveExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveExpenseTx(ctx, tx, expense); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) saveExpenseTx(ctx context.Context, tx *sql.Tx, expense *model.Expense) error {
	result, err := tx.ExecContext(ctx, `
		INSERT INTO expenses (date, category, amount, description, timestamp, created_by)
		VALUES (?, ?, ?, ?, ?, ?)
	`, expense.Date, expense.Category, expense.Amount, expense.Description,
		expense.Timestamp, expense.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get expense ID: %w", err)
	}
	expense.ID = id

	return nil
}

// GetExpensesByDate returns one date's expenses in entry order.
func (s *SQLiteStorage) GetExpensesByDate(ctx context.Context, date string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(date, "date"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, category, amount, COALESCE(description, ''), timestamp, COALESCE(created_by, '')
		FROM expenses
		WHERE date = ?
		ORDER BY id
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		var expense model.Expense
		if err := rows.Scan(&expense.ID, &expense.Date, &expense.Category, &expense.Amount,
			&expense.Description, &expense.Timestamp, &expense.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

// GetExpenseTotalsByCategory sums one date's expenses grouped by category.
// Free-form categories appear under their own names.
func (s *SQLiteStorage) GetExpenseTotalsByCategory(ctx context.Context, date string) (map[string]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(date, "date"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE date = ?
		GROUP BY category
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	totals := make(map[string]float64)
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan expense total: %w", err)
		}
		totals[category] = total
	}

	return totals, rows.Err()
}
