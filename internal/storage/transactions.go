package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/service"
)

// SaveTransaction appends one immutable transaction row.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveTransactionTx(ctx, tx, txn); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) saveTransactionTx(ctx context.Context, tx *sql.Tx, txn *model.Transaction) error {
	result, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (date, service, quantity, amount, papers_used, timestamp, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, txn.Date, string(txn.Service), txn.Quantity, txn.Amount, txn.PapersUsed, txn.Timestamp, txn.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get transaction ID: %w", err)
	}
	txn.ID = id

	return nil
}

// GetTransactions returns transactions matching the filter, oldest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, date, service, quantity, amount, papers_used, timestamp, COALESCE(created_by, '')
		FROM transactions
		WHERE 1=1
	`
	args := make([]any, 0, 4)

	if filter.StartDate != "" {
		query += " AND date >= ?"
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		query += " AND date <= ?"
		args = append(args, filter.EndDate)
	}
	if filter.CreatedBy != "" {
		query += " AND created_by = ?"
		args = append(args, filter.CreatedBy)
	}

	query += " ORDER BY timestamp"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var svc string
		if err := rows.Scan(&txn.ID, &txn.Date, &svc, &txn.Quantity, &txn.Amount,
			&txn.PapersUsed, &txn.Timestamp, &txn.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Service = model.Service(svc)
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

// GetDailySummary sums one date's transactions.
func (s *SQLiteStorage) GetDailySummary(ctx context.Context, date string) (*service.DailySummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(date, "date"); err != nil {
		return nil, err
	}

	var summary service.DailySummary
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount), 0), COALESCE(SUM(papers_used), 0)
		FROM transactions
		WHERE date = ?
	`, date).Scan(&summary.Count, &summary.TotalAmount, &summary.PapersUsed)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily summary: %w", err)
	}

	return &summary, nil
}

// GetServiceSummary aggregates transactions per service over a date range
// (inclusive). Services with no transactions are absent from the result.
func (s *SQLiteStorage) GetServiceSummary(ctx context.Context, start, end string) (map[model.Service]service.ServiceTotals, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT service, COUNT(*), COALESCE(SUM(amount), 0), COALESCE(SUM(papers_used), 0)
		FROM transactions
		WHERE date BETWEEN ? AND ?
		GROUP BY service
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query service summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summary := make(map[model.Service]service.ServiceTotals)
	for rows.Next() {
		var svc string
		var totals service.ServiceTotals
		if err := rows.Scan(&svc, &totals.Count, &totals.Amount, &totals.PapersUsed); err != nil {
			return nil, fmt.Errorf("failed to scan service summary: %w", err)
		}
		summary[model.Service(svc)] = totals
	}

	return summary, rows.Err()
}

// GetUserActivity aggregates one user's transactions over a date range.
func (s *SQLiteStorage) GetUserActivity(ctx context.Context, start, end, username string) (*service.UserActivity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	activity := service.UserActivity{ByService: make(map[model.Service]int)}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE date BETWEEN ? AND ? AND created_by = ?
	`, start, end, username).Scan(&activity.Count, &activity.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to query user activity: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT service, COUNT(*)
		FROM transactions
		WHERE date BETWEEN ? AND ? AND created_by = ?
		GROUP BY service
	`, start, end, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query user service breakdown: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var svc string
		var count int
		if err := rows.Scan(&svc, &count); err != nil {
			return nil, fmt.Errorf("failed to scan user service breakdown: %w", err)
		}
		activity.ByService[model.Service(svc)] = count
	}

	return &activity, rows.Err()
}

// GetDailyStats returns per-date transaction statistics over a range,
// ordered by date.
func (s *SQLiteStorage) GetDailyStats(ctx context.Context, start, end string) ([]service.DailyStat, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, COUNT(*), COALESCE(SUM(amount), 0), COUNT(DISTINCT created_by)
		FROM transactions
		WHERE date BETWEEN ? AND ?
		GROUP BY date
		ORDER BY date
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats []service.DailyStat
	for rows.Next() {
		var stat service.DailyStat
		if err := rows.Scan(&stat.Date, &stat.Count, &stat.Revenue, &stat.ActiveUsers); err != nil {
			return nil, fmt.Errorf("failed to scan daily stat: %w", err)
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}

// GetPeakHours returns the busiest hours of day over a range, most active
// first.
func (s *SQLiteStorage) GetPeakHours(ctx context.Context, start, end string, limit int) ([]service.HourCount, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT strftime('%H', timestamp) AS hour, COUNT(*) AS transaction_count
		FROM transactions
		WHERE date BETWEEN ? AND ?
		GROUP BY hour
		ORDER BY transaction_count DESC
		LIMIT ?
	`, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query peak hours: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var hours []service.HourCount
	for rows.Next() {
		var hc service.HourCount
		if err := rows.Scan(&hc.Hour, &hc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan peak hour: %w", err)
		}
		hours = append(hours, hc)
	}

	return hours, rows.Err()
}
