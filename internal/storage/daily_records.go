package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/moses-ramoeletsi/copyshop/internal/common"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
)

// UpsertDailyRecord writes the end-of-day snapshot for one date, replacing
// any existing row for that date.
func (s *SQLiteStorage) UpsertDailyRecord(ctx context.Context, record *model.DailyRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDailyRecord(record); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.upsertDailyRecordTx(ctx, tx, record); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) upsertDailyRecordTx(ctx context.Context, tx *sql.Tx, record *model.DailyRecord) error {
	_, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO daily_records
			(date, daily_income, mottakase, pampiri, ink_cardrige, drawings,
			 total_expenses, balance, papers_used)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.Date, record.DailyIncome, record.Mottakase, record.Pampiri,
		record.InkCartridge, record.Drawings, record.TotalExpenses,
		record.Balance, record.PapersUsed)
	if err != nil {
		return fmt.Errorf("failed to upsert daily record: %w", err)
	}
	return nil
}

// GetDailyRecord returns the daily record for one date.
func (s *SQLiteStorage) GetDailyRecord(ctx context.Context, date string) (*model.DailyRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(date, "date"); err != nil {
		return nil, err
	}

	var record model.DailyRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT date, daily_income, mottakase, pampiri, ink_cardrige, drawings,
			total_expenses, balance, papers_used
		FROM daily_records
		WHERE date = ?
	`, date).Scan(&record.Date, &record.DailyIncome, &record.Mottakase,
		&record.Pampiri, &record.InkCartridge, &record.Drawings,
		&record.TotalExpenses, &record.Balance, &record.PapersUsed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: daily record for %s", common.ErrNotFound, date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query daily record: %w", err)
	}

	return &record, nil
}

// ListDailyRecords returns every daily record, oldest first.
func (s *SQLiteStorage) ListDailyRecords(ctx context.Context) ([]model.DailyRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, daily_income, mottakase, pampiri, ink_cardrige, drawings,
			total_expenses, balance, papers_used
		FROM daily_records
		ORDER BY date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.DailyRecord
	for rows.Next() {
		var record model.DailyRecord
		if err := rows.Scan(&record.Date, &record.DailyIncome, &record.Mottakase,
			&record.Pampiri, &record.InkCartridge, &record.Drawings,
			&record.TotalExpenses, &record.Balance, &record.PapersUsed); err != nil {
			return nil, fmt.Errorf("failed to scan daily record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
