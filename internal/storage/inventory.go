package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/moses-ramoeletsi/copyshop/internal/common"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
)

// GetStock returns the raw quantity for one item. A missing row reads as 0.
func (s *SQLiteStorage) GetStock(ctx context.Context, item model.Item) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateItem(item); err != nil {
		return 0, err
	}

	var quantity int
	err := s.db.QueryRowContext(ctx,
		"SELECT quantity FROM inventory WHERE item = ?", string(item)).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query stock: %w", err)
	}

	return quantity, nil
}

func (s *SQLiteStorage) getStockTx(ctx context.Context, tx *sql.Tx, item model.Item) (int, error) {
	if err := validateItem(item); err != nil {
		return 0, err
	}

	var quantity int
	err := tx.QueryRowContext(ctx,
		"SELECT quantity FROM inventory WHERE item = ?", string(item)).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query stock: %w", err)
	}

	return quantity, nil
}

// GetAllStock returns the raw quantity of every inventory row.
func (s *SQLiteStorage) GetAllStock(ctx context.Context) (map[model.Item]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT item, quantity FROM inventory")
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stock := make(map[model.Item]int)
	for rows.Next() {
		var item string
		var quantity int
		if err := rows.Scan(&item, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		stock[model.Item(item)] = quantity
	}

	return stock, rows.Err()
}

// ApplyStockDelta adds a signed delta to an item's quantity. A delta that
// would drive the quantity negative is rejected with ErrInsufficientStock
// and leaves the row untouched.
func (s *SQLiteStorage) ApplyStockDelta(ctx context.Context, item model.Item, delta int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.applyStockDeltaTx(ctx, tx, item, delta); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) applyStockDeltaTx(ctx context.Context, tx *sql.Tx, item model.Item, delta int) error {
	if err := validateItem(item); err != nil {
		return err
	}

	// The quantity guard in the WHERE clause makes the non-negativity check
	// and the update one atomic statement.
	result, err := tx.ExecContext(ctx, `
		UPDATE inventory
		SET quantity = quantity + ?, last_updated = ?
		WHERE item = ? AND quantity + ? >= 0
	`, delta, time.Now(), string(item), delta)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check stock update: %w", err)
	}
	if affected == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM inventory WHERE item = ?", string(item)).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check inventory row: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("%w: %s", common.ErrUnknownItem, item)
		}
		return fmt.Errorf("%w: %s (delta %d)", common.ErrInsufficientStock, item, delta)
	}

	return nil
}

// LogPaperAddition records one paper_stock_log audit row.
func (s *SQLiteStorage) LogPaperAddition(ctx context.Context, quantity int, createdBy string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.logPaperAdditionTx(ctx, tx, quantity, createdBy); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) logPaperAdditionTx(ctx context.Context, tx *sql.Tx, quantity int, createdBy string) error {
	ts := time.Now()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO paper_stock_log (date, quantity_added, timestamp, created_by)
		VALUES (?, ?, ?, ?)
	`, model.DateKey(ts), quantity, ts, createdBy)
	if err != nil {
		return fmt.Errorf("failed to log paper addition: %w", err)
	}
	return nil
}

// GetPaperAdditions returns the paper_stock_log rows in a date range,
// oldest first.
func (s *SQLiteStorage) GetPaperAdditions(ctx context.Context, start, end string) ([]model.PaperAddition, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, quantity_added, timestamp, COALESCE(created_by, '')
		FROM paper_stock_log
		WHERE date BETWEEN ? AND ?
		ORDER BY date, id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query paper stock log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var additions []model.PaperAddition
	for rows.Next() {
		var entry model.PaperAddition
		if err := rows.Scan(&entry.ID, &entry.Date, &entry.QuantityAdded,
			&entry.Timestamp, &entry.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan paper stock log row: %w", err)
		}
		additions = append(additions, entry)
	}

	return additions, rows.Err()
}

// ClearPaperAdditions empties the paper_stock_log audit trail. Used by the
// admin maintenance command only.
func (s *SQLiteStorage) ClearPaperAdditions(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM paper_stock_log"); err != nil {
		return fmt.Errorf("failed to clear paper stock log: %w", err)
	}
	return nil
}
