package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// NewBackupManager creates a backup manager for this storage instance.
func (s *SQLiteStorage) NewBackupManager(backupsDir string) (*BackupManager, error) {
	return NewBackupManager(s.db, s.dbPath, backupsDir)
}

// BeginTx starts a new database transaction.
func (s *SQLiteStorage) BeginTx(ctx context.Context) (service.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &sqliteTransaction{
		tx:      tx,
		storage: s,
	}, nil
}

// sqliteTransaction wraps sql.Tx to implement service.Transaction.
type sqliteTransaction struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTransaction) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTransaction) Rollback() error {
	return t.tx.Rollback()
}

// Write methods execute against the wrapped transaction so composite
// operations commit or roll back as one unit.
func (t *sqliteTransaction) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}
	return t.storage.saveTransactionTx(ctx, t.tx, txn)
}

func (t *sqliteTransaction) ApplyStockDelta(ctx context.Context, item model.Item, delta int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return t.storage.applyStockDeltaTx(ctx, t.tx, item, delta)
}

func (t *sqliteTransaction) LogPaperAddition(ctx context.Context, quantity int, createdBy string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return t.storage.logPaperAdditionTx(ctx, t.tx, quantity, createdBy)
}

func (t *sqliteTransaction) SaveExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}
	return t.storage.saveExpenseTx(ctx, t.tx, expense)
}

func (t *sqliteTransaction) UpsertDailyRecord(ctx context.Context, record *model.DailyRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDailyRecord(record); err != nil {
		return err
	}
	return t.storage.upsertDailyRecordTx(ctx, t.tx, record)
}

func (t *sqliteTransaction) GetStock(ctx context.Context, item model.Item) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return t.storage.getStockTx(ctx, t.tx, item)
}

// Read methods delegate to the main storage connection.
func (t *sqliteTransaction) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	return t.storage.GetTransactions(ctx, filter)
}

func (t *sqliteTransaction) GetDailySummary(ctx context.Context, date string) (*service.DailySummary, error) {
	return t.storage.GetDailySummary(ctx, date)
}

func (t *sqliteTransaction) GetServiceSummary(ctx context.Context, start, end string) (map[model.Service]service.ServiceTotals, error) {
	return t.storage.GetServiceSummary(ctx, start, end)
}

func (t *sqliteTransaction) GetUserActivity(ctx context.Context, start, end, username string) (*service.UserActivity, error) {
	return t.storage.GetUserActivity(ctx, start, end, username)
}

func (t *sqliteTransaction) GetDailyStats(ctx context.Context, start, end string) ([]service.DailyStat, error) {
	return t.storage.GetDailyStats(ctx, start, end)
}

func (t *sqliteTransaction) GetPeakHours(ctx context.Context, start, end string, limit int) ([]service.HourCount, error) {
	return t.storage.GetPeakHours(ctx, start, end, limit)
}

func (t *sqliteTransaction) GetAllStock(ctx context.Context) (map[model.Item]int, error) {
	return t.storage.GetAllStock(ctx)
}

func (t *sqliteTransaction) GetPaperAdditions(ctx context.Context, start, end string) ([]model.PaperAddition, error) {
	return t.storage.GetPaperAdditions(ctx, start, end)
}

func (t *sqliteTransaction) ClearPaperAdditions(ctx context.Context) error {
	return t.storage.ClearPaperAdditions(ctx)
}

func (t *sqliteTransaction) GetExpensesByDate(ctx context.Context, date string) ([]model.Expense, error) {
	return t.storage.GetExpensesByDate(ctx, date)
}

func (t *sqliteTransaction) GetExpenseTotalsByCategory(ctx context.Context, date string) (map[string]float64, error) {
	return t.storage.GetExpenseTotalsByCategory(ctx, date)
}

func (t *sqliteTransaction) GetDailyRecord(ctx context.Context, date string) (*model.DailyRecord, error) {
	return t.storage.GetDailyRecord(ctx, date)
}

func (t *sqliteTransaction) ListDailyRecords(ctx context.Context) ([]model.DailyRecord, error) {
	return t.storage.ListDailyRecords(ctx)
}

func (t *sqliteTransaction) CreateUser(ctx context.Context, user *model.User) error {
	return t.storage.CreateUser(ctx, user)
}

func (t *sqliteTransaction) GetUser(ctx context.Context, username string) (*model.User, error) {
	return t.storage.GetUser(ctx, username)
}

func (t *sqliteTransaction) ListUsers(ctx context.Context) ([]model.User, error) {
	return t.storage.ListUsers(ctx)
}

func (t *sqliteTransaction) UpdateUser(ctx context.Context, username string, update service.UserUpdate) error {
	return t.storage.UpdateUser(ctx, username, update)
}

func (t *sqliteTransaction) DeleteUser(ctx context.Context, username string) error {
	return t.storage.DeleteUser(ctx, username)
}

func (t *sqliteTransaction) CountAdmins(ctx context.Context) (int, error) {
	return t.storage.CountAdmins(ctx)
}

func (t *sqliteTransaction) Migrate(_ context.Context) error {
	// Migrations should not be run within a transaction
	return fmt.Errorf("migrations cannot be run within a transaction")
}

func (t *sqliteTransaction) BeginTx(_ context.Context) (service.Transaction, error) {
	// Nested transactions not supported
	return nil, fmt.Errorf("nested transactions not supported")
}

func (t *sqliteTransaction) Close() error {
	// Transactions should be committed or rolled back, not closed
	return fmt.Errorf("transactions must be committed or rolled back, not closed")
}
