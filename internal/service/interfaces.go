// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/moses-ramoeletsi/copyshop/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// Dates are daily keys in model.DateLayout; empty strings mean unbounded.
type TransactionFilter struct {
	StartDate string
	EndDate   string
	CreatedBy string
	Limit     int
}

// DailySummary aggregates one date's transactions.
type DailySummary struct {
	Count       int
	TotalAmount float64
	PapersUsed  int
}

// ServiceTotals aggregates transactions of one service over a date range.
type ServiceTotals struct {
	Count      int
	Amount     float64
	PapersUsed int
}

// UserActivity aggregates one user's transactions over a date range.
type UserActivity struct {
	ByService map[model.Service]int
	Count     int
	Total     float64
}

// DailyStat is one row of the per-date performance aggregate.
type DailyStat struct {
	Date        string
	Count       int
	Revenue     float64
	ActiveUsers int
}

// HourCount is one row of the peak-hours aggregate.
type HourCount struct {
	Hour  string
	Count int
}

// UserUpdate holds the mutable fields of a user account. Nil fields are
// left unchanged.
type UserUpdate struct {
	PasswordHash *string
	FullName     *string
	Role         *model.Role
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Transaction operations
	SaveTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetDailySummary(ctx context.Context, date string) (*DailySummary, error)
	GetServiceSummary(ctx context.Context, start, end string) (map[model.Service]ServiceTotals, error)
	GetUserActivity(ctx context.Context, start, end, username string) (*UserActivity, error)
	GetDailyStats(ctx context.Context, start, end string) ([]DailyStat, error)
	GetPeakHours(ctx context.Context, start, end string, limit int) ([]HourCount, error)

	// Inventory operations
	GetStock(ctx context.Context, item model.Item) (int, error)
	GetAllStock(ctx context.Context) (map[model.Item]int, error)
	ApplyStockDelta(ctx context.Context, item model.Item, delta int) error
	LogPaperAddition(ctx context.Context, quantity int, createdBy string) error
	GetPaperAdditions(ctx context.Context, start, end string) ([]model.PaperAddition, error)
	ClearPaperAdditions(ctx context.Context) error

	// Expense operations
	SaveExpense(ctx context.Context, expense *model.Expense) error
	GetExpensesByDate(ctx context.Context, date string) ([]model.Expense, error)
	GetExpenseTotalsByCategory(ctx context.Context, date string) (map[string]float64, error)

	// Daily record operations
	UpsertDailyRecord(ctx context.Context, record *model.DailyRecord) error
	GetDailyRecord(ctx context.Context, date string) (*model.DailyRecord, error)
	ListDailyRecords(ctx context.Context) ([]model.DailyRecord, error)

	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, username string, update UserUpdate) error
	DeleteUser(ctx context.Context, username string) error
	CountAdmins(ctx context.Context) (int, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
	// Include all Storage methods for use within the transaction
	Storage
}
