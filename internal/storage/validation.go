// Package storage provides the data persistence layer for the copyshop application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/moses-ramoeletsi/copyshop/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidAmount    = errors.New("amount cannot be negative")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidService   = errors.New("invalid service")
	ErrInvalidItem      = errors.New("invalid inventory item")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDateRange ensures start and end are daily keys in order.
func validateDateRange(start, end string) error {
	if err := validateString(start, "start"); err != nil {
		return err
	}
	if err := validateString(end, "end"); err != nil {
		return err
	}
	if end < start {
		return fmt.Errorf("%w: %s after %s", ErrInvalidDateRange, start, end)
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if !txn.Service.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidService, txn.Service)
	}
	if txn.Date == "" {
		return fmt.Errorf("%w: date", ErrEmptyString)
	}
	if txn.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp", ErrNilParameter)
	}
	if txn.Amount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// validateExpense validates a single expense.
func validateExpense(expense *model.Expense) error {
	if expense == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if err := validateString(expense.Category, "category"); err != nil {
		return err
	}
	if expense.Date == "" {
		return fmt.Errorf("%w: date", ErrEmptyString)
	}
	if expense.Amount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// validateDailyRecord validates a daily record.
func validateDailyRecord(record *model.DailyRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if record.Date == "" {
		return fmt.Errorf("%w: date", ErrEmptyString)
	}
	return nil
}

// validateUser validates a user account.
func validateUser(user *model.User) error {
	if user == nil {
		return fmt.Errorf("%w: user", ErrNilParameter)
	}
	if err := validateString(user.Username, "username"); err != nil {
		return err
	}
	if err := validateString(user.PasswordHash, "passwordHash"); err != nil {
		return err
	}
	if !user.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, user.Role)
	}
	return nil
}

// validateItem ensures the item names a tracked consumable.
func validateItem(item model.Item) error {
	if !item.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidItem, item)
	}
	return nil
}
