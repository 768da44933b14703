package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/moses-ramoeletsi/copyshop/internal/common"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/service"
)

// CreateUser inserts a new user account. Usernames are unique.
func (s *SQLiteStorage) CreateUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUser(user); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username = ?", user.Username).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: user %q", common.ErrDuplicateEntry, user.Username)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, role, full_name, created_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?)
	`, user.Username, user.PasswordHash, string(user.Role), user.FullName,
		user.CreatedAt, user.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return tx.Commit()
}

// GetUser returns one user account by username.
func (s *SQLiteStorage) GetUser(ctx context.Context, username string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	var user model.User
	var role string
	err := s.db.QueryRowContext(ctx, `
		SELECT username, password_hash, role, full_name, created_at, COALESCE(created_by, '')
		FROM users
		WHERE username = ?
	`, username).Scan(&user.Username, &user.PasswordHash, &role,
		&user.FullName, &user.CreatedAt, &user.CreatedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %q", common.ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	user.Role = model.Role(role)

	return &user, nil
}

// ListUsers returns every user account ordered by username.
func (s *SQLiteStorage) ListUsers(ctx context.Context) ([]model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT username, password_hash, role, full_name, created_at, COALESCE(created_by, '')
		FROM users
		ORDER BY username
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []model.User
	for rows.Next() {
		var user model.User
		var role string
		if err := rows.Scan(&user.Username, &user.PasswordHash, &role,
			&user.FullName, &user.CreatedAt, &user.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Role = model.Role(role)
		users = append(users, user)
	}

	return users, rows.Err()
}

// UpdateUser applies the non-nil fields of update to an existing account.
func (s *SQLiteStorage) UpdateUser(ctx context.Context, username string, update service.UserUpdate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(username, "username"); err != nil {
		return err
	}

	fields := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if update.PasswordHash != nil {
		fields = append(fields, "password_hash = ?")
		args = append(args, *update.PasswordHash)
	}
	if update.FullName != nil {
		fields = append(fields, "full_name = ?")
		args = append(args, *update.FullName)
	}
	if update.Role != nil {
		if !update.Role.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidRole, *update.Role)
		}
		fields = append(fields, "role = ?")
		args = append(args, string(*update.Role))
	}

	if len(fields) == 0 {
		return nil
	}
	args = append(args, username)

	// Demoting the last admin would break the admin invariant the same way
	// deleting them would.
	if update.Role != nil && *update.Role != model.RoleAdmin {
		user, err := s.GetUser(ctx, username)
		if err != nil {
			return err
		}
		if user.IsAdmin() {
			admins, err := s.CountAdmins(ctx)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return common.ErrLastAdmin
			}
		}
	}

	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE users SET %s WHERE username = ?", strings.Join(fields, ", ")),
		args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check user update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: user %q", common.ErrNotFound, username)
	}

	return nil
}

// DeleteUser removes a user account. Deleting the last remaining admin is
// rejected so the system always has at least one admin.
func (s *SQLiteStorage) DeleteUser(ctx context.Context, username string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(username, "username"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var role string
	err = tx.QueryRowContext(ctx,
		"SELECT role FROM users WHERE username = ?", username).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: user %q", common.ErrNotFound, username)
	}
	if err != nil {
		return fmt.Errorf("failed to query user role: %w", err)
	}

	if model.Role(role) == model.RoleAdmin {
		var admins int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM users WHERE role = ?", string(model.RoleAdmin)).Scan(&admins); err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return common.ErrLastAdmin
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE username = ?", username); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return tx.Commit()
}

// CountAdmins returns the number of admin accounts.
func (s *SQLiteStorage) CountAdmins(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var admins int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE role = ?", string(model.RoleAdmin)).Scan(&admins)
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}

	return admins, nil
}
