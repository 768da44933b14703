// Package auth manages operator accounts: password hashing, authentication
// and the admin bootstrap.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/moses-ramoeletsi/copyshop/internal/common"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/service"
)

// Default admin credentials seeded when no admin account exists. The
// operator is expected to change the password after first login.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// Manager performs account operations against storage.
type Manager struct {
	storage service.Storage
}

// NewManager creates an account manager.
func NewManager(storage service.Storage) *Manager {
	return &Manager{storage: storage}
}

// EnsureAdmin seeds the default admin account if no admin exists yet.
func (m *Manager) EnsureAdmin(ctx context.Context) error {
	admins, err := m.storage.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if admins > 0 {
		return nil
	}

	if err := m.Register(ctx, DefaultAdminUsername, DefaultAdminPassword,
		model.RoleAdmin, "System Administrator", "system"); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	slog.Info("Seeded default admin account", "username", DefaultAdminUsername)
	return nil
}

// Register creates a new user account with a bcrypt password hash.
func (m *Manager) Register(ctx context.Context, username, password string, role model.Role, fullName, createdBy string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return common.NewUserError("username cannot be empty", nil)
	}
	if strings.TrimSpace(password) == "" {
		return common.NewUserError("password cannot be empty", nil)
	}
	if !role.Valid() {
		return common.NewUserError(fmt.Sprintf("unknown role %q", role), nil)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return m.storage.CreateUser(ctx, &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FullName:     fullName,
		CreatedAt:    time.Now(),
		CreatedBy:    createdBy,
	})
}

// Authenticate verifies a username/password pair and returns the account.
func (m *Manager) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := m.storage.GetUser(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}

// SetPassword replaces a user's password.
func (m *Manager) SetPassword(ctx context.Context, username, password string) error {
	if strings.TrimSpace(password) == "" {
		return common.NewUserError("password cannot be empty", nil)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return m.storage.UpdateUser(ctx, username, service.UserUpdate{PasswordHash: &hash})
}

// HashPassword hashes a password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether input matches the stored bcrypt hash.
func VerifyPassword(stored, input string) bool {
	if stored == "" || input == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(input)) == nil
}
