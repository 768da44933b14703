package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/moses-ramoeletsi/copyshop/internal/common"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
)

// DefaultSessionTTL is how long a login session stays valid.
const DefaultSessionTTL = 8 * time.Hour

// Session is the authenticated operator attached to a CLI invocation.
type Session struct {
	Username string
	FullName string
	Role     model.Role
}

// IsAdmin reports whether the session belongs to an admin.
func (s *Session) IsAdmin() bool {
	return s.Role == model.RoleAdmin
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

// SessionManager issues and verifies signed session tokens persisted in a
// file next to the database, so consecutive CLI invocations share a login.
type SessionManager struct {
	secret []byte
	path   string
	ttl    time.Duration
}

// NewSessionManager creates a session manager storing tokens at path.
func NewSessionManager(secret, path string, ttl time.Duration) *SessionManager {
	if secret == "" {
		secret = "copyshop-dev-secret"
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{
		secret: []byte(secret),
		path:   path,
		ttl:    ttl,
	}
}

// Login issues a token for the user and persists it.
func (sm *SessionManager) Login(user *model.User) error {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sm.ttl)),
		},
		Role:     string(user.Role),
		FullName: user.FullName,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sm.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(sm.path), 0750); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(sm.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write session token: %w", err)
	}

	return nil
}

// Current returns the active session, or ErrNotLoggedIn when no valid
// token exists.
func (sm *SessionManager) Current() (*Session, error) {
	raw, err := os.ReadFile(sm.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read session token: %w", err)
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(strings.TrimSpace(string(raw)), &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return sm.secret, nil
		})
	if err != nil || !token.Valid {
		return nil, common.ErrNotLoggedIn
	}

	return &Session{
		Username: claims.Subject,
		FullName: claims.FullName,
		Role:     model.Role(claims.Role),
	}, nil
}

// Logout removes the persisted session token.
func (sm *SessionManager) Logout() error {
	if err := os.Remove(sm.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session token: %w", err)
	}
	return nil
}
