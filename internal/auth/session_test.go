package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moses-ramoeletsi/copyshop/internal/common"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
)

func newTestSessionManager(t *testing.T, secret string, ttl time.Duration) *SessionManager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.jwt")
	return NewSessionManager(secret, path, ttl)
}

func TestSessionRoundtrip(t *testing.T) {
	sm := newTestSessionManager(t, "test-secret", time.Hour)

	user := &model.User{Username: "alice", FullName: "Alice", Role: model.RoleAdmin}
	require.NoError(t, sm.Login(user))

	session, err := sm.Current()
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, "Alice", session.FullName)
	assert.Equal(t, model.RoleAdmin, session.Role)
	assert.True(t, session.IsAdmin())
}

func TestSessionNotLoggedIn(t *testing.T) {
	sm := newTestSessionManager(t, "test-secret", time.Hour)

	_, err := sm.Current()
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)
}

func TestSessionLogout(t *testing.T) {
	sm := newTestSessionManager(t, "test-secret", time.Hour)

	require.NoError(t, sm.Login(&model.User{Username: "alice", Role: model.RoleUser}))
	require.NoError(t, sm.Logout())

	_, err := sm.Current()
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)

	// Logging out twice is fine.
	assert.NoError(t, sm.Logout())
}

// A token signed with a different secret must not be accepted.
func TestSessionRejectsForeignToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jwt")

	attacker := NewSessionManager("attacker-secret", path, time.Hour)
	require.NoError(t, attacker.Login(&model.User{Username: "admin", Role: model.RoleAdmin}))

	sm := NewSessionManager("real-secret", path, time.Hour)
	_, err := sm.Current()
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)
}
