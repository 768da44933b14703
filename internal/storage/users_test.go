package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moses-ramoeletsi/copyshop/internal/common"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/service"
)

func createTestUser(t *testing.T, store *SQLiteStorage, username string, role model.Role) {
	t.Helper()
	err := store.CreateUser(context.Background(), &model.User{
		CreatedAt:    time.Now(),
		Username:     username,
		PasswordHash: "hash-" + username,
		FullName:     "Test " + username,
		CreatedBy:    "system",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("Failed to create user %q: %v", username, err)
	}
}

func TestCreateAndGetUser(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	createTestUser(t, store, "alice", model.RoleAdmin)

	user, err := store.GetUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Username != "alice" || user.Role != model.RoleAdmin {
		t.Errorf("Unexpected user: %+v", user)
	}
	if !user.IsAdmin() {
		t.Error("Expected alice to be admin")
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	createTestUser(t, store, "alice", model.RoleUser)

	err := store.CreateUser(context.Background(), &model.User{
		CreatedAt:    time.Now(),
		Username:     "alice",
		PasswordHash: "other",
		Role:         model.RoleUser,
	})
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("Expected ErrDuplicateEntry, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetUser(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUserLastAdmin(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, store, "alice", model.RoleAdmin)
	createTestUser(t, store, "bob", model.RoleUser)

	// The only admin cannot be removed.
	err := store.DeleteUser(ctx, "alice")
	if !errors.Is(err, common.ErrLastAdmin) {
		t.Fatalf("Expected ErrLastAdmin, got %v", err)
	}
	if _, err := store.GetUser(ctx, "alice"); err != nil {
		t.Errorf("Last admin should still exist: %v", err)
	}

	// A second admin makes deletion legal again.
	createTestUser(t, store, "carol", model.RoleAdmin)
	if err := store.DeleteUser(ctx, "alice"); err != nil {
		t.Fatalf("DeleteUser failed with two admins: %v", err)
	}

	// Regular users are always deletable.
	if err := store.DeleteUser(ctx, "bob"); err != nil {
		t.Errorf("DeleteUser failed for regular user: %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, store, "alice", model.RoleAdmin)
	createTestUser(t, store, "bob", model.RoleUser)

	newHash := "newhash"
	newName := "Robert"
	adminRole := model.RoleAdmin
	err := store.UpdateUser(ctx, "bob", service.UserUpdate{
		PasswordHash: &newHash,
		FullName:     &newName,
		Role:         &adminRole,
	})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	user, err := store.GetUser(ctx, "bob")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.PasswordHash != newHash || user.FullName != newName || user.Role != model.RoleAdmin {
		t.Errorf("Update not applied: %+v", user)
	}

	admins, err := store.CountAdmins(ctx)
	if err != nil {
		t.Fatalf("CountAdmins failed: %v", err)
	}
	if admins != 2 {
		t.Errorf("Expected 2 admins, got %d", admins)
	}
}

func TestUpdateUserDemoteLastAdmin(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, store, "alice", model.RoleAdmin)

	userRole := model.RoleUser
	err := store.UpdateUser(ctx, "alice", service.UserUpdate{Role: &userRole})
	if !errors.Is(err, common.ErrLastAdmin) {
		t.Fatalf("Expected ErrLastAdmin, got %v", err)
	}

	user, err := store.GetUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Errorf("Last admin was demoted to %s", user.Role)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	name := "Nobody"
	err := store.UpdateUser(context.Background(), "ghost", service.UserUpdate{FullName: &name})
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListUsersOrdered(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	createTestUser(t, store, "zed", model.RoleUser)
	createTestUser(t, store, "alice", model.RoleAdmin)

	users, err := store.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(users))
	}
	if users[0].Username != "alice" || users[1].Username != "zed" {
		t.Errorf("Users not ordered by username: %q, %q", users[0].Username, users[1].Username)
	}
}
