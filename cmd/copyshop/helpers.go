package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/moses-ramoeletsi/copyshop/internal/auth"
	"github.com/moses-ramoeletsi/copyshop/internal/config"
	"github.com/moses-ramoeletsi/copyshop/internal/service"
	"github.com/moses-ramoeletsi/copyshop/internal/storage"
)

// databasePath resolves the configured database location.
func databasePath() string {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		return config.DefaultDatabasePath()
	}
	return config.ExpandPath(dbPath)
}

// closeStorage closes the store, logging rather than returning the error.
func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(databasePath())
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Make sure an admin account always exists
	if err := auth.NewManager(store).EnsureAdmin(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

// newSessionManager builds the session manager for the configured database
// location.
func newSessionManager() *auth.SessionManager {
	return auth.NewSessionManager(
		viper.GetString("auth.secret"),
		config.SessionPath(databasePath()),
		viper.GetDuration("auth.session_ttl"),
	)
}

// currentSession returns the active login session.
func currentSession() (*auth.Session, error) {
	session, err := newSessionManager().Current()
	if err != nil {
		return nil, fmt.Errorf("not logged in, run 'copyshop login' first: %w", err)
	}
	return session, nil
}

// requireAdmin returns the active session only if it belongs to an admin.
func requireAdmin() (*auth.Session, error) {
	session, err := currentSession()
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() {
		return nil, fmt.Errorf("this command requires an admin account")
	}
	return session, nil
}

// reportsDir resolves the configured reports directory.
func reportsDir() string {
	dir := viper.GetString("reports.dir")
	if dir == "" {
		return "reports"
	}
	return config.ExpandPath(dir)
}

// exportsDir resolves the configured exports directory.
func exportsDir() string {
	dir := viper.GetString("exports.dir")
	if dir == "" {
		return "exports"
	}
	return config.ExpandPath(dir)
}

// backupsDir resolves the configured backups directory.
func backupsDir() string {
	dir := viper.GetString("backups.dir")
	if dir == "" {
		return "backups"
	}
	return config.ExpandPath(dir)
}

// promptString reads a single line of input with a prompt.
func promptString(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Printf("%s: ", prompt) //nolint:forbidigo // User-facing output
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
