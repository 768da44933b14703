// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDatabasePath returns the database location used when none is
// configured.
func DefaultDatabasePath() string {
	return ExpandPath("$HOME/.local/share/copyshop/copyshop.db")
}

// SessionPath returns the location of the login session token. It lives
// next to the database so a backup never captures it.
func SessionPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "session.jwt")
}
