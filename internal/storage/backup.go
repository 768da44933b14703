package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// BackupManager copies the database file into a backups directory.
type BackupManager struct {
	db         *sql.DB
	dbPath     string
	backupsDir string
}

// BackupInfo describes one completed backup.
type BackupInfo struct {
	CreatedAt time.Time
	Path      string
	FileSize  int64
}

// NewBackupManager creates a new backup manager writing into backupsDir.
func NewBackupManager(db *sql.DB, dbPath, backupsDir string) (*BackupManager, error) {
	if backupsDir == "" {
		backupsDir = filepath.Join(filepath.Dir(dbPath), "backups")
	}

	if err := os.MkdirAll(backupsDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create backups directory: %w", err)
	}

	return &BackupManager{
		db:         db,
		dbPath:     dbPath,
		backupsDir: backupsDir,
	}, nil
}

// Create writes a timestamped copy of the database.
func (bm *BackupManager) Create(ctx context.Context) (*BackupInfo, error) {
	name := fmt.Sprintf("backup_%s.db", time.Now().Format("20060102_150405"))
	backupPath := filepath.Join(bm.backupsDir, name)

	if _, err := os.Stat(backupPath); err == nil {
		return nil, fmt.Errorf("backup %s already exists", name)
	}

	if err := bm.backupDatabase(ctx, backupPath); err != nil {
		return nil, fmt.Errorf("failed to backup database: %w", err)
	}

	info, err := os.Stat(backupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup: %w", err)
	}

	slog.Info("Created backup", "path", backupPath, "size", info.Size())

	return &BackupInfo{
		Path:      backupPath,
		CreatedAt: info.ModTime(),
		FileSize:  info.Size(),
	}, nil
}

// List returns existing backups, newest first.
func (bm *BackupManager) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(bm.backupsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backups directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(bm.backupsDir, entry.Name()),
			CreatedAt: info.ModTime(),
			FileSize:  info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

func (bm *BackupManager) backupDatabase(ctx context.Context, destPath string) error {
	// Flush the WAL first so the main file is complete.
	if _, err := bm.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint WAL: %w", err)
	}

	// VACUUM INTO produces a consistent copy without blocking readers.
	// Validate destPath since it is interpolated into the statement.
	if strings.ContainsAny(destPath, `'";`) || strings.Contains(destPath, "..") {
		return fmt.Errorf("invalid destination path")
	}
	query := fmt.Sprintf("VACUUM INTO '%s'", destPath)
	if _, err := bm.db.ExecContext(ctx, query); err != nil {
		// Fall back to a plain file copy on older SQLite builds.
		slog.Warn("VACUUM INTO failed, falling back to file copy", "error", err)
		return bm.copyFile(bm.dbPath, destPath)
	}

	return nil
}

func (bm *BackupManager) copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	// Write to a temp file first so a failed copy never leaves a truncated
	// backup behind.
	tmpDst := dst + ".tmp"
	destination, err := os.Create(tmpDst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destination, source); err != nil {
		_ = destination.Close()
		_ = os.Remove(tmpDst)
		return err
	}

	if err := destination.Close(); err != nil {
		_ = os.Remove(tmpDst)
		return err
	}

	return os.Rename(tmpDst, dst)
}
