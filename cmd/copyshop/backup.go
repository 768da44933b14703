package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moses-ramoeletsi/copyshop/internal/cli"
	"github.com/moses-ramoeletsi/copyshop/internal/storage"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage database backups",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create a database backup",
		Args:  cobra.NoArgs,
		RunE:  runBackupCreate,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List existing backups",
		Args:  cobra.NoArgs,
		RunE:  runBackupList,
	})

	return cmd
}

func runBackupCreate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if _, err := requireAdmin(); err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(databasePath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStorage(store)

	manager, err := store.NewBackupManager(backupsDir())
	if err != nil {
		return err
	}

	info, err := manager.Create(ctx)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Backup created: %s (%d bytes)", info.Path, info.FileSize))) //nolint:forbidigo // User-facing output

	return nil
}

func runBackupList(cmd *cobra.Command, _ []string) error {
	if _, err := requireAdmin(); err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(databasePath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStorage(store)

	manager, err := store.NewBackupManager(backupsDir())
	if err != nil {
		return err
	}

	backups, err := manager.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No backups found")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.FormatTitle("Backups")) //nolint:forbidigo // User-facing output
	for _, b := range backups {
		fmt.Printf("%s  %10d bytes  %s\n", b.CreatedAt.Format("2006-01-02 15:04:05"), b.FileSize, b.Path) //nolint:forbidigo // User-facing output
	}

	return nil
}
