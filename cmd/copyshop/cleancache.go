package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moses-ramoeletsi/copyshop/internal/cli"
	"github.com/moses-ramoeletsi/copyshop/internal/report"
)

func cleanCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean-cache",
		Short: "Remove generated report and export files (admin only)",
		Args:  cobra.NoArgs,
		RunE:  runCleanCache,
	}

	cmd.Flags().Bool("paper-log", false, "also clear the paper addition audit log")

	return cmd
}

func runCleanCache(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if _, err := requireAdmin(); err != nil {
		return err
	}

	if err := report.Clean(reportsDir(), exportsDir()); err != nil {
		return err
	}

	if clearLog, _ := cmd.Flags().GetBool("paper-log"); clearLog {
		store, err := initStorage(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer closeStorage(store)

		if err := store.ClearPaperAdditions(ctx); err != nil {
			return err
		}
	}

	fmt.Println(cli.FormatSuccess("Cleaned generated report and export files")) //nolint:forbidigo // User-facing output

	return nil
}
