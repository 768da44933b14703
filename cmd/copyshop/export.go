package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moses-ramoeletsi/copyshop/internal/cli"
	"github.com/moses-ramoeletsi/copyshop/internal/report"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export data to CSV",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "transactions",
		Short: "Export all transactions to CSV",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runExport(c, (*report.Exporter).Transactions)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "daily-records",
		Short: "Export all daily records to CSV",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runExport(c, (*report.Exporter).DailyRecords)
		},
	})

	return cmd
}

func runExport(cmd *cobra.Command, run func(*report.Exporter, context.Context) (string, error)) error {
	ctx := cmd.Context()

	if _, err := currentSession(); err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	exporter, err := report.NewExporter(store, exportsDir(), os.Stderr)
	if err != nil {
		return err
	}

	path, err := run(exporter, ctx)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Exported to " + path)) //nolint:forbidigo // User-facing output

	return nil
}
