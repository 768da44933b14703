package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moses-ramoeletsi/copyshop/internal/cli"
	"github.com/moses-ramoeletsi/copyshop/internal/engine"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/report"
)

func endDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "end-day",
		Short: "Close out the day's takings",
		Long: `Aggregate today's transactions and expenses into the daily record and
write the daily report. Safe to run more than once: the record is
recomputed from the underlying data each time.`,
		Args: cobra.NoArgs,
		RunE: runEndDay,
	}

	cmd.Flags().String("date", "", "close a specific date (YYYY-MM-DD) instead of today")

	return cmd
}

func runEndDay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	session, err := currentSession()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	eng := engine.New(store, session.Username)

	date, _ := cmd.Flags().GetString("date")
	var record *model.DailyRecord
	if date == "" {
		record, err = eng.EndDay(ctx)
	} else {
		record, err = eng.CloseDate(ctx, date)
	}
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Income:   %s\n", report.Money(record.DailyIncome))
	fmt.Fprintf(&sb, "Expenses: %s\n", report.Money(record.TotalExpenses))
	fmt.Fprintf(&sb, "Balance:  %s\n", report.Money(record.Balance))
	fmt.Fprintf(&sb, "Papers:   %d sheets", record.PapersUsed)
	fmt.Println(cli.RenderBox("Day Closed: "+record.Date, sb.String())) //nolint:forbidigo // User-facing output

	writer, err := report.NewWriter(store, reportsDir())
	if err != nil {
		return err
	}
	path, err := writer.Daily(ctx, record.Date)
	if err != nil {
		return err
	}
	fmt.Println(cli.FormatSuccess("Daily report written to " + path)) //nolint:forbidigo // User-facing output

	return nil
}
