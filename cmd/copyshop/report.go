package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/moses-ramoeletsi/copyshop/internal/cli"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate shop reports",
	}

	daily := &cobra.Command{
		Use:   "daily [date]",
		Short: "Daily revenue and expense report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReportDaily,
	}
	cmd.AddCommand(daily)

	for _, kind := range []struct {
		use   string
		short string
		run   func(context.Context, *report.Writer, string, string) (string, error)
	}{
		{"users", "User activity report", func(ctx context.Context, w *report.Writer, from, to string) (string, error) {
			return w.UserActivity(ctx, from, to)
		}},
		{"jobs", "Print and photocopy job report", func(ctx context.Context, w *report.Writer, from, to string) (string, error) {
			return w.PrintJobs(ctx, from, to)
		}},
		{"stock", "Stock usage report", func(ctx context.Context, w *report.Writer, from, to string) (string, error) {
			return w.StockUsage(ctx, from, to)
		}},
		{"performance", "Business performance report", func(ctx context.Context, w *report.Writer, from, to string) (string, error) {
			return w.Performance(ctx, from, to)
		}},
	} {
		run := kind.run
		sub := &cobra.Command{
			Use:   kind.use,
			Short: kind.short,
			Args:  cobra.NoArgs,
			RunE: func(c *cobra.Command, _ []string) error {
				return runRangedReport(c, run)
			},
		}
		sub.Flags().String("from", "", "start date (YYYY-MM-DD, default: 30 days ago)")
		sub.Flags().String("to", "", "end date (YYYY-MM-DD, default: today)")
		cmd.AddCommand(sub)
	}

	return cmd
}

func runReportDaily(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if _, err := currentSession(); err != nil {
		return err
	}

	date := model.DateKey(time.Now())
	if len(args) == 1 {
		if _, err := time.Parse(model.DateLayout, args[0]); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
		}
		date = args[0]
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	writer, err := report.NewWriter(store, reportsDir())
	if err != nil {
		return err
	}
	path, err := writer.Daily(ctx, date)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Report written to " + path)) //nolint:forbidigo // User-facing output

	return nil
}

func runRangedReport(cmd *cobra.Command, run func(context.Context, *report.Writer, string, string) (string, error)) error {
	ctx := cmd.Context()

	if _, err := requireAdmin(); err != nil {
		return err
	}

	from, to, err := reportRange(cmd)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	writer, err := report.NewWriter(store, reportsDir())
	if err != nil {
		return err
	}
	path, err := run(ctx, writer, from, to)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Report written to " + path)) //nolint:forbidigo // User-facing output

	return nil
}

func reportRange(cmd *cobra.Command) (string, string, error) {
	now := time.Now()
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	if from == "" {
		from = model.DateKey(now.AddDate(0, 0, -30))
	}
	if to == "" {
		to = model.DateKey(now)
	}
	for _, date := range []string{from, to} {
		if _, err := time.Parse(model.DateLayout, date); err != nil {
			return "", "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
		}
	}
	if from > to {
		return "", "", fmt.Errorf("start date %s is after end date %s", from, to)
	}

	return from, to, nil
}
