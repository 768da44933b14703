package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/moses-ramoeletsi/copyshop/internal/cli"
	"github.com/moses-ramoeletsi/copyshop/internal/engine"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/report"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's shop overview (admin only)",
		Args:  cobra.NoArgs,
		RunE:  runDashboard,
	}
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	session, err := requireAdmin()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	today := model.DateKey(time.Now())

	summary, err := store.GetDailySummary(ctx, today)
	if err != nil {
		return err
	}
	expenses, err := store.GetExpenseTotalsByCategory(ctx, today)
	if err != nil {
		return err
	}
	var totalExpenses float64
	for _, amount := range expenses {
		totalExpenses += amount
	}
	stats, err := store.GetDailyStats(ctx, today, today)
	if err != nil {
		return err
	}
	activeUsers := 0
	if len(stats) > 0 {
		activeUsers = stats[0].ActiveUsers
	}
	users, err := store.ListUsers(ctx)
	if err != nil {
		return err
	}

	eng := engine.New(store, session.Username)
	levels, err := eng.StockLevels(ctx)
	if err != nil {
		return err
	}
	low, err := eng.LowStockItems(ctx)
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Transactions: %d\n", summary.Count)
	fmt.Fprintf(&sb, "Revenue:      %s\n", report.Money(summary.TotalAmount))
	fmt.Fprintf(&sb, "Expenses:     %s\n", report.Money(totalExpenses))
	fmt.Fprintf(&sb, "Balance:      %s\n", report.Money(summary.TotalAmount-totalExpenses))
	fmt.Fprintf(&sb, "Papers used:  %d sheets\n", summary.PapersUsed)
	fmt.Fprintf(&sb, "Active users: %d of %d accounts\n", activeUsers, len(users))
	fmt.Fprintf(&sb, "Stock:        %d sheets, %d files, %d envelopes",
		levels.Paper.TotalSheets, levels.Files, levels.Envelopes)
	fmt.Println(cli.RenderBox("Dashboard "+today, sb.String())) //nolint:forbidigo // User-facing output

	for _, item := range low {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%s stock is running low", item))) //nolint:forbidigo // User-facing output
	}

	return nil
}
