// Package report produces the text reports and CSV exports read by the
// shop owner: daily summaries, activity reports and data dumps.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moses-ramoeletsi/copyshop/internal/engine"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/service"
)

// Writer generates text reports into a reports directory.
type Writer struct {
	storage service.Storage
	dir     string
}

// NewWriter creates a report writer targeting dir, creating it if needed.
func NewWriter(storage service.Storage, dir string) (*Writer, error) {
	if dir == "" {
		dir = "reports"
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}
	return &Writer{storage: storage, dir: dir}, nil
}

// Money formats an amount with the local currency prefix.
func Money(amount float64) string {
	return fmt.Sprintf("M%.2f", amount)
}

func divider(width int) string {
	return strings.Repeat("-", width)
}

// Daily writes the end-of-day report for one date: per-service revenue,
// totals and itemized expenses.
func (w *Writer) Daily(ctx context.Context, date string) (string, error) {
	summary, err := w.storage.GetDailySummary(ctx, date)
	if err != nil {
		return "", err
	}
	services, err := w.storage.GetServiceSummary(ctx, date, date)
	if err != nil {
		return "", err
	}
	expenses, err := w.storage.GetExpensesByDate(ctx, date)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Daily Report - %s\n", date)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 50))

	b.WriteString("Revenue Breakdown:\n")
	fmt.Fprintf(&b, "%s\n", divider(20))
	for _, svc := range model.Services {
		totals := services[svc]
		fmt.Fprintf(&b, "%s: %d transactions - %s\n", svc, totals.Count, Money(totals.Amount))
	}

	fmt.Fprintf(&b, "\nTotal Revenue: %s\n", Money(summary.TotalAmount))
	fmt.Fprintf(&b, "Papers Used: %d\n\n", summary.PapersUsed)

	b.WriteString("Expenses Breakdown:\n")
	fmt.Fprintf(&b, "%s\n", divider(20))
	for _, expense := range expenses {
		fmt.Fprintf(&b, "%s: %s - %s\n", expense.Category, Money(expense.Amount), expense.Description)
	}

	filename := filepath.Join(w.dir, fmt.Sprintf("daily_report_%s.txt", date))
	if err := os.WriteFile(filename, []byte(b.String()), 0640); err != nil {
		return "", fmt.Errorf("failed to write daily report: %w", err)
	}

	return filename, nil
}

// UserActivity writes the per-user activity report over a date range.
func (w *Writer) UserActivity(ctx context.Context, start, end string) (string, error) {
	users, err := w.storage.ListUsers(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User Activity Report (%s to %s)\n", start, end)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 50))

	for _, user := range users {
		activity, err := w.storage.GetUserActivity(ctx, start, end, user.Username)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&b, "\nUser: %s\n", user.Username)
		fmt.Fprintf(&b, "%s\n", divider(20))
		fmt.Fprintf(&b, "Total Transactions: %d\n", activity.Count)
		fmt.Fprintf(&b, "Total Amount: %s\n", Money(activity.Total))

		b.WriteString("\nService Breakdown:\n")
		for _, svc := range model.Services {
			if count, ok := activity.ByService[svc]; ok {
				fmt.Fprintf(&b, "%s: %d\n", svc, count)
			}
		}
	}

	filename := filepath.Join(w.dir, fmt.Sprintf("user_activity_%s_%s.txt", start, end))
	if err := os.WriteFile(filename, []byte(b.String()), 0640); err != nil {
		return "", fmt.Errorf("failed to write user activity report: %w", err)
	}

	return filename, nil
}

// PrintJobs writes the print jobs report over a date range: overall totals
// plus a per-service breakdown.
func (w *Writer) PrintJobs(ctx context.Context, start, end string) (string, error) {
	services, err := w.storage.GetServiceSummary(ctx, start, end)
	if err != nil {
		return "", err
	}

	totalJobs, totalRevenue, totalPapers := 0, 0.0, 0
	for _, totals := range services {
		totalJobs += totals.Count
		totalRevenue += totals.Amount
		totalPapers += totals.PapersUsed
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Print Jobs Report (%s to %s)\n", start, end)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 50))

	b.WriteString("Overall Summary:\n")
	fmt.Fprintf(&b, "Total Jobs: %d\n", totalJobs)
	fmt.Fprintf(&b, "Total Revenue: %s\n", Money(totalRevenue))
	fmt.Fprintf(&b, "Total Papers Used: %d\n\n", totalPapers)

	b.WriteString("Service Breakdown:\n")
	fmt.Fprintf(&b, "%s\n", divider(20))
	for _, svc := range model.Services {
		totals, ok := services[svc]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\nService: %s\n", svc)
		fmt.Fprintf(&b, "Number of Jobs: %d\n", totals.Count)
		fmt.Fprintf(&b, "Total Revenue: %s\n", Money(totals.Amount))
		fmt.Fprintf(&b, "Papers Used: %d\n", totals.PapersUsed)
	}

	filename := filepath.Join(w.dir, fmt.Sprintf("print_jobs_%s_%s.txt", start, end))
	if err := os.WriteFile(filename, []byte(b.String()), 0640); err != nil {
		return "", fmt.Errorf("failed to write print jobs report: %w", err)
	}

	return filename, nil
}

// StockUsage writes the stock usage report over a date range: current
// levels, consumption and paper stock additions.
func (w *Writer) StockUsage(ctx context.Context, start, end string) (string, error) {
	stock, err := w.storage.GetAllStock(ctx)
	if err != nil {
		return "", err
	}
	services, err := w.storage.GetServiceSummary(ctx, start, end)
	if err != nil {
		return "", err
	}
	additions, err := w.storage.GetPaperAdditions(ctx, start, end)
	if err != nil {
		return "", err
	}

	paper := model.BreakdownPaper(stock[model.ItemPaper])
	totalPapers := 0
	for _, totals := range services {
		totalPapers += totals.PapersUsed
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stock Usage Report (%s to %s)\n", start, end)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 50))

	b.WriteString("Current Stock Levels:\n")
	fmt.Fprintf(&b, "%s\n", divider(20))
	fmt.Fprintf(&b, "Paper: %d boxes, %d rims, %d sheets\n", paper.Boxes, paper.Rims, paper.Sheets)
	fmt.Fprintf(&b, "Total Sheets: %d\n", paper.TotalSheets)
	fmt.Fprintf(&b, "File: %d units\n", stock[model.ItemFile])
	fmt.Fprintf(&b, "Envelope: %d units\n", stock[model.ItemEnvelope])

	b.WriteString("\nUsage Statistics:\n")
	fmt.Fprintf(&b, "%s\n", divider(20))
	fmt.Fprintf(&b, "\nTotal Papers Used: %d sheets\n", totalPapers)
	fmt.Fprintf(&b, "Files Used: %d units\n", services[model.ServiceFile].Count)
	fmt.Fprintf(&b, "Envelopes Used: %d units\n", services[model.ServiceEnvelope].Count)

	b.WriteString("\nStock Additions:\n")
	fmt.Fprintf(&b, "%s\n", divider(20))
	for _, addition := range additions {
		fmt.Fprintf(&b, "%s: Added %d sheets\n", addition.Date, addition.QuantityAdded)
	}

	filename := filepath.Join(w.dir, fmt.Sprintf("stock_usage_%s_%s.txt", start, end))
	if err := os.WriteFile(filename, []byte(b.String()), 0640); err != nil {
		return "", fmt.Errorf("failed to write stock usage report: %w", err)
	}

	return filename, nil
}

// Performance writes the performance report over a date range: per-date
// statistics with averages, peak hours, service popularity and low stock
// warnings.
func (w *Writer) Performance(ctx context.Context, start, end string) (string, error) {
	stats, err := w.storage.GetDailyStats(ctx, start, end)
	if err != nil {
		return "", err
	}
	hours, err := w.storage.GetPeakHours(ctx, start, end, 5)
	if err != nil {
		return "", err
	}
	services, err := w.storage.GetServiceSummary(ctx, start, end)
	if err != nil {
		return "", err
	}
	stock, err := w.storage.GetAllStock(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "System Performance Report (%s to %s)\n", start, end)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 50))

	b.WriteString("Daily Transaction Statistics:\n")
	fmt.Fprintf(&b, "%s\n", divider(20))

	totalTransactions, totalRevenue := 0, 0.0
	for _, stat := range stats {
		fmt.Fprintf(&b, "\nDate: %s\n", stat.Date)
		fmt.Fprintf(&b, "Transactions: %d\n", stat.Count)
		fmt.Fprintf(&b, "Revenue: %s\n", Money(stat.Revenue))
		totalTransactions += stat.Count
		totalRevenue += stat.Revenue
	}

	if len(stats) > 0 {
		days := float64(len(stats))
		b.WriteString("\nAverages:\n")
		fmt.Fprintf(&b, "Daily Transactions: %.1f\n", float64(totalTransactions)/days)
		fmt.Fprintf(&b, "Daily Revenue: %s\n", Money(totalRevenue/days))
	}

	b.WriteString("\nPeak Usage Hours:\n")
	fmt.Fprintf(&b, "%s\n", divider(20))
	for _, hc := range hours {
		fmt.Fprintf(&b, "%s:00 - %d transactions\n", hc.Hour, hc.Count)
	}

	b.WriteString("\nService Popularity:\n")
	fmt.Fprintf(&b, "%s\n", divider(20))
	for _, svc := range model.Services {
		totals, ok := services[svc]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", svc)
		fmt.Fprintf(&b, "Usage Count: %d\n", totals.Count)
		fmt.Fprintf(&b, "Revenue: %s\n", Money(totals.Amount))
	}

	var lowStock []model.Item
	for _, item := range model.Items {
		if stock[item] < engine.StockThresholds[item] {
			lowStock = append(lowStock, item)
		}
	}
	if len(lowStock) > 0 {
		b.WriteString("\nLow Stock Warnings:\n")
		for _, item := range lowStock {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}

	filename := filepath.Join(w.dir, fmt.Sprintf("performance_%s_%s.txt", start, end))
	if err := os.WriteFile(filename, []byte(b.String()), 0640); err != nil {
		return "", fmt.Errorf("failed to write performance report: %w", err)
	}

	return filename, nil
}
