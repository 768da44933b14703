package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/moses-ramoeletsi/copyshop/internal/service"
)

// Exporter writes CSV dumps into an exports directory.
type Exporter struct {
	storage  service.Storage
	progress io.Writer
	dir      string
}

// NewExporter creates an exporter targeting dir, creating it if needed.
// Progress output goes to progress; pass nil to discard it.
func NewExporter(storage service.Storage, dir string, progress io.Writer) (*Exporter, error) {
	if dir == "" {
		dir = "exports"
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create exports directory: %w", err)
	}
	if progress == nil {
		progress = io.Discard
	}
	return &Exporter{storage: storage, dir: dir, progress: progress}, nil
}

// timestampSuffix names export files uniquely per run.
func timestampSuffix() string {
	return time.Now().Format("20060102_150405")
}

// Transactions exports every transaction row to a timestamped CSV file.
func (e *Exporter) Transactions(ctx context.Context) (string, error) {
	txns, err := e.storage.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		return "", err
	}

	filename := filepath.Join(e.dir, fmt.Sprintf("transactions_%s.csv", timestampSuffix()))
	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"Date", "Service", "Quantity", "Amount", "Papers Used", "Timestamp", "Created By"}); err != nil {
		return "", fmt.Errorf("failed to write export header: %w", err)
	}

	bar := progressbar.NewOptions(len(txns),
		progressbar.OptionSetWriter(e.progress),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Exporting transactions..."),
	)

	for _, txn := range txns {
		record := []string{
			txn.Date,
			string(txn.Service),
			strconv.Itoa(txn.Quantity),
			fmt.Sprintf("%.2f", txn.Amount),
			strconv.Itoa(txn.PapersUsed),
			txn.Timestamp.Format("2006-01-02 15:04:05"),
			txn.CreatedBy,
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write export row: %w", err)
		}
		_ = bar.Add(1)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush export: %w", err)
	}

	return filename, nil
}

// DailyRecords exports every daily record to a timestamped CSV file.
func (e *Exporter) DailyRecords(ctx context.Context) (string, error) {
	records, err := e.storage.ListDailyRecords(ctx)
	if err != nil {
		return "", err
	}

	filename := filepath.Join(e.dir, fmt.Sprintf("daily_records_%s.csv", timestampSuffix()))
	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	writer := csv.NewWriter(f)
	header := []string{"Date", "Daily Income", "Mottakase", "Pampiri", "INK/Cardrige",
		"Drawings", "Total Expenses", "Balance", "Papers Used"}
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("failed to write export header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Date,
			fmt.Sprintf("%.2f", record.DailyIncome),
			fmt.Sprintf("%.2f", record.Mottakase),
			fmt.Sprintf("%.2f", record.Pampiri),
			fmt.Sprintf("%.2f", record.InkCartridge),
			fmt.Sprintf("%.2f", record.Drawings),
			fmt.Sprintf("%.2f", record.TotalExpenses),
			fmt.Sprintf("%.2f", record.Balance),
			strconv.Itoa(record.PapersUsed),
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write export row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush export: %w", err)
	}

	return filename, nil
}

// Clean removes every file in the reports and exports directories. Used by
// the admin maintenance command.
func Clean(dirs ...string) error {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				return fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
			}
		}
	}
	return nil
}
