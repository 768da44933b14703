package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/moses-ramoeletsi/copyshop/internal/cli"
	"github.com/moses-ramoeletsi/copyshop/internal/engine"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/report"
)

func sellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell <service> <quantity>",
		Short: "Record a service transaction",
		Long: `Record a sale of one of the fixed services:
Photocopy, Printing, Scanning, Lamination, File, Envelope.

The charge is quantity times the fixed unit price. Photocopy and Printing
consume paper stock (one sheet per unit by default, adjustable with
--papers); File and Envelope sales consume their own stock.`,
		Args: cobra.ExactArgs(2),
		RunE: runSell,
	}

	cmd.Flags().Int("papers", -1, "sheets of paper consumed per unit (default: 1 for Photocopy/Printing, 0 otherwise)")

	return cmd
}

func runSell(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc := model.Service(args[0])
	if !svc.Valid() {
		return fmt.Errorf("unknown service %q, expected one of %v", args[0], model.Services)
	}

	quantity, err := strconv.Atoi(args[1])
	if err != nil || quantity <= 0 {
		return fmt.Errorf("quantity must be a positive number, got %q", args[1])
	}

	papersPerUnit, _ := cmd.Flags().GetInt("papers")
	if papersPerUnit < 0 {
		papersPerUnit = 0
		if svc == model.ServicePhotocopy || svc == model.ServicePrinting {
			papersPerUnit = 1
		}
	}

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

	// Friendly availability check before committing anything. The ledger
	// still rejects a decrement past zero if stock moved underneath us.
	switch svc {
	case model.ServiceFile, model.ServiceEnvelope:
		item := model.ItemFile
		if svc == model.ServiceEnvelope {
			item = model.ItemEnvelope
		}
		available, stockErr := store.GetStock(ctx, item)
		if stockErr != nil {
			return stockErr
		}
		if available < quantity {
			return fmt.Errorf("not enough %ss in stock: have %d, need %d", item, available, quantity)
		}
	}
	if papersPerUnit > 0 {
		available, stockErr := store.GetStock(ctx, model.ItemPaper)
		if stockErr != nil {
			return stockErr
		}
		if available < quantity*papersPerUnit {
			return fmt.Errorf("not enough paper in stock: have %d sheets, need %d", available, quantity*papersPerUnit)
		}
	}

	txn, err := eng.ProcessTransaction(ctx, svc, quantity, papersPerUnit)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Sold %d x %s for %s", txn.Quantity, txn.Service, report.Money(txn.Amount))
	if txn.PapersUsed > 0 {
		msg += fmt.Sprintf(" (%d sheets used)", txn.PapersUsed)
	}
	fmt.Println(cli.FormatSuccess(msg)) //nolint:forbidigo // User-facing output

	return nil
}
