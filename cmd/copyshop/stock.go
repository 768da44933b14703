package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moses-ramoeletsi/copyshop/internal/cli"
	"github.com/moses-ramoeletsi/copyshop/internal/engine"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
)

func stockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "View and replenish inventory",
	}

	cmd.AddCommand(stockShowCmd())
	cmd.AddCommand(stockAddCmd())

	return cmd
}

func stockShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current stock levels",
		Args:  cobra.NoArgs,
		RunE:  runStockShow,
	}
}

func stockAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <item> <quantity>",
		Short: "Add stock for paper, files or envelopes",
		Long: `Add stock for a tracked consumable.

Paper quantities can be given in boxes, rims or sheets with --unit; one rim
is 500 sheets and one box is 5 rims. Files and envelopes are always counted
in single units.`,
		Args: cobra.ExactArgs(2),
		RunE: runStockAdd,
	}

	cmd.Flags().String("unit", "sheet", "paper unit: box, rim or sheet")

	return cmd
}

func runStockShow(cmd *cobra.Command, _ []string) error {
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
	levels, err := eng.StockLevels(ctx)
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Paper:     %d sheets (%d boxes, %d rims, %d loose)\n",
		levels.Paper.TotalSheets, levels.Paper.Boxes, levels.Paper.Rims, levels.Paper.Sheets)
	fmt.Fprintf(&sb, "Files:     %d\n", levels.Files)
	fmt.Fprintf(&sb, "Envelopes: %d", levels.Envelopes)

	fmt.Println(cli.RenderBox("Stock Levels", sb.String())) //nolint:forbidigo // User-facing output

	low, err := eng.LowStockItems(ctx)
	if err != nil {
		return err
	}
	for _, item := range low {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%s stock is running low", item))) //nolint:forbidigo // User-facing output
	}

	return nil
}

func runStockAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	item := model.Item(args[0])
	if !item.Valid() {
		return fmt.Errorf("unknown item %q, expected one of %v", args[0], model.Items)
	}

	quantity, err := strconv.Atoi(args[1])
	if err != nil || quantity <= 0 {
		return fmt.Errorf("quantity must be a positive number, got %q", args[1])
	}

	unitName, _ := cmd.Flags().GetString("unit")
	unit := model.Unit(unitName)
	switch unit {
	case model.UnitBox, model.UnitRim, model.UnitSheet:
	default:
		return fmt.Errorf("unknown unit %q, expected box, rim or sheet", unitName)
	}
	if item != model.ItemPaper && unit != model.UnitSheet {
		return fmt.Errorf("%ss are counted in single units, --unit only applies to paper", item)
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
	added, err := eng.AddStock(ctx, item, quantity, unit)
	if err != nil {
		return err
	}

	total, err := store.GetStock(ctx, item)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Added %d %s(s) to stock, now %d", added, item, total)
	if item == model.ItemPaper {
		b := model.BreakdownPaper(total)
		msg = fmt.Sprintf("Added %d sheets of paper, now %d sheets (%d boxes, %d rims, %d loose)",
			added, b.TotalSheets, b.Boxes, b.Rims, b.Sheets)
	}
	fmt.Println(cli.FormatSuccess(msg)) //nolint:forbidigo // User-facing output

	return nil
}
