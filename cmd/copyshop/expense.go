package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moses-ramoeletsi/copyshop/internal/cli"
	"github.com/moses-ramoeletsi/copyshop/internal/engine"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/report"
)

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense <category> <amount>",
		Short: "Record a business expense",
		Long: `Record an expense against today's takings.

The named categories Mottakase, Pampiri, "INK/Cardrige" and Drawings get
their own column in the day-close record; any other category still counts
toward the day's total expenses.`,
		Args: cobra.ExactArgs(2),
		RunE: runExpense,
	}

	cmd.Flags().String("description", "", "optional note attached to the expense")

	return cmd
}

func runExpense(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	category := strings.TrimSpace(args[0])
	if category == "" {
		return fmt.Errorf("expense category cannot be empty")
	}
	// Accept the named categories case-insensitively so the day-close
	// aggregation picks them up.
	for _, named := range model.NamedExpenseCategories {
		if strings.EqualFold(category, named) {
			category = named
			break
		}
	}

	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil || amount <= 0 {
		return fmt.Errorf("amount must be a positive number, got %q", args[1])
	}

	description, _ := cmd.Flags().GetString("description")

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
	expense, err := eng.RecordExpense(ctx, category, amount, description)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s expense of %s", expense.Category, report.Money(expense.Amount)))) //nolint:forbidigo // User-facing output

	return nil
}
