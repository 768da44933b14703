package model

import "time"

// Named expense categories. Each of these has a dedicated column in the
// daily record; any other category is free-form and contributes only to the
// day's expense total.
const (
	ExpenseMottakase = "Mottakase"
	ExpensePampiri   = "Pampiri"
	ExpenseInk       = "INK/Cardrige"
	ExpenseDrawings  = "Drawings"
)

// NamedExpenseCategories lists the categories with dedicated daily record
// columns, in display order.
var NamedExpenseCategories = []string{
	ExpenseMottakase,
	ExpensePampiri,
	ExpenseInk,
	ExpenseDrawings,
}

// Expense represents a single immutable expense entry.
type Expense struct {
	Timestamp   time.Time
	Date        string
	Category    string
	Description string
	CreatedBy   string
	ID          int64
	Amount      float64
}
