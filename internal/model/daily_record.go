package model

// DailyRecord is the end-of-day snapshot for one date. There is at most one
// row per date; re-running day close recomputes it from source transactions
// and expenses and replaces the prior row.
type DailyRecord struct {
	Date          string
	DailyIncome   float64
	Mottakase     float64
	Pampiri       float64
	InkCartridge  float64
	Drawings      float64
	TotalExpenses float64
	Balance       float64
	PapersUsed    int
}
