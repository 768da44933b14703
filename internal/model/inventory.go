package model

import "time"

// Item identifies a consumable tracked by the inventory ledger.
type Item string

// Tracked consumables.
const (
	ItemPaper    Item = "paper"
	ItemFile     Item = "file"
	ItemEnvelope Item = "envelope"
)

// Items lists every tracked consumable.
var Items = []Item{ItemPaper, ItemFile, ItemEnvelope}

// Valid reports whether i names a tracked consumable.
func (i Item) Valid() bool {
	for _, known := range Items {
		if i == known {
			return true
		}
	}
	return false
}

// Unit expresses how a paper quantity is denominated when adding stock.
// Files and envelopes are always counted in single units.
type Unit string

// Paper stock units.
const (
	UnitBox   Unit = "box"
	UnitRim   Unit = "rim"
	UnitSheet Unit = "sheet"
)

// Paper conversion constants. Sheets are the atomic unit; the stored
// inventory quantity for paper is always an absolute sheet count.
const (
	SheetsPerRim = 500
	RimsPerBox   = 5
	SheetsPerBox = SheetsPerRim * RimsPerBox
)

// Sheets converts a quantity denominated in u to raw sheets. Unknown units
// are treated as raw sheets, which matches how absolute sheet additions are
// entered.
func (u Unit) Sheets(quantity int) int {
	switch u {
	case UnitBox:
		return quantity * SheetsPerBox
	case UnitRim:
		return quantity * SheetsPerRim
	default:
		return quantity
	}
}

// PaperBreakdown is the derived box/rim/sheet view of a stored sheet count.
// Boxes*SheetsPerBox + Rims*SheetsPerRim + Sheets always equals TotalSheets.
type PaperBreakdown struct {
	Boxes       int
	Rims        int
	Sheets      int
	TotalSheets int
}

// BreakdownPaper decomposes an absolute sheet count into boxes, rims and
// loose sheets by successive integer division.
func BreakdownPaper(totalSheets int) PaperBreakdown {
	boxes := totalSheets / SheetsPerBox
	remaining := totalSheets % SheetsPerBox
	return PaperBreakdown{
		Boxes:       boxes,
		Rims:        remaining / SheetsPerRim,
		Sheets:      remaining % SheetsPerRim,
		TotalSheets: totalSheets,
	}
}

// StockLevels is a full inventory snapshot.
type StockLevels struct {
	Paper     PaperBreakdown
	Files     int
	Envelopes int
}

// PaperAddition is one paper_stock_log audit row, recorded whenever paper
// stock is added.
type PaperAddition struct {
	Timestamp     time.Time
	Date          string
	CreatedBy     string
	ID            int64
	QuantityAdded int
}
