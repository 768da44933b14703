package model

import "testing"

func TestUnitSheets(t *testing.T) {
	tests := []struct {
		name     string
		unit     Unit
		quantity int
		want     int
	}{
		{name: "one rim", unit: UnitRim, quantity: 1, want: 500},
		{name: "three rims", unit: UnitRim, quantity: 3, want: 1500},
		{name: "one box", unit: UnitBox, quantity: 1, want: 2500},
		{name: "two boxes", unit: UnitBox, quantity: 2, want: 5000},
		{name: "loose sheets", unit: UnitSheet, quantity: 42, want: 42},
		{name: "zero quantity", unit: UnitBox, quantity: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.unit.Sheets(tt.quantity); got != tt.want {
				t.Errorf("Sheets(%d) = %d, want %d", tt.quantity, got, tt.want)
			}
		})
	}
}

func TestBreakdownPaper(t *testing.T) {
	tests := []struct {
		name        string
		totalSheets int
		wantBoxes   int
		wantRims    int
		wantSheets  int
	}{
		{name: "empty", totalSheets: 0},
		{name: "loose sheets only", totalSheets: 499, wantSheets: 499},
		{name: "exactly one rim", totalSheets: 500, wantRims: 1},
		{name: "exactly one box", totalSheets: 2500, wantBoxes: 1},
		{name: "mixed", totalSheets: 3275, wantBoxes: 1, wantRims: 1, wantSheets: 275},
		{name: "many boxes", totalSheets: 12675, wantBoxes: 5, wantRims: 0, wantSheets: 175},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BreakdownPaper(tt.totalSheets)
			if got.Boxes != tt.wantBoxes || got.Rims != tt.wantRims || got.Sheets != tt.wantSheets {
				t.Errorf("BreakdownPaper(%d) = %+v, want boxes=%d rims=%d sheets=%d",
					tt.totalSheets, got, tt.wantBoxes, tt.wantRims, tt.wantSheets)
			}
			if got.TotalSheets != tt.totalSheets {
				t.Errorf("TotalSheets = %d, want %d", got.TotalSheets, tt.totalSheets)
			}
		})
	}
}

// The breakdown must always recompose to the stored sheet count.
func TestBreakdownPaperIdentity(t *testing.T) {
	for _, total := range []int{0, 1, 499, 500, 501, 2499, 2500, 2501, 3275, 99999} {
		b := BreakdownPaper(total)
		recomposed := b.Boxes*SheetsPerBox + b.Rims*SheetsPerRim + b.Sheets
		if recomposed != total {
			t.Errorf("Breakdown of %d recomposes to %d", total, recomposed)
		}
	}
}
