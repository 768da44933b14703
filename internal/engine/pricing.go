package engine

import (
	"fmt"

	"github.com/moses-ramoeletsi/copyshop/internal/common"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
)

// prices is the fixed per-unit price list. Amounts are derived from it at
// transaction time and stored on the row, so later price changes never
// rewrite history.
var prices = map[model.Service]float64{
	model.ServicePhotocopy:  2.00,
	model.ServicePrinting:   3.00,
	model.ServiceScanning:   4.00,
	model.ServiceLamination: 10.00,
	model.ServiceFile:       15.00,
	model.ServiceEnvelope:   3.00,
}

// PriceFor returns the fixed unit price for a service.
func PriceFor(svc model.Service) (float64, error) {
	price, ok := prices[svc]
	if !ok {
		return 0, fmt.Errorf("%w: %q", common.ErrUnknownService, svc)
	}
	return price, nil
}

// StockThresholds are the levels below which an item counts as low stock.
// Paper is measured in sheets.
var StockThresholds = map[model.Item]int{
	model.ItemPaper:    50,
	model.ItemFile:     20,
	model.ItemEnvelope: 20,
}
