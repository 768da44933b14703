package model

import "time"

// Service identifies a billable print-shop offering.
type Service string

// The fixed service catalog.
const (
	ServicePhotocopy  Service = "Photocopy"
	ServicePrinting   Service = "Printing"
	ServiceScanning   Service = "Scanning"
	ServiceLamination Service = "Lamination"
	ServiceFile       Service = "File"
	ServiceEnvelope   Service = "Envelope"
)

// Services lists every offering in display order.
var Services = []Service{
	ServicePhotocopy,
	ServicePrinting,
	ServiceScanning,
	ServiceLamination,
	ServiceFile,
	ServiceEnvelope,
}

// Valid reports whether s names a known service.
func (s Service) Valid() bool {
	for _, known := range Services {
		if s == known {
			return true
		}
	}
	return false
}

// DateLayout is the layout used for transaction dates and daily record keys.
const DateLayout = "2006-01-02"

// DateKey formats t as a daily record key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Transaction represents a single immutable sale. Rows are never updated or
// deleted once written.
type Transaction struct {
	Timestamp  time.Time
	Date       string
	Service    Service
	CreatedBy  string
	ID         int64
	Quantity   int
	PapersUsed int
	Amount     float64
}
