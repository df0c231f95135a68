package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillItem is one line of the current, uncommitted sale. It snapshots
// the medicine name and unit price at the time it was added; later
// edits to the medicine do not change it. Items are immutable once
// added and are destroyed in bulk when the bill is completed or
// cleared.
type BillItem struct {
	ID           uuid.UUID       `json:"id"`
	MedicineName string          `json:"medicine_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// LineTotal is quantity times unit price, computed on read.
func (b BillItem) LineTotal() decimal.Decimal {
	return b.UnitPrice.Mul(decimal.NewFromInt(int64(b.Quantity)))
}

// BillTotals carries the derived amounts for the current bill.
type BillTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Receipt is returned when a sale completes.
type Receipt struct {
	CustomerName string          `json:"customer_name"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	IssuedAt     time.Time       `json:"issued_at"`
}
