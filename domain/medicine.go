package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine is one inventory lot. The batch number is the natural
// identity: saves matching an existing batch number (case-insensitive)
// update that medicine in place instead of adding a duplicate.
type Medicine struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	BatchNumber   string          `json:"batch_number"`
	ExpiryDate    time.Time       `json:"expiry_date"`
	StockQuantity int             `json:"stock_quantity"`
	ReorderLevel  int             `json:"reorder_level"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

// Clone returns an independent copy. Edits to the clone never reach
// the stored medicine until it is committed through a save.
func (m *Medicine) Clone() *Medicine {
	c := *m
	return &c
}

// CopyFrom overwrites m's fields with other's while keeping m's
// identity, so references held elsewhere keep seeing the same object.
func (m *Medicine) CopyFrom(other *Medicine) {
	m.Name = other.Name
	m.Category = other.Category
	m.BatchNumber = other.BatchNumber
	m.ExpiryDate = other.ExpiryDate
	m.StockQuantity = other.StockQuantity
	m.ReorderLevel = other.ReorderLevel
	m.UnitPrice = other.UnitPrice
}

// LowStock reports whether the lot is at or below its reorder level.
func (m *Medicine) LowStock() bool {
	return m.StockQuantity <= m.ReorderLevel
}

// ExpiringBy reports whether the lot expires on or before cutoff.
func (m *Medicine) ExpiringBy(cutoff time.Time) bool {
	return !m.ExpiryDate.After(cutoff)
}
