package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyBill rejects completing a sale with no line items.
var ErrEmptyBill = errors.New("bill has no items")

// ValidationError reports a missing or invalid input field. Validation
// runs strictly before any mutation, so a rejected command leaves the
// store untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// SelectionError reports an operation that referenced a medicine not
// present in the inventory.
type SelectionError struct {
	BatchNumber string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("no medicine with batch number %q", e.BatchNumber)
}

// StockError reports a requested quantity exceeding available stock.
type StockError struct {
	MedicineName string
	Requested    int
	Available    int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.MedicineName, e.Requested, e.Available)
}
