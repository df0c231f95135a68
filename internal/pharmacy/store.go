// Package pharmacy holds the live application state: the ordered
// collections, the derived metrics over them, and the validated
// mutation commands that change them. Every committed mutation
// publishes a change notification naming the derived fields that
// became stale, so the presentation layer and the metrics recorder
// know what to refresh.
package pharmacy

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pharmadesk/domain"
	"pharmadesk/internal/clock"
)

// Field names a derived value or collection a mutation can invalidate.
type Field string

const (
	FieldMedicines         Field = "medicines"
	FieldFilteredMedicines Field = "filtered_medicines"
	FieldBillItems         Field = "bill_items"
	FieldBillTotals        Field = "bill_totals"
	FieldSuppliers         Field = "suppliers"
	FieldPrescriptions     Field = "prescriptions"
	FieldTodaySales        Field = "today_sales"
	FieldLowStockCount     Field = "low_stock_count"
	FieldExpiringSoonCount Field = "expiring_soon_count"
)

// Change describes one committed mutation.
type Change struct {
	Op     string
	Fields []Field
}

// Contains reports whether the change invalidated f.
func (c Change) Contains(f Field) bool {
	for _, cur := range c.Fields {
		if cur == f {
			return true
		}
	}
	return false
}

// Observer receives change notifications. Observers run synchronously
// after the mutation commits and must not mutate the store.
type Observer func(Change)

// Store is the collections store. Mutations are serialized under a
// single writer lock; reads see the last committed state. The filtered
// medicines slice is a materialized projection of medicines and the
// current filter text, recomputed after every mutation that can affect
// it, never mutated independently.
type Store struct {
	mu    sync.RWMutex
	clock clock.Clock
	log   *zap.Logger

	medicines     []*domain.Medicine
	filterText    string
	filtered      []*domain.Medicine
	billItems     []domain.BillItem
	suppliers     []domain.Supplier
	prescriptions []domain.Prescription

	// Today's sales is scoped to the calendar day salesDay; it resets
	// lazily when the clock rolls past midnight.
	todaySales decimal.Decimal
	salesDay   string

	observers []Observer
}

// New builds an empty Store. A nil logger is replaced with a no-op.
func New(c clock.Clock, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		clock:      c,
		log:        log,
		todaySales: decimal.Zero,
	}
}

// Subscribe registers an observer for subsequent mutations.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// notify fans a change out to observers. Called after the writer lock
// is released so observers may read the store.
func (s *Store) notify(c Change) {
	s.mu.RLock()
	obs := make([]Observer, len(s.observers))
	copy(obs, s.observers)
	s.mu.RUnlock()
	for _, fn := range obs {
		fn(c)
	}
}

// findLocked resolves a batch number case-insensitively. Caller holds
// at least the read lock.
func (s *Store) findLocked(batch string) *domain.Medicine {
	for _, m := range s.medicines {
		if strings.EqualFold(m.BatchNumber, batch) {
			return m
		}
	}
	return nil
}

// refilterLocked recomputes the filtered projection: medicines whose
// name or category contains the filter text, case-insensitive. An
// empty filter yields the full list. Caller holds the writer lock.
func (s *Store) refilterLocked() {
	q := strings.ToLower(strings.TrimSpace(s.filterText))
	out := make([]*domain.Medicine, 0, len(s.medicines))
	for _, m := range s.medicines {
		if q == "" ||
			strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Category), q) {
			out = append(out, m)
		}
	}
	s.filtered = out
}

// Medicines returns a snapshot of the inventory in insertion order.
func (s *Store) Medicines() []domain.Medicine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMedicines(s.medicines)
}

// FilteredMedicines returns a snapshot of the current projection.
func (s *Store) FilteredMedicines() []domain.Medicine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMedicines(s.filtered)
}

// FilterText returns the current inventory filter.
func (s *Store) FilterText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterText
}

// BillItems returns a snapshot of the current, uncommitted sale.
func (s *Store) BillItems() []domain.BillItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BillItem, len(s.billItems))
	copy(out, s.billItems)
	return out
}

// Suppliers returns a snapshot of the supplier directory.
func (s *Store) Suppliers() []domain.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Supplier, len(s.suppliers))
	copy(out, s.suppliers)
	return out
}

// Prescriptions returns a snapshot of the prescription queue.
func (s *Store) Prescriptions() []domain.Prescription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Prescription, len(s.prescriptions))
	copy(out, s.prescriptions)
	return out
}

func copyMedicines(ms []*domain.Medicine) []domain.Medicine {
	out := make([]domain.Medicine, len(ms))
	for i, m := range ms {
		out[i] = *m
	}
	return out
}
