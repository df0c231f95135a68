package pharmacy

import (
	"time"

	"github.com/shopspring/decimal"

	"pharmadesk/domain"
)

// expiryWindowDays is the look-ahead for the expiring-soon count.
const expiryWindowDays = 30

// taxRate is the fixed sales tax applied to the bill subtotal.
var taxRate = decimal.RequireFromString("0.05")

// Dashboard carries the derived metrics shown on the main screen.
type Dashboard struct {
	TodaySales        decimal.Decimal `json:"today_sales"`
	LowStockCount     int             `json:"low_stock_count"`
	ExpiringSoonCount int             `json:"expiring_soon_count"`
}

// Dashboard recomputes the dashboard metrics from current state.
func (s *Store) Dashboard() Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.clock.Now()
	return Dashboard{
		TodaySales:        s.todaySalesLocked(now),
		LowStockCount:     lowStockCount(s.medicines),
		ExpiringSoonCount: expiringSoonCount(s.medicines, now),
	}
}

// BillTotals recomputes subtotal, tax and total over the current bill.
func (s *Store) BillTotals() domain.BillTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return billTotals(s.billItems)
}

// todaySalesLocked reports the accumulator for the current calendar
// day. An accumulator from an earlier day reads as zero; the actual
// reset happens on the next completed sale.
func (s *Store) todaySalesLocked(now time.Time) decimal.Decimal {
	if s.salesDay != dayOf(now) {
		return decimal.Zero
	}
	return s.todaySales
}

func lowStockCount(ms []*domain.Medicine) int {
	n := 0
	for _, m := range ms {
		if m.LowStock() {
			n++
		}
	}
	return n
}

func expiringSoonCount(ms []*domain.Medicine, now time.Time) int {
	cutoff := now.AddDate(0, 0, expiryWindowDays)
	n := 0
	for _, m := range ms {
		if m.ExpiringBy(cutoff) {
			n++
		}
	}
	return n
}

func billTotals(items []domain.BillItem) domain.BillTotals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	tax := subtotal.Mul(taxRate).Round(2)
	return domain.BillTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

func dayOf(t time.Time) string {
	return t.Format("2006-01-02")
}
