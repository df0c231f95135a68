// Package observability exports store-derived metrics to Prometheus.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pharmadesk/internal/pharmacy"
)

// Recorder subscribes to the store's change bus and refreshes the
// exported gauges whenever a mutation invalidates them.
type Recorder struct {
	store *pharmacy.Store

	todaySales     prometheus.Gauge
	lowStock       prometheus.Gauge
	expiringSoon   prometheus.Gauge
	billLines      prometheus.Gauge
	salesCompleted prometheus.Counter
}

// NewRecorder registers the collectors with reg and starts observing
// the store.
func NewRecorder(reg prometheus.Registerer, store *pharmacy.Store) *Recorder {
	r := &Recorder{
		store: store,
		todaySales: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "pharmadesk_today_sales",
			Help: "Sales revenue accumulated for the current calendar day.",
		}),
		lowStock: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "pharmadesk_low_stock_medicines",
			Help: "Medicines at or below their reorder level.",
		}),
		expiringSoon: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "pharmadesk_expiring_soon_medicines",
			Help: "Medicines expiring within the 30-day window.",
		}),
		billLines: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "pharmadesk_bill_line_items",
			Help: "Line items on the current, uncommitted bill.",
		}),
		salesCompleted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "pharmadesk_sales_completed_total",
			Help: "Completed sales since startup.",
		}),
	}
	store.Subscribe(r.onChange)
	r.refresh()
	return r
}

func (r *Recorder) onChange(c pharmacy.Change) {
	if c.Contains(pharmacy.FieldTodaySales) {
		r.salesCompleted.Inc()
	}
	r.refresh()
}

func (r *Recorder) refresh() {
	d := r.store.Dashboard()
	r.todaySales.Set(d.TodaySales.InexactFloat64())
	r.lowStock.Set(float64(d.LowStockCount))
	r.expiringSoon.Set(float64(d.ExpiringSoonCount))
	r.billLines.Set(float64(len(r.store.BillItems())))
}
