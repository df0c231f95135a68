package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pharmadesk/domain"
	"pharmadesk/internal/pharmacy"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store   *pharmacy.Store
	log     *zap.Logger
	metrics http.Handler
}

// New constructs a Handler. A nil metrics handler leaves /metrics unmounted.
func New(store *pharmacy.Store, log *zap.Logger, metrics http.Handler) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, log: log, metrics: metrics}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics)
	}

	r.Get("/dashboard", h.dashboard)

	r.Route("/medicines", func(r chi.Router) {
		r.Get("/", h.listMedicines)
		r.Post("/", h.saveMedicine)
		r.Get("/filtered", h.filteredMedicines)
		r.Put("/filter", h.setFilter)
		r.Post("/draft", h.newDraft)
		r.Get("/{batch}/draft", h.editDraft)
		r.Delete("/{batch}", h.deleteMedicine)
	})

	r.Route("/bill", func(r chi.Router) {
		r.Get("/", h.bill)
		r.Post("/items", h.addToBill)
		r.Post("/complete", h.completeSale)
		r.Delete("/", h.clearBill)
	})

	r.Route("/suppliers", func(r chi.Router) {
		r.Get("/", h.listSuppliers)
		r.Post("/", h.addSupplier)
	})

	r.Route("/prescriptions", func(r chi.Router) {
		r.Get("/", h.listPrescriptions)
		r.Post("/", h.addPrescription)
	})

	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Dashboard

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Dashboard())
}

// Medicine handlers

type medicineRequest struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	BatchNumber   string `json:"batch_number"`
	ExpiryDate    string `json:"expiry_date"`
	StockQuantity int    `json:"stock_quantity"`
	ReorderLevel  int    `json:"reorder_level"`
	UnitPrice     string `json:"unit_price"`
}

func (req *medicineRequest) toDomain() (*domain.Medicine, error) {
	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return nil, errors.New("expiry_date must be in YYYY-MM-DD format")
	}
	price, err := decimal.NewFromString(req.UnitPrice)
	if err != nil {
		return nil, errors.New("unit_price must be a decimal number")
	}
	return &domain.Medicine{
		Name:          req.Name,
		Category:      req.Category,
		BatchNumber:   req.BatchNumber,
		ExpiryDate:    expiry,
		StockQuantity: req.StockQuantity,
		ReorderLevel:  req.ReorderLevel,
		UnitPrice:     price,
	}, nil
}

func (h *Handler) listMedicines(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Medicines())
}

func (h *Handler) filteredMedicines(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.FilteredMedicines())
}

func (h *Handler) setFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.store.SetInventoryFilter(req.Query)
	respondJSON(w, http.StatusOK, h.store.FilteredMedicines())
}

func (h *Handler) newDraft(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.NewDraft())
}

func (h *Handler) editDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.store.DraftFor(chi.URLParam(r, "batch"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

func (h *Handler) saveMedicine(w http.ResponseWriter, r *http.Request) {
	var req medicineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	draft, err := req.toDomain()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.store.SaveMedicine(draft); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}

func (h *Handler) deleteMedicine(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteMedicine(chi.URLParam(r, "batch")); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Bill handlers

type billItemResponse struct {
	domain.BillItem
	LineTotal decimal.Decimal `json:"line_total"`
}

type billResponse struct {
	Items    []billItemResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Tax      decimal.Decimal    `json:"tax"`
	Total    decimal.Decimal    `json:"total"`
}

func (h *Handler) bill(w http.ResponseWriter, r *http.Request) {
	items := h.store.BillItems()
	totals := h.store.BillTotals()
	resp := billResponse{
		Items:    make([]billItemResponse, len(items)),
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
	}
	for i, it := range items {
		resp.Items[i] = billItemResponse{BillItem: it, LineTotal: it.LineTotal()}
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) addToBill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BatchNumber string `json:"batch_number"`
		Quantity    int    `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.store.AddToBill(req.BatchNumber, req.Quantity); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

func (h *Handler) completeSale(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName string `json:"customer_name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	receipt, err := h.store.CompleteSale(req.CustomerName)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) clearBill(w http.ResponseWriter, r *http.Request) {
	h.store.ClearBill()
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// Supplier handlers

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Suppliers())
}

func (h *Handler) addSupplier(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.store.AddSupplier(req.Name, req.Phone, req.Email); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// Prescription handlers

func (h *Handler) listPrescriptions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Prescriptions())
}

func (h *Handler) addPrescription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PatientName string `json:"patient_name"`
		DoctorName  string `json:"doctor_name"`
		BatchNumber string `json:"batch_number"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.store.AddPrescription(req.PatientName, req.DoctorName, req.BatchNumber); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// Helpers

func respondDomainError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	var (
		validation *domain.ValidationError
		selection  *domain.SelectionError
		stock      *domain.StockError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &selection):
		return http.StatusNotFound
	case errors.As(err, &stock):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyBill):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
