package pharmacy

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pharmadesk/domain"
)

const (
	autoBatchNumber     = "AUTO"
	defaultReorderLevel = 10
)

// NewDraft returns a fresh working copy for the medicine form: empty
// name, batch number "AUTO", expiry twelve months out.
func (s *Store) NewDraft() *domain.Medicine {
	return &domain.Medicine{
		BatchNumber:  autoBatchNumber,
		ExpiryDate:   s.clock.Now().AddDate(0, 12, 0),
		ReorderLevel: defaultReorderLevel,
		UnitPrice:    decimal.Zero,
	}
}

// DraftFor returns an independent editing copy of the stored medicine
// with the given batch number. Edits to the draft reach the store only
// through SaveMedicine.
func (s *Store) DraftFor(batch string) (*domain.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m := s.findLocked(batch)
	if m == nil {
		return nil, &domain.SelectionError{BatchNumber: batch}
	}
	return m.Clone(), nil
}

// SaveMedicine upserts the draft. A case-insensitive batch number
// match updates the stored medicine in place, preserving its identity;
// otherwise an independent copy of the draft is appended.
func (s *Store) SaveMedicine(draft *domain.Medicine) error {
	if strings.TrimSpace(draft.Name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "is required"}
	}
	if draft.StockQuantity < 0 {
		return &domain.ValidationError{Field: "stock_quantity", Reason: "must not be negative"}
	}
	if draft.UnitPrice.IsNegative() {
		return &domain.ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}

	s.mu.Lock()
	if existing := s.findLocked(draft.BatchNumber); existing != nil {
		existing.CopyFrom(draft)
	} else {
		s.medicines = append(s.medicines, draft.Clone())
	}
	s.refilterLocked()
	s.mu.Unlock()

	s.log.Debug("medicine saved", zap.String("batch", draft.BatchNumber), zap.String("name", draft.Name))
	s.notify(Change{Op: "save_medicine", Fields: []Field{
		FieldMedicines, FieldFilteredMedicines, FieldLowStockCount, FieldExpiringSoonCount,
	}})
	return nil
}

// DeleteMedicine removes the medicine with the given batch number. An
// unknown batch number is rejected and leaves the collection intact.
func (s *Store) DeleteMedicine(batch string) error {
	s.mu.Lock()
	m := s.findLocked(batch)
	if m == nil {
		s.mu.Unlock()
		return &domain.SelectionError{BatchNumber: batch}
	}
	for i, cur := range s.medicines {
		if cur == m {
			s.medicines = append(s.medicines[:i], s.medicines[i+1:]...)
			break
		}
	}
	s.refilterLocked()
	s.mu.Unlock()

	s.log.Debug("medicine deleted", zap.String("batch", batch))
	s.notify(Change{Op: "delete_medicine", Fields: []Field{
		FieldMedicines, FieldFilteredMedicines, FieldLowStockCount, FieldExpiringSoonCount,
	}})
	return nil
}

// SetInventoryFilter updates the filter text and recomputes the
// filtered projection. It never fails.
func (s *Store) SetInventoryFilter(text string) {
	s.mu.Lock()
	s.filterText = text
	s.refilterLocked()
	s.mu.Unlock()

	s.notify(Change{Op: "set_inventory_filter", Fields: []Field{FieldFilteredMedicines}})
}

// AddToBill appends a snapshot line for the medicine and decrements
// its stock. The stock check happens before any mutation, so a
// rejected call leaves stock, bill and today's sales unchanged.
func (s *Store) AddToBill(batch string, quantity int) error {
	if quantity <= 0 {
		return &domain.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}

	s.mu.Lock()
	m := s.findLocked(batch)
	if m == nil {
		s.mu.Unlock()
		return &domain.SelectionError{BatchNumber: batch}
	}
	if quantity > m.StockQuantity {
		s.mu.Unlock()
		return &domain.StockError{MedicineName: m.Name, Requested: quantity, Available: m.StockQuantity}
	}
	s.billItems = append(s.billItems, domain.BillItem{
		ID:           uuid.New(),
		MedicineName: m.Name,
		Quantity:     quantity,
		UnitPrice:    m.UnitPrice,
	})
	m.StockQuantity -= quantity
	s.mu.Unlock()

	s.log.Debug("added to bill", zap.String("batch", batch), zap.Int("quantity", quantity))
	s.notify(Change{Op: "add_to_bill", Fields: []Field{
		FieldBillItems, FieldBillTotals, FieldMedicines, FieldFilteredMedicines, FieldLowStockCount,
	}})
	return nil
}

// CompleteSale folds the bill total into today's sales and clears the
// bill. Completing an empty bill is rejected.
func (s *Store) CompleteSale(customerName string) (domain.Receipt, error) {
	s.mu.Lock()
	if len(s.billItems) == 0 {
		s.mu.Unlock()
		return domain.Receipt{}, domain.ErrEmptyBill
	}
	totals := billTotals(s.billItems)
	now := s.clock.Now()
	if day := dayOf(now); day != s.salesDay {
		s.todaySales = decimal.Zero
		s.salesDay = day
	}
	s.todaySales = s.todaySales.Add(totals.Total)
	s.billItems = nil
	s.mu.Unlock()

	s.log.Info("sale completed",
		zap.String("customer", customerName),
		zap.String("total", totals.Total.StringFixed(2)),
	)
	s.notify(Change{Op: "complete_sale", Fields: []Field{
		FieldBillItems, FieldBillTotals, FieldTodaySales,
	}})
	return domain.Receipt{
		CustomerName: customerName,
		Subtotal:     totals.Subtotal,
		Tax:          totals.Tax,
		Total:        totals.Total,
		IssuedAt:     now,
	}, nil
}

// ClearBill discards the current bill without selling. Stock already
// moved to the bill is not restored.
func (s *Store) ClearBill() {
	s.mu.Lock()
	s.billItems = nil
	s.mu.Unlock()

	s.notify(Change{Op: "clear_bill", Fields: []Field{FieldBillItems, FieldBillTotals}})
}

// AddSupplier appends a directory entry.
func (s *Store) AddSupplier(name, phone, email string) error {
	if strings.TrimSpace(name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "is required"}
	}

	s.mu.Lock()
	s.suppliers = append(s.suppliers, domain.Supplier{Name: name, Phone: phone, Email: email})
	s.mu.Unlock()

	s.notify(Change{Op: "add_supplier", Fields: []Field{FieldSuppliers}})
	return nil
}

// AddPrescription queues a prescription snapshotting the medicine name
// and the current time.
func (s *Store) AddPrescription(patient, doctor, batch string) error {
	if strings.TrimSpace(patient) == "" {
		return &domain.ValidationError{Field: "patient_name", Reason: "is required"}
	}

	s.mu.Lock()
	m := s.findLocked(batch)
	if m == nil {
		s.mu.Unlock()
		return &domain.SelectionError{BatchNumber: batch}
	}
	s.prescriptions = append(s.prescriptions, domain.Prescription{
		ID:           uuid.New(),
		PatientName:  patient,
		DoctorName:   doctor,
		MedicineName: m.Name,
		CreatedAt:    s.clock.Now(),
	})
	s.mu.Unlock()

	s.notify(Change{Op: "add_prescription", Fields: []Field{FieldPrescriptions}})
	return nil
}
