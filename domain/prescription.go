package domain

import (
	"time"

	"github.com/google/uuid"
)

// Prescription is an append-only queue entry. The medicine name is a
// snapshot taken when the prescription was recorded.
type Prescription struct {
	ID           uuid.UUID `json:"id"`
	PatientName  string    `json:"patient_name"`
	DoctorName   string    `json:"doctor_name"`
	MedicineName string    `json:"medicine_name"`
	CreatedAt    time.Time `json:"created_at"`
}
