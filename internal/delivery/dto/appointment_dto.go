package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gte=15,lte=240"`
	Type            string    `json:"type" validate:"required,oneof=consultation follow_up emergency procedure checkup"`
	ChiefComplaint  string    `json:"chief_complaint,omitempty" validate:"omitempty,max=500"`
	Notes           string    `json:"notes,omitempty"`
	EstimatedCost   string    `json:"estimated_cost,omitempty"` // decimal string, e.g. "150.00"
}

type UpdateAppointmentRequest struct {
	AppointmentDate *time.Time `json:"appointment_date,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" validate:"omitempty,gte=15,lte=240"`
	Type            string     `json:"type,omitempty" validate:"omitempty,oneof=consultation follow_up emergency procedure checkup"`
	Status          string     `json:"status,omitempty" validate:"omitempty,oneof=scheduled confirmed in_progress completed cancelled no_show"`
	ChiefComplaint  string     `json:"chief_complaint,omitempty" validate:"omitempty,max=500"`
	Notes           string     `json:"notes,omitempty"`
	ActualCost      string     `json:"actual_cost,omitempty"`
	PaymentStatus   string     `json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid partially_paid refunded"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type AppointmentFilterRequest struct {
	Status    string `json:"status"`
	Type      string `json:"type"`
	DoctorID  string `json:"doctor_id"`
	PatientID string `json:"patient_id"`
	DateFrom  string `json:"date_from"` // YYYY-MM-DD
	DateTo    string `json:"date_to"`   // YYYY-MM-DD
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                uuid.UUID `json:"id"`
	AppointmentNumber string    `json:"appointment_number"`
	PatientID         uuid.UUID `json:"patient_id"`
	DoctorID          uuid.UUID `json:"doctor_id"`
	AppointmentDate   time.Time `json:"appointment_date"`
	DurationMinutes   int       `json:"duration_minutes"`
	Type              string    `json:"type"`
	Status            string    `json:"status"`
	ChiefComplaint    string    `json:"chief_complaint,omitempty"`
	Notes             string    `json:"notes,omitempty"`

	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`

	EstimatedCost string `json:"estimated_cost,omitempty"`
	ActualCost    string `json:"actual_cost,omitempty"`
	PaymentStatus string `json:"payment_status"`

	Patient *PatientResponse `json:"patient,omitempty"`
	Doctor  *UserResponse    `json:"doctor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
}

// AvailabilityResponse reports the outcome of a slot check. Conflicts
// and NextAvailable are populated only when the slot is taken.
type AvailabilityResponse struct {
	Available     bool                  `json:"available"`
	Conflicts     []AppointmentResponse `json:"conflicts,omitempty"`
	NextAvailable *time.Time            `json:"next_available,omitempty"`
}
