package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no_show"
)

// ActiveAppointmentStatuses are the statuses that occupy a doctor's calendar.
// Completed, cancelled and no-show appointments never block a time slot.
var ActiveAppointmentStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusConfirmed,
	AppointmentStatusInProgress,
}

// AppointmentType represents the kind of visit
type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "consultation"
	AppointmentTypeFollowUp     AppointmentType = "follow_up"
	AppointmentTypeEmergency    AppointmentType = "emergency"
	AppointmentTypeProcedure    AppointmentType = "procedure"
	AppointmentTypeCheckup      AppointmentType = "checkup"
)

// PaymentStatus represents billing state for an appointment
type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusRefunded      PaymentStatus = "refunded"
)

// Appointment represents a booked visit between a patient and a doctor
type Appointment struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentNumber string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"appointment_number"`

	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`

	AppointmentDate time.Time         `gorm:"not null;index" json:"appointment_date"`
	DurationMinutes int               `gorm:"not null;default:30" json:"duration_minutes"`
	Type            AppointmentType   `gorm:"type:appointment_type;not null;index" json:"type"`
	Status          AppointmentStatus `gorm:"type:appointment_status;not null;default:'scheduled';index" json:"status"`

	ChiefComplaint string `gorm:"type:varchar(500)" json:"chief_complaint,omitempty"`
	Notes          string `gorm:"type:text" json:"notes,omitempty"`

	// Status-transition timestamps
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	CheckedInAt        *time.Time `json:"checked_in_at,omitempty"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `gorm:"type:varchar(500)" json:"cancellation_reason,omitempty"`
	CancelledBy        *uuid.UUID `gorm:"type:uuid" json:"cancelled_by,omitempty"`

	// Billing
	EstimatedCost decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"estimated_cost,omitempty"`
	ActualCost    decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"actual_cost,omitempty"`
	PaymentStatus PaymentStatus       `gorm:"type:payment_status;not null;default:'pending'" json:"payment_status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Start returns the start instant of the occupied slot
func (a *Appointment) Start() time.Time {
	return a.AppointmentDate
}

// End returns the end instant of the occupied slot. The interval is
// half-open: the end instant itself is free, so back-to-back
// appointments do not collide.
func (a *Appointment) End() time.Time {
	return a.AppointmentDate.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsActive checks whether the appointment occupies calendar time
func (a *Appointment) IsActive() bool {
	switch a.Status {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusInProgress:
		return true
	}
	return false
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// ApplyStatus transitions the appointment to a new status and stamps
// the matching transition timestamp.
func (a *Appointment) ApplyStatus(status AppointmentStatus, now time.Time) {
	a.Status = status
	switch status {
	case AppointmentStatusConfirmed:
		a.ConfirmedAt = &now
	case AppointmentStatusInProgress:
		a.StartedAt = &now
	case AppointmentStatusCompleted:
		a.CompletedAt = &now
	case AppointmentStatusCancelled:
		a.CancelledAt = &now
	}
}

// AppointmentFilter is a domain-level filter for querying appointments
type AppointmentFilter struct {
	Status    AppointmentStatus
	Type      AppointmentType
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	DateFrom  time.Time
	DateTo    time.Time
	Page      int
	Limit     int
}
