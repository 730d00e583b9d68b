package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateTriageRequest struct {
	PatientID      uuid.UUID  `json:"patient_id" validate:"required"`
	AppointmentID  *uuid.UUID `json:"appointment_id,omitempty"`
	PriorityLevel  string     `json:"priority_level" validate:"required,oneof=critical urgent semi_urgent non_urgent"`
	PriorityScore  int        `json:"priority_score" validate:"required,gte=1,lte=10"`
	ChiefComplaint string     `json:"chief_complaint" validate:"required,max=500"`

	BloodPressure    string `json:"blood_pressure,omitempty" validate:"omitempty,max=20"`
	Temperature      string `json:"temperature,omitempty"` // decimal string, Celsius
	HeartRate        *int   `json:"heart_rate,omitempty" validate:"omitempty,gte=0,lte=300"`
	RespiratoryRate  *int   `json:"respiratory_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
	OxygenSaturation *int   `json:"oxygen_saturation,omitempty" validate:"omitempty,gte=0,lte=100"`

	PainScale    *int   `json:"pain_scale,omitempty" validate:"omitempty,gte=0,lte=10"`
	PainLocation string `json:"pain_location,omitempty" validate:"omitempty,max=200"`

	AssessmentNotes            string `json:"assessment_notes,omitempty"`
	RequiresImmediateAttention bool   `json:"requires_immediate_attention"`
}

type UpdateTriageStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed escalated"`
}

// Response DTOs

type TriageResponse struct {
	ID             uuid.UUID  `json:"id"`
	PatientID      uuid.UUID  `json:"patient_id"`
	AppointmentID  *uuid.UUID `json:"appointment_id,omitempty"`
	AssessedBy     uuid.UUID  `json:"assessed_by"`
	AssessmentDate time.Time  `json:"assessment_date"`
	PriorityLevel  string     `json:"priority_level"`
	PriorityScore  int        `json:"priority_score"`
	ChiefComplaint string     `json:"chief_complaint"`

	BloodPressure    string `json:"blood_pressure,omitempty"`
	Temperature      string `json:"temperature,omitempty"`
	HeartRate        *int   `json:"heart_rate,omitempty"`
	RespiratoryRate  *int   `json:"respiratory_rate,omitempty"`
	OxygenSaturation *int   `json:"oxygen_saturation,omitempty"`

	PainScale    *int   `json:"pain_scale,omitempty"`
	PainLocation string `json:"pain_location,omitempty"`

	AssessmentNotes            string `json:"assessment_notes,omitempty"`
	RequiresImmediateAttention bool   `json:"requires_immediate_attention"`

	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Patient *PatientResponse `json:"patient,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TriageListResponse struct {
	Assessments []TriageResponse `json:"assessments"`
	Total       int              `json:"total"`
}
