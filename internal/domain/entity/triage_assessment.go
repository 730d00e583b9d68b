package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriorityLevel represents triage urgency
type PriorityLevel string

const (
	PriorityCritical   PriorityLevel = "critical"
	PriorityUrgent     PriorityLevel = "urgent"
	PrioritySemiUrgent PriorityLevel = "semi_urgent"
	PriorityNonUrgent  PriorityLevel = "non_urgent"
)

// TriageStatus represents the state of a triage assessment
type TriageStatus string

const (
	TriageStatusPending    TriageStatus = "pending"
	TriageStatusInProgress TriageStatus = "in_progress"
	TriageStatusCompleted  TriageStatus = "completed"
	TriageStatusEscalated  TriageStatus = "escalated"
)

// TriageAssessment represents an intake assessment of a patient
type TriageAssessment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	AssessedBy    uuid.UUID  `gorm:"type:uuid;not null" json:"assessed_by"`

	AssessmentDate time.Time     `gorm:"not null;index" json:"assessment_date"`
	PriorityLevel  PriorityLevel `gorm:"type:priority_level;not null;index" json:"priority_level"`
	PriorityScore  int           `gorm:"not null;index" json:"priority_score"` // 1-10 scale
	ChiefComplaint string        `gorm:"type:varchar(500);not null" json:"chief_complaint"`

	// Vital signs
	BloodPressure    string              `gorm:"type:varchar(20)" json:"blood_pressure,omitempty"` // e.g. "120/80"
	Temperature      decimal.NullDecimal `gorm:"type:decimal(4,1)" json:"temperature,omitempty"`   // Celsius
	HeartRate        *int                `json:"heart_rate,omitempty"`                             // BPM
	RespiratoryRate  *int                `json:"respiratory_rate,omitempty"`
	OxygenSaturation *int                `json:"oxygen_saturation,omitempty"` // percentage

	// Pain assessment
	PainScale    *int   `json:"pain_scale,omitempty"` // 0-10 scale
	PainLocation string `gorm:"type:varchar(200)" json:"pain_location,omitempty"`

	AssessmentNotes            string `gorm:"type:text" json:"assessment_notes,omitempty"`
	RequiresImmediateAttention bool   `gorm:"default:false;index" json:"requires_immediate_attention"`

	Status      TriageStatus `gorm:"type:triage_status;not null;default:'pending';index" json:"status"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	CompletedBy *uuid.UUID   `gorm:"type:uuid" json:"completed_by,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient     Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Assessor    User         `gorm:"foreignKey:AssessedBy" json:"assessor,omitempty"`
}

func (TriageAssessment) TableName() string {
	return "triage_assessments"
}

// IsOpen checks whether the assessment still needs attention
func (t *TriageAssessment) IsOpen() bool {
	return t.Status == TriageStatusPending || t.Status == TriageStatusInProgress
}
