package entity

import (
	"time"

	"github.com/google/uuid"
)

// Gender values accepted for patient records
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

// PatientStatus represents a patient record status
type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
	PatientStatusDeceased PatientStatus = "deceased"
)

// Patient represents a registered patient
type Patient struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientNumber string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"patient_number"`

	// Personal information
	FirstName   string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string    `gorm:"type:varchar(100);not null" json:"last_name"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Gender      Gender    `gorm:"type:gender;not null" json:"gender"`
	Email       string    `gorm:"type:varchar(255);index" json:"email,omitempty"`
	Phone       string    `gorm:"type:varchar(20);not null" json:"phone"`

	// Emergency contact
	EmergencyContactName  string `gorm:"type:varchar(200)" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `gorm:"type:varchar(20)" json:"emergency_contact_phone,omitempty"`

	// Address
	AddressLine1 string `gorm:"type:varchar(200)" json:"address_line1,omitempty"`
	AddressLine2 string `gorm:"type:varchar(200)" json:"address_line2,omitempty"`
	City         string `gorm:"type:varchar(100)" json:"city,omitempty"`
	State        string `gorm:"type:varchar(100)" json:"state,omitempty"`
	PostalCode   string `gorm:"type:varchar(20)" json:"postal_code,omitempty"`
	Country      string `gorm:"type:varchar(100);default:'US'" json:"country,omitempty"`

	// Medical information
	BloodType         string `gorm:"type:varchar(10)" json:"blood_type,omitempty"`
	Allergies         string `gorm:"type:text" json:"allergies,omitempty"`
	MedicalConditions string `gorm:"type:text" json:"medical_conditions,omitempty"`
	Notes             string `gorm:"type:text" json:"notes,omitempty"`

	// Insurance information
	InsuranceProvider     string `gorm:"type:varchar(200)" json:"insurance_provider,omitempty"`
	InsurancePolicyNumber string `gorm:"type:varchar(100)" json:"insurance_policy_number,omitempty"`

	Status PatientStatus `gorm:"type:patient_status;not null;default:'active';index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// PatientFilter is a domain-level filter for querying patients.
// Used by the repository layer to avoid coupling with delivery DTOs.
type PatientFilter struct {
	Search string // Matches name, patient number, phone or email (ILIKE)
	Status PatientStatus
	Gender Gender
	Page   int
	Limit  int
}
