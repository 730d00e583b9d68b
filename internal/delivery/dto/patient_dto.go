package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	DateOfBirth string `json:"date_of_birth" validate:"required"` // YYYY-MM-DD
	Gender      string `json:"gender" validate:"required,oneof=male female other prefer_not_to_say"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"required,max=20"`

	EmergencyContactName  string `json:"emergency_contact_name,omitempty" validate:"omitempty,max=200"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty" validate:"omitempty,max=20"`

	AddressLine1 string `json:"address_line1,omitempty" validate:"omitempty,max=200"`
	AddressLine2 string `json:"address_line2,omitempty" validate:"omitempty,max=200"`
	City         string `json:"city,omitempty" validate:"omitempty,max=100"`
	State        string `json:"state,omitempty" validate:"omitempty,max=100"`
	PostalCode   string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
	Country      string `json:"country,omitempty" validate:"omitempty,max=100"`

	BloodType         string `json:"blood_type,omitempty" validate:"omitempty,max=10"`
	Allergies         string `json:"allergies,omitempty"`
	MedicalConditions string `json:"medical_conditions,omitempty"`
	Notes             string `json:"notes,omitempty"`

	InsuranceProvider     string `json:"insurance_provider,omitempty" validate:"omitempty,max=200"`
	InsurancePolicyNumber string `json:"insurance_policy_number,omitempty" validate:"omitempty,max=100"`
}

type UpdatePatientRequest struct {
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=20"`

	EmergencyContactName  string `json:"emergency_contact_name,omitempty" validate:"omitempty,max=200"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty" validate:"omitempty,max=20"`

	AddressLine1 string `json:"address_line1,omitempty" validate:"omitempty,max=200"`
	AddressLine2 string `json:"address_line2,omitempty" validate:"omitempty,max=200"`
	City         string `json:"city,omitempty" validate:"omitempty,max=100"`
	State        string `json:"state,omitempty" validate:"omitempty,max=100"`
	PostalCode   string `json:"postal_code,omitempty" validate:"omitempty,max=20"`

	BloodType         string `json:"blood_type,omitempty" validate:"omitempty,max=10"`
	Allergies         string `json:"allergies,omitempty"`
	MedicalConditions string `json:"medical_conditions,omitempty"`
	Notes             string `json:"notes,omitempty"`

	InsuranceProvider     string `json:"insurance_provider,omitempty" validate:"omitempty,max=200"`
	InsurancePolicyNumber string `json:"insurance_policy_number,omitempty" validate:"omitempty,max=100"`

	Status string `json:"status,omitempty" validate:"omitempty,oneof=active inactive deceased"`
}

// Response DTOs

type PatientResponse struct {
	ID            uuid.UUID `json:"id"`
	PatientNumber string    `json:"patient_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	DateOfBirth   string    `json:"date_of_birth"`
	Gender        string    `json:"gender"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone"`

	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty"`

	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`

	BloodType         string `json:"blood_type,omitempty"`
	Allergies         string `json:"allergies,omitempty"`
	MedicalConditions string `json:"medical_conditions,omitempty"`
	Notes             string `json:"notes,omitempty"`

	InsuranceProvider     string `json:"insurance_provider,omitempty"`
	InsurancePolicyNumber string `json:"insurance_policy_number,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int64             `json:"total"`
}
