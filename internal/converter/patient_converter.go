package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:                    patient.ID,
		PatientNumber:         patient.PatientNumber,
		FirstName:             patient.FirstName,
		LastName:              patient.LastName,
		DateOfBirth:           patient.DateOfBirth.Format("2006-01-02"),
		Gender:                string(patient.Gender),
		Email:                 patient.Email,
		Phone:                 patient.Phone,
		EmergencyContactName:  patient.EmergencyContactName,
		EmergencyContactPhone: patient.EmergencyContactPhone,
		AddressLine1:          patient.AddressLine1,
		AddressLine2:          patient.AddressLine2,
		City:                  patient.City,
		State:                 patient.State,
		PostalCode:            patient.PostalCode,
		Country:               patient.Country,
		BloodType:             patient.BloodType,
		Allergies:             patient.Allergies,
		MedicalConditions:     patient.MedicalConditions,
		Notes:                 patient.Notes,
		InsuranceProvider:     patient.InsuranceProvider,
		InsurancePolicyNumber: patient.InsurancePolicyNumber,
		Status:                string(patient.Status),
		CreatedAt:             patient.CreatedAt,
		UpdatedAt:             patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i, patient := range patients {
		responses[i] = *PatientToResponse(&patient)
	}
	return responses
}
