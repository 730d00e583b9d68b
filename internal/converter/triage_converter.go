package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// TriageToResponse converts a TriageAssessment entity to TriageResponse DTO
func TriageToResponse(assessment *entity.TriageAssessment) *dto.TriageResponse {
	if assessment == nil {
		return nil
	}

	response := &dto.TriageResponse{
		ID:                         assessment.ID,
		PatientID:                  assessment.PatientID,
		AppointmentID:              assessment.AppointmentID,
		AssessedBy:                 assessment.AssessedBy,
		AssessmentDate:             assessment.AssessmentDate,
		PriorityLevel:              string(assessment.PriorityLevel),
		PriorityScore:              assessment.PriorityScore,
		ChiefComplaint:             assessment.ChiefComplaint,
		BloodPressure:              assessment.BloodPressure,
		HeartRate:                  assessment.HeartRate,
		RespiratoryRate:            assessment.RespiratoryRate,
		OxygenSaturation:           assessment.OxygenSaturation,
		PainScale:                  assessment.PainScale,
		PainLocation:               assessment.PainLocation,
		AssessmentNotes:            assessment.AssessmentNotes,
		RequiresImmediateAttention: assessment.RequiresImmediateAttention,
		Status:                     string(assessment.Status),
		CompletedAt:                assessment.CompletedAt,
		CreatedAt:                  assessment.CreatedAt,
		UpdatedAt:                  assessment.UpdatedAt,
	}

	if assessment.Temperature.Valid {
		response.Temperature = assessment.Temperature.Decimal.StringFixed(1)
	}

	if assessment.Patient.ID != uuid.Nil {
		response.Patient = PatientToResponse(&assessment.Patient)
	}

	return response
}

// TriagesToResponses converts a slice of TriageAssessment entities to DTOs
func TriagesToResponses(assessments []entity.TriageAssessment) []dto.TriageResponse {
	responses := make([]dto.TriageResponse, len(assessments))
	for i, assessment := range assessments {
		responses[i] = *TriageToResponse(&assessment)
	}
	return responses
}
