package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		AppointmentNumber:  appointment.AppointmentNumber,
		PatientID:          appointment.PatientID,
		DoctorID:           appointment.DoctorID,
		AppointmentDate:    appointment.AppointmentDate,
		DurationMinutes:    appointment.DurationMinutes,
		Type:               string(appointment.Type),
		Status:             string(appointment.Status),
		ChiefComplaint:     appointment.ChiefComplaint,
		Notes:              appointment.Notes,
		ConfirmedAt:        appointment.ConfirmedAt,
		StartedAt:          appointment.StartedAt,
		CompletedAt:        appointment.CompletedAt,
		CancelledAt:        appointment.CancelledAt,
		CancellationReason: appointment.CancellationReason,
		EstimatedCost:      decimalToString(appointment.EstimatedCost),
		ActualCost:         decimalToString(appointment.ActualCost),
		PaymentStatus:      string(appointment.PaymentStatus),
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}

	// Include related records if preloaded
	if appointment.Patient.ID != uuid.Nil {
		response.Patient = PatientToResponse(&appointment.Patient)
	}
	if appointment.Doctor.ID != uuid.Nil {
		response.Doctor = UserToResponse(&appointment.Doctor)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		responses[i] = *AppointmentToResponse(&appointment)
	}
	return responses
}

func decimalToString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}
