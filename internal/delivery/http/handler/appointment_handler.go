package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/delivery/http/middleware"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/scheduling"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"
	"clinic-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const defaultUpcomingLimit = 10

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Create books a new appointment
// @Summary Book appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	createdBy, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req, createdBy)
	if err != nil {
		h.writeAppointmentError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked", appointment)
}

// CheckAvailability reports whether a slot is free on a doctor's calendar
// @Summary Check slot availability
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param doctor_id query string true "Doctor ID"
// @Param start query string true "Slot start (RFC 3339)"
// @Param duration_minutes query int true "Slot duration in minutes"
// @Param exclude_id query string false "Appointment to exclude (for reschedules)"
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /appointments/availability [get]
func (h *AppointmentHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	doctorID, err := uuid.Parse(query.Get("doctor_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor_id", nil)
		return
	}

	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid start, use RFC 3339", nil)
		return
	}

	durationMinutes := parsePositiveInt(query.Get("duration_minutes"), 0)
	if durationMinutes < 15 || durationMinutes > 240 {
		response.Error(w, http.StatusBadRequest, "duration_minutes must be between 15 and 240", nil)
		return
	}

	var excludeID *uuid.UUID
	if raw := query.Get("exclude_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid exclude_id", nil)
			return
		}
		excludeID = &id
	}

	availability, err := h.appointmentUsecase.CheckAvailability(r.Context(), doctorID, start, durationMinutes, excludeID)
	if err != nil {
		h.writeAppointmentError(w, err, "Failed to check availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability", availability)
}

// List returns appointments with filters and pagination
// @Summary List appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by type"
// @Param doctor_id query string false "Filter by doctor"
// @Param patient_id query string false "Filter by patient"
// @Param date_from query string false "Start of date range (YYYY-MM-DD)"
// @Param date_to query string false "End of date range (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := &entity.AppointmentFilter{
		Status: entity.AppointmentStatus(query.Get("status")),
		Type:   entity.AppointmentType(query.Get("type")),
		Page:   parsePositiveInt(query.Get("page"), 1),
		Limit:  parsePositiveInt(query.Get("limit"), defaultPageSize),
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	if raw := query.Get("doctor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid doctor_id", nil)
			return
		}
		filter.DoctorID = id
	}
	if raw := query.Get("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid patient_id", nil)
			return
		}
		filter.PatientID = id
	}
	if raw := query.Get("date_from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid date_from, use YYYY-MM-DD", nil)
			return
		}
		filter.DateFrom = from
	}
	if raw := query.Get("date_to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid date_to, use YYYY-MM-DD", nil)
			return
		}
		filter.DateTo = to
	}

	appointments, err := h.appointmentUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	totalPages := int((appointments.Total + int64(filter.Limit) - 1) / int64(filter.Limit))
	response.SuccessWithMeta(w, http.StatusOK, "Appointment list", appointments, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      appointments.Total,
		TotalPages: totalPages,
	})
}

// GetByID returns a single appointment
// @Summary Get appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeAppointmentError(w, err, "Failed to load appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment", appointment)
}

// GetByNumber returns an appointment by its booking reference
// @Summary Get appointment by number
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param number path string true "Appointment Number"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/number/{number} [get]
func (h *AppointmentHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	appointment, err := h.appointmentUsecase.GetByNumber(r.Context(), number)
	if err != nil {
		h.writeAppointmentError(w, err, "Failed to load appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment", appointment)
}

// Update modifies or reschedules an appointment
// @Summary Update appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentRequest true "Update Appointment Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id} [put]
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	updatedBy, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), id, &req, updatedBy)
	if err != nil {
		h.writeAppointmentError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated", appointment)
}

// Cancel cancels an appointment and frees its slot
// @Summary Cancel appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.CancelAppointmentRequest true "Cancel Appointment Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.CancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	cancelledBy, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), id, req.Reason, cancelledBy); err != nil {
		h.writeAppointmentError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled", nil)
}

// DaySchedule returns a doctor's appointments for one day
// @Summary Doctor day schedule
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param doctorId path string true "Doctor ID"
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Response
// @Router /appointments/schedule/{doctorId} [get]
func (h *AppointmentHandler) DaySchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	day := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		day, err = time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
			return
		}
	}

	appointments, err := h.appointmentUsecase.DaySchedule(r.Context(), doctorID, day)
	if err != nil {
		h.writeAppointmentError(w, err, "Failed to load schedule")
		return
	}

	response.Success(w, http.StatusOK, "Day schedule", appointments)
}

// Upcoming returns the next appointments across all doctors
// @Summary Upcoming appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum results"
// @Success 200 {object} response.Response
// @Router /appointments/upcoming [get]
func (h *AppointmentHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	limit := parsePositiveInt(r.URL.Query().Get("limit"), defaultUpcomingLimit)
	if limit > maxPageSize {
		limit = maxPageSize
	}

	appointments, err := h.appointmentUsecase.Upcoming(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, "Failed to load upcoming appointments")
		return
	}

	response.Success(w, http.StatusOK, "Upcoming appointments", appointments)
}

// Stats returns aggregate appointment counts
// @Summary Appointment statistics
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments/stats [get]
func (h *AppointmentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.appointmentUsecase.Stats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load appointment stats")
		return
	}

	response.Success(w, http.StatusOK, "Appointment stats", stats)
}

// writeAppointmentError maps appointment usecase errors to HTTP responses.
// A booking store outage maps to 503 so clients can retry later.
func (h *AppointmentHandler) writeAppointmentError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, scheduling.ErrStoreUnavailable) {
		response.Error(w, http.StatusServiceUnavailable, "Scheduling backend is temporarily unavailable", nil)
		return
	}

	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrPatientInactive:
		response.Error(w, http.StatusUnprocessableEntity, "Patient record is not active", nil)
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrDoctorInactive:
		response.Error(w, http.StatusUnprocessableEntity, "Doctor account is not active", nil)
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrAppointmentInPast:
		response.Error(w, http.StatusBadRequest, "Appointment date must be in the future", nil)
	case usecase.ErrInvalidCostFormat:
		response.Error(w, http.StatusBadRequest, "Invalid cost, use a decimal string like 150.00", nil)
	case usecase.ErrSlotUnavailable:
		response.Conflict(w, "Requested slot conflicts with an existing appointment", nil)
	case usecase.ErrAppointmentAlreadyCancelled:
		response.Conflict(w, "Appointment is already cancelled", nil)
	case usecase.ErrAppointmentNotModifiable:
		response.Conflict(w, "Appointment can no longer be modified", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
