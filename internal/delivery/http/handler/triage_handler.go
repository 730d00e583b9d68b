package handler

import (
	"encoding/json"
	"net/http"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/delivery/http/middleware"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"
	"clinic-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TriageHandler struct {
	triageUsecase usecase.TriageUsecase
	validator     *validator.CustomValidator
}

func NewTriageHandler(triageUsecase usecase.TriageUsecase, validator *validator.CustomValidator) *TriageHandler {
	return &TriageHandler{
		triageUsecase: triageUsecase,
		validator:     validator,
	}
}

// Create records a new triage assessment
// @Summary Create triage assessment
// @Tags Triage
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTriageRequest true "Create Triage Request"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /triage [post]
func (h *TriageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTriageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	assessedBy, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	assessment, err := h.triageUsecase.Create(r.Context(), &req, assessedBy)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found for this patient")
		case usecase.ErrInvalidTemperature:
			response.Error(w, http.StatusBadRequest, "Invalid temperature, use a decimal string like 37.5", nil)
		default:
			response.InternalServerError(w, "Failed to create triage assessment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Triage assessment created", assessment)
}

// Queue returns open assessments ordered by priority
// @Summary Triage queue
// @Tags Triage
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /triage/queue [get]
func (h *TriageHandler) Queue(w http.ResponseWriter, r *http.Request) {
	queue, err := h.triageUsecase.Queue(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load triage queue")
		return
	}

	response.Success(w, http.StatusOK, "Triage queue", queue)
}

// GetByID returns a single triage assessment
// @Summary Get triage assessment
// @Tags Triage
// @Security BearerAuth
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /triage/{id} [get]
func (h *TriageHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid assessment ID", nil)
		return
	}

	assessment, err := h.triageUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrTriageNotFound:
			response.NotFound(w, "Triage assessment not found")
		default:
			response.InternalServerError(w, "Failed to load triage assessment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Triage assessment", assessment)
}

// ListByPatient returns all assessments for a patient
// @Summary Patient triage history
// @Tags Triage
// @Security BearerAuth
// @Produce json
// @Param patientId path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /triage/patient/{patientId} [get]
func (h *TriageHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["patientId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	assessments, err := h.triageUsecase.ListByPatient(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to load triage history")
		}
		return
	}

	response.Success(w, http.StatusOK, "Triage history", assessments)
}

// UpdateStatus transitions a triage assessment
// @Summary Update triage status
// @Tags Triage
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Assessment ID"
// @Param request body dto.UpdateTriageStatusRequest true "Update Status Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /triage/{id}/status [patch]
func (h *TriageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid assessment ID", nil)
		return
	}

	var req dto.UpdateTriageStatusRequest
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

	assessment, err := h.triageUsecase.UpdateStatus(r.Context(), id, req.Status, updatedBy)
	if err != nil {
		switch err {
		case usecase.ErrTriageNotFound:
			response.NotFound(w, "Triage assessment not found")
		default:
			response.InternalServerError(w, "Failed to update triage status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Triage status updated", assessment)
}
