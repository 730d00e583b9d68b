package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/delivery/http/middleware"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"
	"clinic-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// Create registers a new patient
// @Summary Register patient
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePatientRequest true "Create Patient Request"
// @Success 201 {object} response.Response
// @Router /patients [post]
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
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

	patient, err := h.patientUsecase.Create(r.Context(), &req, createdBy)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date of birth, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to register patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient registered", patient)
}

// List returns patients with search, filters and pagination
// @Summary List patients
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param search query string false "Match name, patient number, phone or email"
// @Param status query string false "Filter by status"
// @Param gender query string false "Filter by gender"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /patients [get]
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := &entity.PatientFilter{
		Search: query.Get("search"),
		Status: entity.PatientStatus(query.Get("status")),
		Gender: entity.Gender(query.Get("gender")),
		Page:   parsePositiveInt(query.Get("page"), 1),
		Limit:  parsePositiveInt(query.Get("limit"), defaultPageSize),
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	patients, err := h.patientUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	totalPages := int((patients.Total + int64(filter.Limit) - 1) / int64(filter.Limit))
	response.SuccessWithMeta(w, http.StatusOK, "Patient list", patients, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      patients.Total,
		TotalPages: totalPages,
	})
}

// GetByID returns a single patient record
// @Summary Get patient
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [get]
func (h *PatientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	patient, err := h.patientUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to load patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient", patient)
}

// GetByNumber returns a patient by their human-readable record number
// @Summary Get patient by number
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param number path string true "Patient Number"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/number/{number} [get]
func (h *PatientHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	patient, err := h.patientUsecase.GetByNumber(r.Context(), number)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to load patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient", patient)
}

// Update modifies a patient record
// @Summary Update patient
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param request body dto.UpdatePatientRequest true "Update Patient Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [put]
func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.UpdatePatientRequest
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

	patient, err := h.patientUsecase.Update(r.Context(), id, &req, updatedBy)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated", patient)
}

// Delete soft-deletes a patient record
// @Summary Delete patient
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [delete]
func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	deletedBy, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.patientUsecase.Delete(r.Context(), id, deletedBy); err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to delete patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted", nil)
}

// Stats returns aggregate patient counts
// @Summary Patient statistics
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patients/stats [get]
func (h *PatientHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.patientUsecase.Stats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load patient stats")
		return
	}

	response.Success(w, http.StatusOK, "Patient stats", stats)
}

func parsePositiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
