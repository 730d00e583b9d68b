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

type StaffHandler struct {
	staffUsecase usecase.StaffUsecase
	validator    *validator.CustomValidator
}

func NewStaffHandler(staffUsecase usecase.StaffUsecase, validator *validator.CustomValidator) *StaffHandler {
	return &StaffHandler{
		staffUsecase: staffUsecase,
		validator:    validator,
	}
}

// Create registers a new staff account
// @Summary Create staff account
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateStaffRequest true "Create Staff Request"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /staff [post]
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateStaffRequest
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

	user, err := h.staffUsecase.Create(r.Context(), &req, createdBy)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, "Email already exists", nil)
		default:
			response.InternalServerError(w, "Failed to create staff account")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Staff account created", user)
}

// List returns staff accounts, optionally filtered by role and status
// @Summary List staff accounts
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Param role query string false "Filter by role"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /staff [get]
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	status := r.URL.Query().Get("status")

	staff, err := h.staffUsecase.List(r.Context(), role, status)
	if err != nil {
		response.InternalServerError(w, "Failed to list staff")
		return
	}

	response.Success(w, http.StatusOK, "Staff list", staff)
}

// GetByID returns a single staff account
// @Summary Get staff account
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /staff/{id} [get]
func (h *StaffHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid staff ID", nil)
		return
	}

	user, err := h.staffUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "Staff member not found")
		default:
			response.InternalServerError(w, "Failed to load staff member")
		}
		return
	}

	response.Success(w, http.StatusOK, "Staff member", user)
}

// Update modifies a staff account
// @Summary Update staff account
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param request body dto.UpdateStaffRequest true "Update Staff Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /staff/{id} [put]
func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid staff ID", nil)
		return
	}

	var req dto.UpdateStaffRequest
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

	user, err := h.staffUsecase.Update(r.Context(), id, &req, updatedBy)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "Staff member not found")
		default:
			response.InternalServerError(w, "Failed to update staff member")
		}
		return
	}

	response.Success(w, http.StatusOK, "Staff member updated", user)
}

// Deactivate disables a staff account and revokes its sessions
// @Summary Deactivate staff account
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /staff/{id} [delete]
func (h *StaffHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid staff ID", nil)
		return
	}

	deactivatedBy, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.staffUsecase.Deactivate(r.Context(), id, deactivatedBy); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "Staff member not found")
		default:
			response.InternalServerError(w, "Failed to deactivate staff member")
		}
		return
	}

	response.Success(w, http.StatusOK, "Staff member deactivated", nil)
}
