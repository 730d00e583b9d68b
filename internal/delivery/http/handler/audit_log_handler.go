package handler

import (
	"net/http"

	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"
)

const defaultAuditLogLimit = 50

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

// Recent returns the latest audit trail entries
// @Summary Recent audit logs
// @Tags Audit
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum results"
// @Success 200 {object} response.Response
// @Router /audit-logs [get]
func (h *AuditLogHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := parsePositiveInt(r.URL.Query().Get("limit"), defaultAuditLogLimit)
	if limit > maxPageSize {
		limit = maxPageSize
	}

	logs, err := h.auditLogUsecase.Recent(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, "Failed to load audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs", logs)
}
