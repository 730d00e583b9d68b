package handler

import (
	"net/http"
	"time"

	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"
)

// defaultAnalyticsWindow is the range used when the caller sends no
// explicit date range.
const defaultAnalyticsWindow = 30 * 24 * time.Hour

type AnalyticsHandler struct {
	analyticsUsecase usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(analyticsUsecase usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUsecase: analyticsUsecase}
}

// Dashboard returns the operational summary counters
// @Summary Dashboard summary
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsUsecase.Dashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard summary", summary)
}

// Performance returns appointment volume and status breakdown
// @Summary Performance analytics
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param date_from query string false "Start of range (YYYY-MM-DD)"
// @Param date_to query string false "End of range (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /analytics/performance [get]
func (h *AnalyticsHandler) Performance(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.parseRange(w, r)
	if !ok {
		return
	}

	analytics, err := h.analyticsUsecase.Performance(r.Context(), from, to)
	if err != nil {
		response.InternalServerError(w, "Failed to load performance analytics")
		return
	}

	response.Success(w, http.StatusOK, "Performance analytics", analytics)
}

// Care returns urgent case volume and complaint frequencies
// @Summary Care analytics
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param date_from query string false "Start of range (YYYY-MM-DD)"
// @Param date_to query string false "End of range (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /analytics/care [get]
func (h *AnalyticsHandler) Care(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.parseRange(w, r)
	if !ok {
		return
	}

	analytics, err := h.analyticsUsecase.Care(r.Context(), from, to)
	if err != nil {
		response.InternalServerError(w, "Failed to load care analytics")
		return
	}

	response.Success(w, http.StatusOK, "Care analytics", analytics)
}

// Efficiency returns visit duration and billing aggregates
// @Summary Efficiency analytics
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /analytics/efficiency [get]
func (h *AnalyticsHandler) Efficiency(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.analyticsUsecase.Efficiency(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load efficiency analytics")
		return
	}

	response.Success(w, http.StatusOK, "Efficiency analytics", analytics)
}

func (h *AnalyticsHandler) parseRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	query := r.URL.Query()

	to := time.Now()
	from := to.Add(-defaultAnalyticsWindow)
	var err error

	if raw := query.Get("date_from"); raw != "" {
		from, err = time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid date_from, use YYYY-MM-DD", nil)
			return time.Time{}, time.Time{}, false
		}
	}
	if raw := query.Get("date_to"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid date_to, use YYYY-MM-DD", nil)
			return time.Time{}, time.Time{}, false
		}
	}

	if to.Before(from) {
		response.Error(w, http.StatusBadRequest, "date_to must not be before date_from", nil)
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}
