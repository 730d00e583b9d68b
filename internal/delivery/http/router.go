package http

import (
	"net/http"

	"clinic-backend/internal/delivery/http/handler"
	"clinic-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	staffHandler       *handler.StaffHandler
	patientHandler     *handler.PatientHandler
	appointmentHandler *handler.AppointmentHandler
	triageHandler      *handler.TriageHandler
	analyticsHandler   *handler.AnalyticsHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	staffHandler *handler.StaffHandler,
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	triageHandler *handler.TriageHandler,
	analyticsHandler *handler.AnalyticsHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		staffHandler:       staffHandler,
		patientHandler:     patientHandler,
		appointmentHandler: appointmentHandler,
		triageHandler:      triageHandler,
		analyticsHandler:   analyticsHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", r.authHandler.Refresh).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Staff management (admin only)
	staff := api.PathPrefix("/staff").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireAdmin)
	staff.HandleFunc("", r.staffHandler.Create).Methods(http.MethodPost)
	staff.HandleFunc("", r.staffHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/{id}", r.staffHandler.GetByID).Methods(http.MethodGet)
	staff.HandleFunc("/{id}", r.staffHandler.Update).Methods(http.MethodPut)
	staff.HandleFunc("/{id}", r.staffHandler.Deactivate).Methods(http.MethodDelete)

	// Patient records (any front desk or clinical staff)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequireFrontDesk)
	patients.HandleFunc("", r.patientHandler.Create).Methods(http.MethodPost)
	patients.HandleFunc("", r.patientHandler.List).Methods(http.MethodGet)
	patients.HandleFunc("/stats", r.patientHandler.Stats).Methods(http.MethodGet)
	patients.HandleFunc("/number/{number}", r.patientHandler.GetByNumber).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.GetByID).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.Update).Methods(http.MethodPut)
	patients.HandleFunc("/{id}", r.patientHandler.Delete).Methods(http.MethodDelete)

	// Appointments (any front desk or clinical staff)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Use(middleware.RequireFrontDesk)
	appointments.HandleFunc("", r.appointmentHandler.Create).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.List).Methods(http.MethodGet)
	appointments.HandleFunc("/availability", r.appointmentHandler.CheckAvailability).Methods(http.MethodGet)
	appointments.HandleFunc("/upcoming", r.appointmentHandler.Upcoming).Methods(http.MethodGet)
	appointments.HandleFunc("/stats", r.appointmentHandler.Stats).Methods(http.MethodGet)
	appointments.HandleFunc("/schedule/{doctorId}", r.appointmentHandler.DaySchedule).Methods(http.MethodGet)
	appointments.HandleFunc("/number/{number}", r.appointmentHandler.GetByNumber).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)

	// Triage (clinical staff only)
	triage := api.PathPrefix("/triage").Subrouter()
	triage.Use(r.authMiddleware.Authenticate)
	triage.Use(middleware.RequireClinical)
	triage.HandleFunc("", r.triageHandler.Create).Methods(http.MethodPost)
	triage.HandleFunc("/queue", r.triageHandler.Queue).Methods(http.MethodGet)
	triage.HandleFunc("/patient/{patientId}", r.triageHandler.ListByPatient).Methods(http.MethodGet)
	triage.HandleFunc("/{id}", r.triageHandler.GetByID).Methods(http.MethodGet)
	triage.HandleFunc("/{id}/status", r.triageHandler.UpdateStatus).Methods(http.MethodPatch)

	// Analytics (admin and doctors)
	analytics := api.PathPrefix("/analytics").Subrouter()
	analytics.Use(r.authMiddleware.Authenticate)
	analytics.Use(middleware.RequireClinical)
	analytics.HandleFunc("/dashboard", r.analyticsHandler.Dashboard).Methods(http.MethodGet)
	analytics.HandleFunc("/performance", r.analyticsHandler.Performance).Methods(http.MethodGet)
	analytics.HandleFunc("/care", r.analyticsHandler.Care).Methods(http.MethodGet)
	analytics.HandleFunc("/efficiency", r.analyticsHandler.Efficiency).Methods(http.MethodGet)

	// Audit trail (admin only)
	audit := api.PathPrefix("/audit-logs").Subrouter()
	audit.Use(r.authMiddleware.Authenticate)
	audit.Use(middleware.RequireAdmin)
	audit.HandleFunc("", r.auditLogHandler.Recent).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
