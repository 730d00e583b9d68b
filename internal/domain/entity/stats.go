package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PatientStats aggregates patient record counts
type PatientStats struct {
	Total        int64            `json:"total"`
	Active       int64            `json:"active"`
	Inactive     int64            `json:"inactive"`
	NewThisMonth int64            `json:"new_this_month"`
	ByGender     map[Gender]int64 `json:"by_gender"`
}

// AppointmentStats aggregates appointment counts
type AppointmentStats struct {
	Total    int64                       `json:"total"`
	Today    int64                       `json:"today"`
	ThisWeek int64                       `json:"this_week"`
	ByStatus map[AppointmentStatus]int64 `json:"by_status"`
	ByType   map[AppointmentType]int64   `json:"by_type"`
}

// DailyCount is a per-day aggregate row
type DailyCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// ComplaintFrequency is a chief-complaint aggregate row
type ComplaintFrequency struct {
	ChiefComplaint string `json:"chief_complaint"`
	Frequency      int64  `json:"frequency"`
}

// RevenueSummary aggregates billed and collected amounts
type RevenueSummary struct {
	TotalBilled     decimal.Decimal `json:"total_billed"`
	TotalCollected  decimal.Decimal `json:"total_collected"`
	PendingPayments int64           `json:"pending_payments"`
}

// DashboardCounts backs the operational dashboard summary
type DashboardCounts struct {
	TodayAppointments int64 `json:"today_appointments"`
	PendingToday      int64 `json:"pending_today"`
	UrgentTriageToday int64 `json:"urgent_triage_today"`
	WeekAppointments  int64 `json:"week_appointments"`
	TotalPatients     int64 `json:"total_patients"`
	ActiveStaff       int64 `json:"active_staff"`
}
