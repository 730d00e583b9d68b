package dto

import "clinic-backend/internal/domain/entity"

// Response DTOs

type DashboardSummaryResponse struct {
	TodayAppointments int64 `json:"today_appointments"`
	PendingToday      int64 `json:"pending_today"`
	UrgentTriageToday int64 `json:"urgent_triage_today"`
	WeekAppointments  int64 `json:"week_appointments"`
	TotalPatients     int64 `json:"total_patients"`
	ActiveStaff       int64 `json:"active_staff"`
}

type PerformanceAnalyticsResponse struct {
	DailyAppointments  []entity.DailyCount                `json:"daily_appointments"`
	StatusDistribution map[entity.AppointmentStatus]int64 `json:"status_distribution"`
}

type CareAnalyticsResponse struct {
	DailyUrgentCases   []entity.DailyCount         `json:"daily_urgent_cases"`
	TopChiefComplaints []entity.ComplaintFrequency `json:"top_chief_complaints"`
}

type EfficiencyAnalyticsResponse struct {
	AverageVisitDurationMinutes float64 `json:"average_visit_duration_minutes"`
	TotalBilled                 string  `json:"total_billed"`
	TotalCollected              string  `json:"total_collected"`
	PendingPayments             int64   `json:"pending_payments"`
}
