package repository

import (
	"time"

	"clinic-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type AnalyticsRepository interface {
	DailyAppointmentCounts(db *gorm.DB, from, to time.Time) ([]entity.DailyCount, error)
	StatusDistribution(db *gorm.DB) (map[entity.AppointmentStatus]int64, error)
	DailyUrgentTriageCounts(db *gorm.DB, from, to time.Time) ([]entity.DailyCount, error)
	TopChiefComplaints(db *gorm.DB, limit int) ([]entity.ComplaintFrequency, error)
	Revenue(db *gorm.DB) (*entity.RevenueSummary, error)
	AverageVisitDurationMinutes(db *gorm.DB) (float64, error)
	DashboardCounts(db *gorm.DB, now time.Time) (*entity.DashboardCounts, error)
}
