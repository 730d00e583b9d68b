package repository

import (
	"time"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct{}

func NewAnalyticsRepository() domainRepo.AnalyticsRepository {
	return &analyticsRepository{}
}

func (r *analyticsRepository) DailyAppointmentCounts(db *gorm.DB, from, to time.Time) ([]entity.DailyCount, error) {
	var rows []entity.DailyCount
	err := db.Model(&entity.Appointment{}).
		Select("DATE_TRUNC('day', appointment_date) as day, COUNT(*) as count").
		Where("appointment_date >= ? AND appointment_date < ?", from, to).
		Group("DATE_TRUNC('day', appointment_date)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) StatusDistribution(db *gorm.DB) (map[entity.AppointmentStatus]int64, error) {
	type row struct {
		Status entity.AppointmentStatus
		Count  int64
	}
	var rows []row
	err := db.Model(&entity.Appointment{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	distribution := make(map[entity.AppointmentStatus]int64, len(rows))
	for _, r := range rows {
		distribution[r.Status] = r.Count
	}
	return distribution, nil
}

func (r *analyticsRepository) DailyUrgentTriageCounts(db *gorm.DB, from, to time.Time) ([]entity.DailyCount, error) {
	var rows []entity.DailyCount
	err := db.Model(&entity.TriageAssessment{}).
		Select("DATE_TRUNC('day', assessment_date) as day, COUNT(*) as count").
		Where("priority_level IN ?", []entity.PriorityLevel{entity.PriorityCritical, entity.PriorityUrgent}).
		Where("assessment_date >= ? AND assessment_date < ?", from, to).
		Group("DATE_TRUNC('day', assessment_date)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) TopChiefComplaints(db *gorm.DB, limit int) ([]entity.ComplaintFrequency, error) {
	var rows []entity.ComplaintFrequency
	err := db.Model(&entity.TriageAssessment{}).
		Select("chief_complaint, COUNT(*) as frequency").
		Where("chief_complaint != ''").
		Group("chief_complaint").
		Order("frequency DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) Revenue(db *gorm.DB) (*entity.RevenueSummary, error) {
	type row struct {
		TotalBilled    decimal.NullDecimal
		TotalCollected decimal.NullDecimal
	}
	var sums row
	err := db.Model(&entity.Appointment{}).
		Select(`
			SUM(estimated_cost) as total_billed,
			SUM(CASE WHEN payment_status = ? THEN actual_cost END) as total_collected
		`, entity.PaymentStatusPaid).
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}

	summary := &entity.RevenueSummary{}
	if sums.TotalBilled.Valid {
		summary.TotalBilled = sums.TotalBilled.Decimal
	}
	if sums.TotalCollected.Valid {
		summary.TotalCollected = sums.TotalCollected.Decimal
	}

	err = db.Model(&entity.Appointment{}).
		Where("payment_status = ?", entity.PaymentStatusPending).
		Where("status = ?", entity.AppointmentStatusCompleted).
		Count(&summary.PendingPayments).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// AverageVisitDurationMinutes averages actual visit length over
// completed appointments that have both start and completion stamps.
func (r *analyticsRepository) AverageVisitDurationMinutes(db *gorm.DB) (float64, error) {
	type row struct {
		AvgMinutes *float64
	}
	var result row
	err := db.Model(&entity.Appointment{}).
		Select("AVG(EXTRACT(EPOCH FROM (completed_at - started_at)) / 60) as avg_minutes").
		Where("started_at IS NOT NULL AND completed_at IS NOT NULL").
		Scan(&result).Error
	if err != nil {
		return 0, err
	}
	if result.AvgMinutes == nil {
		return 0, nil
	}
	return *result.AvgMinutes, nil
}

func (r *analyticsRepository) DashboardCounts(db *gorm.DB, now time.Time) (*entity.DashboardCounts, error) {
	counts := &entity.DashboardCounts{}

	startOfDay := startOfDayUTC(now)
	endOfDay := startOfDay.Add(24 * time.Hour)
	weekStart := startOfDay.AddDate(0, 0, -int(startOfDay.Weekday()))

	if err := db.Model(&entity.Appointment{}).
		Where("appointment_date >= ? AND appointment_date < ?", startOfDay, endOfDay).
		Count(&counts.TodayAppointments).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.Appointment{}).
		Where("appointment_date >= ? AND appointment_date < ?", startOfDay, endOfDay).
		Where("status IN ?", []entity.AppointmentStatus{entity.AppointmentStatusScheduled, entity.AppointmentStatusConfirmed}).
		Count(&counts.PendingToday).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.TriageAssessment{}).
		Where("assessment_date >= ? AND assessment_date < ?", startOfDay, endOfDay).
		Where("priority_level IN ?", []entity.PriorityLevel{entity.PriorityCritical, entity.PriorityUrgent}).
		Count(&counts.UrgentTriageToday).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.Appointment{}).
		Where("appointment_date >= ? AND appointment_date < ?", weekStart, weekStart.AddDate(0, 0, 7)).
		Count(&counts.WeekAppointments).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.Patient{}).Count(&counts.TotalPatients).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.User{}).
		Where("status = ?", entity.UserStatusActive).
		Count(&counts.ActiveStaff).Error; err != nil {
		return nil, err
	}

	return counts, nil
}
