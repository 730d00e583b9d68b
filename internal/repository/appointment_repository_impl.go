package repository

import (
	"errors"
	"time"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByNumber(db *gorm.DB, appointmentNumber string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Where("appointment_number = ?", appointmentNumber).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	query := db.Model(&entity.Appointment{})

	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Type != "" {
			query = query.Where("type = ?", filter.Type)
		}
		if filter.DoctorID != uuid.Nil {
			query = query.Where("doctor_id = ?", filter.DoctorID)
		}
		if filter.PatientID != uuid.Nil {
			query = query.Where("patient_id = ?", filter.PatientID)
		}
		if !filter.DateFrom.IsZero() {
			query = query.Where("appointment_date >= ?", filter.DateFrom)
		}
		if !filter.DateTo.IsZero() {
			query = query.Where("appointment_date <= ?", filter.DateTo)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := 1, 20
	if filter != nil {
		if filter.Page > 0 {
			page = filter.Page
		}
		if filter.Limit > 0 {
			limit = filter.Limit
		}
	}

	var appointments []entity.Appointment
	err := query.
		Preload("Patient").Preload("Doctor").
		Order("appointment_date ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

// FindActiveByDoctor returns every appointment that occupies calendar
// time for the doctor, optionally excluding one appointment id so an
// update does not conflict with its own slot.
func (r *appointmentRepository) FindActiveByDoctor(db *gorm.DB, doctorID uuid.UUID, excludeID *uuid.UUID) ([]entity.Appointment, error) {
	query := db.
		Where("doctor_id = ?", doctorID).
		Where("status IN ?", entity.ActiveAppointmentStatuses)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var appointments []entity.Appointment
	if err := query.Order("appointment_date ASC").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, day time.Time) ([]entity.Appointment, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var appointments []entity.Appointment
	err := db.Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Where("status IN ?", entity.ActiveAppointmentStatuses).
		Where("appointment_date >= ? AND appointment_date < ?", startOfDay, endOfDay).
		Order("appointment_date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindUpcoming(db *gorm.DB, limit int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").
		Where("appointment_date >= ?", time.Now().UTC()).
		Where("status IN ?", []entity.AppointmentStatus{entity.AppointmentStatusScheduled, entity.AppointmentStatusConfirmed}).
		Order("appointment_date ASC").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor").Save(appointment).Error
}

// CancelAppointment atomically cancels an appointment ONLY if it's not
// already cancelled. Returns affected rows: 1 = success, 0 = already
// cancelled (prevents double-cancel race).
func (r *appointmentRepository) CancelAppointment(db *gorm.DB, id uuid.UUID, cancelledBy uuid.UUID, reason string, at time.Time) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status != ?", id, entity.AppointmentStatusCancelled).
		Updates(map[string]interface{}{
			"status":              entity.AppointmentStatusCancelled,
			"cancelled_at":        at,
			"cancelled_by":        cancelledBy,
			"cancellation_reason": reason,
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Stats(db *gorm.DB) (*entity.AppointmentStats, error) {
	stats := &entity.AppointmentStats{
		ByStatus: make(map[entity.AppointmentStatus]int64),
		ByType:   make(map[entity.AppointmentType]int64),
	}

	if err := db.Model(&entity.Appointment{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	startOfDay := startOfDayUTC(time.Now())
	if err := db.Model(&entity.Appointment{}).
		Where("appointment_date >= ? AND appointment_date < ?", startOfDay, startOfDay.Add(24*time.Hour)).
		Count(&stats.Today).Error; err != nil {
		return nil, err
	}

	weekStart := startOfDay.AddDate(0, 0, -int(startOfDay.Weekday()))
	if err := db.Model(&entity.Appointment{}).
		Where("appointment_date >= ? AND appointment_date < ?", weekStart, weekStart.AddDate(0, 0, 7)).
		Count(&stats.ThisWeek).Error; err != nil {
		return nil, err
	}

	type statusRow struct {
		Status entity.AppointmentStatus
		Count  int64
	}
	var statusRows []statusRow
	if err := db.Model(&entity.Appointment{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		stats.ByStatus[row.Status] = row.Count
	}

	type typeRow struct {
		Type  entity.AppointmentType
		Count int64
	}
	var typeRows []typeRow
	if err := db.Model(&entity.Appointment{}).
		Select("type, COUNT(*) as count").
		Group("type").
		Scan(&typeRows).Error; err != nil {
		return nil, err
	}
	for _, row := range typeRows {
		stats.ByType[row.Type] = row.Count
	}

	return stats, nil
}
