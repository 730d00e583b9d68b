package repository

import (
	"time"

	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByNumber(db *gorm.DB, appointmentNumber string) (*entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	FindActiveByDoctor(db *gorm.DB, doctorID uuid.UUID, excludeID *uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, day time.Time) ([]entity.Appointment, error)
	FindUpcoming(db *gorm.DB, limit int) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	CancelAppointment(db *gorm.DB, id uuid.UUID, cancelledBy uuid.UUID, reason string, at time.Time) (int64, error)
	Stats(db *gorm.DB) (*entity.AppointmentStats, error)
}
