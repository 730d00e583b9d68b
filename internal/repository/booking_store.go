package repository

import (
	"context"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"
	"clinic-backend/internal/scheduling"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormBookingStore adapts the appointment repository to the read view
// the scheduling checker needs.
type gormBookingStore struct {
	db   *gorm.DB
	repo domainRepo.AppointmentRepository
}

func NewBookingStore(db *gorm.DB, repo domainRepo.AppointmentRepository) scheduling.BookingStore {
	return &gormBookingStore{db: db, repo: repo}
}

func (s *gormBookingStore) ActiveAppointments(ctx context.Context, doctorID uuid.UUID, excludeID *uuid.UUID) ([]entity.Appointment, error) {
	return s.repo.FindActiveByDoctor(s.db.WithContext(ctx), doctorID, excludeID)
}
