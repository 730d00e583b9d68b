package repository

import (
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindByNumber(db *gorm.DB, patientNumber string) (*entity.Patient, error)
	FindAll(db *gorm.DB, filter *entity.PatientFilter) ([]entity.Patient, int64, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	Stats(db *gorm.DB) (*entity.PatientStats, error)
}
