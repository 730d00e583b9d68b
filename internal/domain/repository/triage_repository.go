package repository

import (
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TriageRepository interface {
	Create(db *gorm.DB, assessment *entity.TriageAssessment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.TriageAssessment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.TriageAssessment, error)
	FindOpen(db *gorm.DB) ([]entity.TriageAssessment, error)
	Update(db *gorm.DB, assessment *entity.TriageAssessment) error
}
