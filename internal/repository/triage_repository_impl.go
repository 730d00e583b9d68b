package repository

import (
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type triageRepository struct{}

func NewTriageRepository() domainRepo.TriageRepository {
	return &triageRepository{}
}

func (r *triageRepository) Create(db *gorm.DB, assessment *entity.TriageAssessment) error {
	return db.Create(assessment).Error
}

func (r *triageRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.TriageAssessment, error) {
	var assessment entity.TriageAssessment
	err := db.Preload("Patient").Where("id = ?", id).First(&assessment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assessment, nil
}

func (r *triageRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.TriageAssessment, error) {
	var assessments []entity.TriageAssessment
	err := db.Where("patient_id = ?", patientID).
		Order("assessment_date DESC").
		Find(&assessments).Error
	if err != nil {
		return nil, err
	}
	return assessments, nil
}

// FindOpen returns pending and in-progress assessments, most urgent first.
func (r *triageRepository) FindOpen(db *gorm.DB) ([]entity.TriageAssessment, error) {
	var assessments []entity.TriageAssessment
	err := db.Preload("Patient").
		Where("status IN ?", []entity.TriageStatus{entity.TriageStatusPending, entity.TriageStatusInProgress}).
		Order("priority_score DESC, assessment_date ASC").
		Find(&assessments).Error
	if err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *triageRepository) Update(db *gorm.DB, assessment *entity.TriageAssessment) error {
	return db.Omit("Patient", "Appointment", "Assessor").Save(assessment).Error
}
