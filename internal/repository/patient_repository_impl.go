package repository

import (
	"errors"
	"time"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByNumber(db *gorm.DB, patientNumber string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("patient_number = ?", patientNumber).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

// FindAll returns a page of patients plus the total match count.
// Search matches name, patient number, phone and email case-insensitively.
func (r *patientRepository) FindAll(db *gorm.DB, filter *entity.PatientFilter) ([]entity.Patient, int64, error) {
	query := db.Model(&entity.Patient{})

	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Gender != "" {
			query = query.Where("gender = ?", filter.Gender)
		}
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			query = query.Where(
				"first_name ILIKE ? OR last_name ILIKE ? OR patient_number ILIKE ? OR phone ILIKE ? OR email ILIKE ?",
				like, like, like, like, like,
			)
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

	var patients []entity.Patient
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, 0, err
	}

	return patients, total, nil
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Save(patient).Error
}

func (r *patientRepository) Stats(db *gorm.DB) (*entity.PatientStats, error) {
	stats := &entity.PatientStats{ByGender: make(map[entity.Gender]int64)}

	if err := db.Model(&entity.Patient{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Patient{}).Where("status = ?", entity.PatientStatusActive).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Patient{}).Where("status = ?", entity.PatientStatusInactive).Count(&stats.Inactive).Error; err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if err := db.Model(&entity.Patient{}).Where("created_at >= ?", monthStart).Count(&stats.NewThisMonth).Error; err != nil {
		return nil, err
	}

	type genderRow struct {
		Gender entity.Gender
		Count  int64
	}
	var rows []genderRow
	err := db.Model(&entity.Patient{}).
		Select("gender, COUNT(*) as count").
		Group("gender").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByGender[row.Gender] = row.Count
	}

	return stats, nil
}
