package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxNumberAttempts bounds the retries when a generated record number
// collides with an existing one.
const maxNumberAttempts = 5

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest, createdBy uuid.UUID) (*dto.PatientResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	GetByNumber(ctx context.Context, patientNumber string) (*dto.PatientResponse, error)
	List(ctx context.Context, filter *entity.PatientFilter) (*dto.PatientListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest, updatedBy uuid.UUID) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error
	Stats(ctx context.Context) (*entity.PatientStats, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest, createdBy uuid.UUID) (*dto.PatientResponse, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	patient := &entity.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dob,
		Gender:      entity.Gender(req.Gender),
		Email:       req.Email,
		Phone:       req.Phone,

		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,

		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,

		BloodType:         req.BloodType,
		Allergies:         req.Allergies,
		MedicalConditions: req.MedicalConditions,
		Notes:             req.Notes,

		InsuranceProvider:     req.InsuranceProvider,
		InsurancePolicyNumber: req.InsurancePolicyNumber,

		Status: entity.PatientStatusActive,
	}

	// A generated number can collide; retry the whole transaction with a
	// fresh number since a failed insert aborts it.
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		patient.ID = uuid.Nil
		patient.PatientNumber = generatePatientNumber(time.Now())

		tx := u.db.WithContext(ctx).Begin()

		if err := u.patientRepo.Create(tx, patient); err != nil {
			tx.Rollback()
			if isDuplicateKeyError(err, "patient_number") {
				continue
			}
			u.log.Warnf("Failed to create patient: %+v", err)
			return nil, err
		}

		if err := u.auditService.Record(ctx, tx, &createdBy, entity.AuditActionPatientCreate, "patient", patient.ID.String(), nil, converter.PatientToResponse(patient)); err != nil {
			tx.Rollback()
			return nil, err
		}

		if err := tx.Commit().Error; err != nil {
			u.log.Warnf("Failed commit transaction: %+v", err)
			return nil, err
		}

		return converter.PatientToResponse(patient), nil
	}

	return nil, fmt.Errorf("could not allocate a unique patient number after %d attempts", maxNumberAttempts)
}

func (u *patientUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetByNumber(ctx context.Context, patientNumber string) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByNumber(u.db.WithContext(ctx), patientNumber)
	if err != nil {
		u.log.Warnf("Failed to find patient by number: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) List(ctx context.Context, filter *entity.PatientFilter) (*dto.PatientListResponse, error) {
	patients, total, err := u.patientRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    total,
	}, nil
}

func (u *patientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest, updatedBy uuid.UUID) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	oldValue := converter.PatientToResponse(patient)
	applyPatientUpdate(patient, req)

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(ctx, tx, &updatedBy, entity.AuditActionPatientUpdate, "patient", patient.ID.String(), oldValue, converter.PatientToResponse(patient)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

// Delete is a soft delete. The record flips to inactive so the medical
// history stays queryable, and inactive patients cannot book.
func (u *patientUsecase) Delete(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	oldStatus := patient.Status
	patient.Status = entity.PatientStatusInactive

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}

	if err := u.auditService.Record(ctx, tx, &deletedBy, entity.AuditActionPatientDelete, "patient", patient.ID.String(), oldStatus, patient.Status); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *patientUsecase) Stats(ctx context.Context) (*entity.PatientStats, error) {
	stats, err := u.patientRepo.Stats(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load patient stats: %+v", err)
		return nil, err
	}
	return stats, nil
}

func applyPatientUpdate(patient *entity.Patient, req *dto.UpdatePatientRequest) {
	if req.FirstName != "" {
		patient.FirstName = req.FirstName
	}
	if req.LastName != "" {
		patient.LastName = req.LastName
	}
	if req.Email != "" {
		patient.Email = req.Email
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.EmergencyContactName != "" {
		patient.EmergencyContactName = req.EmergencyContactName
	}
	if req.EmergencyContactPhone != "" {
		patient.EmergencyContactPhone = req.EmergencyContactPhone
	}
	if req.AddressLine1 != "" {
		patient.AddressLine1 = req.AddressLine1
	}
	if req.AddressLine2 != "" {
		patient.AddressLine2 = req.AddressLine2
	}
	if req.City != "" {
		patient.City = req.City
	}
	if req.State != "" {
		patient.State = req.State
	}
	if req.PostalCode != "" {
		patient.PostalCode = req.PostalCode
	}
	if req.BloodType != "" {
		patient.BloodType = req.BloodType
	}
	if req.Allergies != "" {
		patient.Allergies = req.Allergies
	}
	if req.MedicalConditions != "" {
		patient.MedicalConditions = req.MedicalConditions
	}
	if req.Notes != "" {
		patient.Notes = req.Notes
	}
	if req.InsuranceProvider != "" {
		patient.InsuranceProvider = req.InsuranceProvider
	}
	if req.InsurancePolicyNumber != "" {
		patient.InsurancePolicyNumber = req.InsurancePolicyNumber
	}
	if req.Status != "" {
		patient.Status = entity.PatientStatus(req.Status)
	}
}

// generatePatientNumber builds a human-readable record number like
// P2026042531. Uniqueness is enforced by the database; callers retry
// on collision.
func generatePatientNumber(now time.Time) string {
	return fmt.Sprintf("P%d%06d", now.Year(), rand.IntN(1000000))
}
