package usecase

import (
	"context"
	"time"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TriageUsecase interface {
	Create(ctx context.Context, req *dto.CreateTriageRequest, assessedBy uuid.UUID) (*dto.TriageResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.TriageResponse, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.TriageListResponse, error)
	Queue(ctx context.Context) (*dto.TriageListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, updatedBy uuid.UUID) (*dto.TriageResponse, error)
}

type triageUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	triageRepo      repository.TriageRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewTriageUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	triageRepo repository.TriageRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) TriageUsecase {
	return &triageUsecase{
		db:              db,
		log:             log,
		triageRepo:      triageRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

func (u *triageUsecase) Create(ctx context.Context, req *dto.CreateTriageRequest, assessedBy uuid.UUID) (*dto.TriageResponse, error) {
	var temperature decimal.NullDecimal
	if req.Temperature != "" {
		d, err := decimal.NewFromString(req.Temperature)
		if err != nil {
			return nil, ErrInvalidTemperature
		}
		temperature = decimal.NullDecimal{Decimal: d, Valid: true}
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.AppointmentID != nil {
		appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), *req.AppointmentID)
		if err != nil {
			u.log.Warnf("Failed to find appointment by ID: %+v", err)
			return nil, err
		}
		if appointment == nil || appointment.PatientID != req.PatientID {
			return nil, ErrAppointmentNotFound
		}
	}

	assessment := &entity.TriageAssessment{
		PatientID:      req.PatientID,
		AppointmentID:  req.AppointmentID,
		AssessedBy:     assessedBy,
		AssessmentDate: time.Now(),
		PriorityLevel:  entity.PriorityLevel(req.PriorityLevel),
		PriorityScore:  req.PriorityScore,
		ChiefComplaint: req.ChiefComplaint,

		BloodPressure:    req.BloodPressure,
		Temperature:      temperature,
		HeartRate:        req.HeartRate,
		RespiratoryRate:  req.RespiratoryRate,
		OxygenSaturation: req.OxygenSaturation,

		PainScale:    req.PainScale,
		PainLocation: req.PainLocation,

		AssessmentNotes:            req.AssessmentNotes,
		RequiresImmediateAttention: req.RequiresImmediateAttention,

		Status: entity.TriageStatusPending,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.triageRepo.Create(tx, assessment); err != nil {
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create triage assessment: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(ctx, tx, &assessedBy, entity.AuditActionTriageCreate, "triage_assessment", assessment.ID.String(), nil, converter.TriageToResponse(assessment)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	assessment.Patient = *patient
	return converter.TriageToResponse(assessment), nil
}

func (u *triageUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.TriageResponse, error) {
	assessment, err := u.triageRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find triage assessment by ID: %+v", err)
		return nil, err
	}
	if assessment == nil {
		return nil, ErrTriageNotFound
	}

	return converter.TriageToResponse(assessment), nil
}

func (u *triageUsecase) ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.TriageListResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	assessments, err := u.triageRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list triage assessments: %+v", err)
		return nil, err
	}

	return &dto.TriageListResponse{
		Assessments: converter.TriagesToResponses(assessments),
		Total:       len(assessments),
	}, nil
}

// Queue returns all open assessments ordered by priority so the most
// urgent patients are seen first.
func (u *triageUsecase) Queue(ctx context.Context) (*dto.TriageListResponse, error) {
	assessments, err := u.triageRepo.FindOpen(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load triage queue: %+v", err)
		return nil, err
	}

	return &dto.TriageListResponse{
		Assessments: converter.TriagesToResponses(assessments),
		Total:       len(assessments),
	}, nil
}

func (u *triageUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, status string, updatedBy uuid.UUID) (*dto.TriageResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	assessment, err := u.triageRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find triage assessment by ID: %+v", err)
		return nil, err
	}
	if assessment == nil {
		return nil, ErrTriageNotFound
	}

	oldStatus := assessment.Status
	assessment.Status = entity.TriageStatus(status)
	if assessment.Status == entity.TriageStatusCompleted && assessment.CompletedAt == nil {
		now := time.Now()
		assessment.CompletedAt = &now
		assessment.CompletedBy = &updatedBy
	}

	if err := u.triageRepo.Update(tx, assessment); err != nil {
		u.log.Warnf("Failed to update triage assessment: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(ctx, tx, &updatedBy, entity.AuditActionTriageStatusChange, "triage_assessment", assessment.ID.String(), oldStatus, assessment.Status); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TriageToResponse(assessment), nil
}
