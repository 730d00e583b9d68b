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
	"clinic-backend/internal/scheduling"
	"clinic-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest, createdBy uuid.UUID) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetByNumber(ctx context.Context, appointmentNumber string) (*dto.AppointmentResponse, error)
	List(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest, updatedBy uuid.UUID) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string, cancelledBy uuid.UUID) error
	CheckAvailability(ctx context.Context, doctorID uuid.UUID, start time.Time, durationMinutes int, excludeID *uuid.UUID) (*dto.AvailabilityResponse, error)
	DaySchedule(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]dto.AppointmentResponse, error)
	Upcoming(ctx context.Context, limit int) ([]dto.AppointmentResponse, error)
	Stats(ctx context.Context) (*entity.AppointmentStats, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	userRepo        repository.UserRepository
	checker         *scheduling.Checker
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
	checker *scheduling.Checker,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		userRepo:        userRepo,
		checker:         checker,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest, createdBy uuid.UUID) (*dto.AppointmentResponse, error) {
	if req.AppointmentDate.Before(time.Now()) {
		return nil, ErrAppointmentInPast
	}

	estimatedCost, err := parseNullDecimal(req.EstimatedCost)
	if err != nil {
		return nil, ErrInvalidCostFormat
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if patient.Status != entity.PatientStatusActive {
		return nil, ErrPatientInactive
	}

	doctor, err := u.loadDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	// Read-side conflict check. The exclusion constraint on the table is
	// the authority under concurrency; this check exists to reject the
	// common case before opening a transaction and to report conflicts.
	availability, err := u.checker.CheckAvailability(ctx, req.DoctorID, req.AppointmentDate, req.DurationMinutes, nil)
	if err != nil {
		u.log.Warnf("Availability check failed: %+v", err)
		return nil, err
	}
	if !availability.Available {
		return nil, ErrSlotUnavailable
	}

	appointment := &entity.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		CreatedBy:       createdBy,
		AppointmentDate: req.AppointmentDate,
		DurationMinutes: req.DurationMinutes,
		Type:            entity.AppointmentType(req.Type),
		Status:          entity.AppointmentStatusScheduled,
		ChiefComplaint:  req.ChiefComplaint,
		Notes:           req.Notes,
		EstimatedCost:   estimatedCost,
		PaymentStatus:   entity.PaymentStatusPending,
	}

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		appointment.ID = uuid.Nil
		appointment.AppointmentNumber = generateAppointmentNumber(time.Now())

		tx := u.db.WithContext(ctx).Begin()

		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			tx.Rollback()
			if isDuplicateKeyError(err, "appointment_number") {
				continue
			}
			if isExclusionError(err, "no_overlap") {
				// Another booking won the slot between check and insert
				return nil, ErrSlotUnavailable
			}
			if isForeignKeyError(err, "patient") {
				return nil, ErrPatientNotFound
			}
			if isForeignKeyError(err, "doctor") {
				return nil, ErrDoctorNotFound
			}
			u.log.Warnf("Failed to create appointment: %+v", err)
			return nil, err
		}

		if err := u.auditService.Record(ctx, tx, &createdBy, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), nil, converter.AppointmentToResponse(appointment)); err != nil {
			tx.Rollback()
			return nil, err
		}

		if err := tx.Commit().Error; err != nil {
			u.log.Warnf("Failed commit transaction: %+v", err)
			return nil, err
		}

		appointment.Patient = *patient
		appointment.Doctor = *doctor
		return converter.AppointmentToResponse(appointment), nil
	}

	return nil, fmt.Errorf("could not allocate a unique appointment number after %d attempts", maxNumberAttempts)
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetByNumber(ctx context.Context, appointmentNumber string) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByNumber(u.db.WithContext(ctx), appointmentNumber)
	if err != nil {
		u.log.Warnf("Failed to find appointment by number: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) List(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, total, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest, updatedBy uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch appointment.Status {
	case entity.AppointmentStatusCancelled, entity.AppointmentStatusCompleted, entity.AppointmentStatusNoShow:
		return nil, ErrAppointmentNotModifiable
	}

	oldValue := converter.AppointmentToResponse(appointment)

	newStart := appointment.AppointmentDate
	newDuration := appointment.DurationMinutes
	if req.AppointmentDate != nil {
		newStart = *req.AppointmentDate
	}
	if req.DurationMinutes != nil {
		newDuration = *req.DurationMinutes
	}

	rescheduled := !newStart.Equal(appointment.AppointmentDate) || newDuration != appointment.DurationMinutes
	if rescheduled {
		if newStart.Before(time.Now()) {
			return nil, ErrAppointmentInPast
		}

		// Exclude this appointment so it does not conflict with itself
		availability, err := u.checker.CheckAvailability(ctx, appointment.DoctorID, newStart, newDuration, &appointment.ID)
		if err != nil {
			u.log.Warnf("Availability check failed: %+v", err)
			return nil, err
		}
		if !availability.Available {
			return nil, ErrSlotUnavailable
		}

		appointment.AppointmentDate = newStart
		appointment.DurationMinutes = newDuration
	}

	if req.Type != "" {
		appointment.Type = entity.AppointmentType(req.Type)
	}
	if req.Status != "" && entity.AppointmentStatus(req.Status) != appointment.Status {
		appointment.ApplyStatus(entity.AppointmentStatus(req.Status), time.Now())
	}
	if req.ChiefComplaint != "" {
		appointment.ChiefComplaint = req.ChiefComplaint
	}
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}
	if req.ActualCost != "" {
		actualCost, err := parseNullDecimal(req.ActualCost)
		if err != nil {
			return nil, ErrInvalidCostFormat
		}
		appointment.ActualCost = actualCost
	}
	if req.PaymentStatus != "" {
		appointment.PaymentStatus = entity.PaymentStatus(req.PaymentStatus)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		if isExclusionError(err, "no_overlap") {
			return nil, ErrSlotUnavailable
		}
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(ctx, tx, &updatedBy, entity.AuditActionAppointmentUpdate, "appointment", appointment.ID.String(), oldValue, converter.AppointmentToResponse(appointment)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID, reason string, cancelledBy uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Single guarded UPDATE: cancelling an already-cancelled appointment
	// matches zero rows, so repeated cancellations never restamp
	// cancelled_at or overwrite the original reason.
	rows, err := u.appointmentRepo.CancelAppointment(tx, id, cancelledBy, reason, time.Now())
	if err != nil {
		u.log.Warnf("Failed to cancel appointment: %+v", err)
		return err
	}

	if rows == 0 {
		existing, err := u.appointmentRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find appointment by ID: %+v", err)
			return err
		}
		if existing == nil {
			return ErrAppointmentNotFound
		}
		return ErrAppointmentAlreadyCancelled
	}

	if err := u.auditService.Record(ctx, tx, &cancelledBy, entity.AuditActionAppointmentCancel, "appointment", id.String(), nil, entity.JSON{"reason": reason}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *appointmentUsecase) CheckAvailability(ctx context.Context, doctorID uuid.UUID, start time.Time, durationMinutes int, excludeID *uuid.UUID) (*dto.AvailabilityResponse, error) {
	if _, err := u.loadDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	availability, err := u.checker.CheckAvailability(ctx, doctorID, start, durationMinutes, excludeID)
	if err != nil {
		u.log.Warnf("Availability check failed: %+v", err)
		return nil, err
	}

	resp := &dto.AvailabilityResponse{Available: availability.Available}
	if !availability.Available {
		resp.Conflicts = converter.AppointmentsToResponses(availability.Conflicts)
		nextFree := availability.NextFree()
		resp.NextAvailable = &nextFree
	}

	return resp, nil
}

func (u *appointmentUsecase) DaySchedule(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]dto.AppointmentResponse, error) {
	if _, err := u.loadDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByDoctorAndDay(u.db.WithContext(ctx), doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to load day schedule: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) Upcoming(ctx context.Context, limit int) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindUpcoming(u.db.WithContext(ctx), limit)
	if err != nil {
		u.log.Warnf("Failed to load upcoming appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) Stats(ctx context.Context) (*entity.AppointmentStats, error) {
	stats, err := u.appointmentRepo.Stats(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load appointment stats: %+v", err)
		return nil, err
	}
	return stats, nil
}

// loadDoctor resolves a user id to an active doctor account.
func (u *appointmentUsecase) loadDoctor(ctx context.Context, doctorID uuid.UUID) (*entity.User, error) {
	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsActive() {
		return nil, ErrDoctorInactive
	}
	return doctor, nil
}

func parseNullDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

// generateAppointmentNumber builds a booking reference like A2026081234.
// Uniqueness is enforced by the database; callers retry on collision.
func generateAppointmentNumber(now time.Time) string {
	return fmt.Sprintf("A%s%04d", now.Format("200601"), rand.IntN(10000))
}
