package usecase

import (
	"context"
	"fmt"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StaffUsecase interface {
	Create(ctx context.Context, req *dto.CreateStaffRequest, createdBy uuid.UUID) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	List(ctx context.Context, role, status string) (*dto.StaffListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateStaffRequest, updatedBy uuid.UUID) (*dto.UserResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID, deactivatedBy uuid.UUID) error
}

type staffUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	redisClient  *redis.Client
	auditService service.AuditService
}

func NewStaffUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	redisClient *redis.Client,
	auditService service.AuditService,
) StaffUsecase {
	return &staffUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		redisClient:  redisClient,
		auditService: auditService,
	}
}

func (u *staffUsecase) Create(ctx context.Context, req *dto.CreateStaffRequest, createdBy uuid.UUID) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:          req.Email,
		Password:       string(hashedPassword),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Role:           entity.UserRole(req.Role),
		Status:         entity.UserStatusActive,
		LicenseNumber:  req.LicenseNumber,
		Specialization: req.Specialization,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create staff account: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(ctx, tx, &createdBy, entity.AuditActionStaffCreate, "user", user.ID.String(), nil, converter.UserToResponse(user)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *staffUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find staff by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *staffUsecase) List(ctx context.Context, role, status string) (*dto.StaffListResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx), entity.UserRole(role), entity.UserStatus(status))
	if err != nil {
		u.log.Warnf("Failed to list staff: %+v", err)
		return nil, err
	}

	return &dto.StaffListResponse{
		Staff: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

func (u *staffUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateStaffRequest, updatedBy uuid.UUID) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find staff by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	oldValue := converter.UserToResponse(user)

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Status != "" {
		user.Status = entity.UserStatus(req.Status)
	}
	if req.LicenseNumber != "" {
		user.LicenseNumber = req.LicenseNumber
	}
	if req.Specialization != "" {
		user.Specialization = req.Specialization
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update staff: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(ctx, tx, &updatedBy, entity.AuditActionStaffUpdate, "user", user.ID.String(), oldValue, converter.UserToResponse(user)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Suspending or deactivating an account kills its live sessions
	if user.Status != entity.UserStatusActive {
		if err := u.revokeUserTokens(ctx, user.ID); err != nil {
			u.log.Warnf("Failed to revoke tokens for %s: %+v", user.ID, err)
		}
	}

	return converter.UserToResponse(user), nil
}

func (u *staffUsecase) Deactivate(ctx context.Context, id uuid.UUID, deactivatedBy uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find staff by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	oldStatus := user.Status
	user.Status = entity.UserStatusInactive

	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to deactivate staff: %+v", err)
		return err
	}

	if err := u.auditService.Record(ctx, tx, &deactivatedBy, entity.AuditActionStaffDeactivate, "user", user.ID.String(), oldStatus, user.Status); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.revokeUserTokens(ctx, user.ID); err != nil {
		u.log.Warnf("Failed to revoke tokens for %s: %+v", user.ID, err)
	}

	return nil
}

// revokeUserTokens deletes every access and refresh token the user
// still holds in Redis.
func (u *staffUsecase) revokeUserTokens(ctx context.Context, userID uuid.UUID) error {
	patterns := []string{
		fmt.Sprintf("access_token:%s:*", userID.String()),
		fmt.Sprintf("refresh_token:%s:*", userID.String()),
	}

	for _, pattern := range patterns {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
	}

	return nil
}
