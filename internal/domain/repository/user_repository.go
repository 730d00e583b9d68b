package repository

import (
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindAll(db *gorm.DB, role entity.UserRole, status entity.UserStatus) ([]entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	CountByStatus(db *gorm.DB, status entity.UserStatus) (int64, error)
}
