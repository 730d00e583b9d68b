package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents a staff member's role
type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleDoctor       UserRole = "doctor"
	RoleNurse        UserRole = "nurse"
	RoleReceptionist UserRole = "receptionist"
)

// UserStatus represents a staff account status
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// User represents a staff member (doctors, nurses, receptionists, admins)
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"type:text;not null" json:"-"`
	FirstName    string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Phone        string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role         UserRole   `gorm:"type:user_role;not null;index" json:"role"`
	Status       UserStatus `gorm:"type:user_status;not null;default:'active';index" json:"status"`

	// Medical staff specific fields
	LicenseNumber  string `gorm:"type:varchar(100)" json:"license_number,omitempty"`
	Specialization string `gorm:"type:varchar(200)" json:"specialization,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsActive checks if the staff account can be used
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsDoctor checks if the user is an active practitioner
func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

// FullName returns the display name of the staff member
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
