package dto

// Request DTOs

type CreateStaffRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	Phone          string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Role           string `json:"role" validate:"required,oneof=admin doctor nurse receptionist"`
	LicenseNumber  string `json:"license_number,omitempty" validate:"omitempty,max=100"`
	Specialization string `json:"specialization,omitempty" validate:"omitempty,max=200"`
}

type UpdateStaffRequest struct {
	FirstName      string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName       string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Phone          string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Status         string `json:"status,omitempty" validate:"omitempty,oneof=active inactive suspended"`
	LicenseNumber  string `json:"license_number,omitempty" validate:"omitempty,max=100"`
	Specialization string `json:"specialization,omitempty" validate:"omitempty,max=200"`
}

// Response DTOs

type StaffListResponse struct {
	Staff []UserResponse `json:"staff"`
	Total int            `json:"total"`
}
