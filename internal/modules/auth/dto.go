package auth

import "salonpos/internal/domain"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// RegisterStaffRequest is admin-only: staff accounts are provisioned, never
// self-registered.
type RegisterStaffRequest struct {
	Email        string          `json:"email" validate:"required,email"`
	Password     string          `json:"password" validate:"required,min=8"`
	Name         string          `json:"name" validate:"required"`
	Phone        string          `json:"phone"`
	Role         domain.UserRole `json:"role" validate:"required,oneof=admin manager staff"`
	EmployeeRole string          `json:"employee_role"`
	BranchID     *int64          `json:"branch_id"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
