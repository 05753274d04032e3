package auth

import (
	"time"

	"go-employee-admin/internal/domain"
	"go-employee-admin/internal/employee"
)

type LoginRequest struct {
	Email string `json:"email" binding:"required,emailaddr"`
}

type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Employee  domain.Employee `json:"employee"`
}

// UpdateProfileRequest carries the same fields as an employee update.
type UpdateProfileRequest = employee.UpdateEmployeeRequest
