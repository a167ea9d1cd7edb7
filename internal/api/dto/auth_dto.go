package dto

import (
	"time"

	"github.com/campuscare/complaint-service/internal/domain"
)

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Designation      string `json:"designation"`
	EmployeeID       string `json:"employee_id"`
	Address          string `json:"address"`
	SecurityQuestion string `json:"securityQuestion"`
	SecurityAnswer   string `json:"securityAnswer"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifySecurityRequest payload for the recovery-answer check.
type VerifySecurityRequest struct {
	Email          string `json:"email"`
	SecurityAnswer string `json:"securityAnswer"`
}

// ResetPasswordRequest payload for password reset.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// UserResponse is the public view of an account; password and security
// fields never leave the server.
type UserResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	Designation string    `json:"designation,omitempty"`
	EmployeeID  string    `json:"employee_id,omitempty"`
	Address     string    `json:"address,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// NewUserResponse maps a domain user to its public view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Phone:       user.Phone,
		Designation: user.Designation,
		EmployeeID:  user.EmployeeID,
		Address:     user.Address,
		Role:        string(user.Role),
		CreatedAt:   user.CreatedAt,
	}
}
