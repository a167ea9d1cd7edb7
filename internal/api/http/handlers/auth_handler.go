package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/campuscare/complaint-service/internal/api/dto"
	"github.com/campuscare/complaint-service/internal/domain"
	"github.com/campuscare/complaint-service/internal/service"
	apperrors "github.com/campuscare/complaint-service/pkg/util"
)

// AuthHandler exposes signup, login and password recovery endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return apperrors.NewValidationError("name, email, password required")
	}
	if req.SecurityAnswer == "" {
		return apperrors.NewValidationError("security answer required")
	}

	user, token, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:            req.Email,
		Password:         req.Password,
		Name:             req.Name,
		Phone:            req.Phone,
		Designation:      req.Designation,
		EmployeeID:       req.EmployeeID,
		Address:          req.Address,
		SecurityQuestion: domain.SecurityQuestion(req.SecurityQuestion),
		SecurityAnswer:   req.SecurityAnswer,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		User:  dto.NewUserResponse(user),
		Token: token,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required")
	}

	user, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		User:  dto.NewUserResponse(user),
		Token: token,
	})
}

// VerifySecurity handles POST /auth/verify-security.
func (h *AuthHandler) VerifySecurity(c *fiber.Ctx) error {
	var req dto.VerifySecurityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.SecurityAnswer == "" {
		return apperrors.NewValidationError("email and security answer required")
	}

	if err := h.auth.VerifySecurityAnswer(c.UserContext(), req.Email, req.SecurityAnswer); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"verified": true})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("email and new password required")
	}

	if err := h.auth.ResetPassword(c.UserContext(), req.Email, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Password reset successful"})
}
