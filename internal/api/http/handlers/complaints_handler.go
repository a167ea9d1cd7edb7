package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/campuscare/complaint-service/internal/api/dto"
	"github.com/campuscare/complaint-service/internal/auth"
	"github.com/campuscare/complaint-service/internal/domain"
	"github.com/campuscare/complaint-service/internal/service"
	apperrors "github.com/campuscare/complaint-service/pkg/util"
)

// ComplaintsHandler exposes complaint submission and triage endpoints.
type ComplaintsHandler struct {
	complaints *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaintService}
}

// Create handles POST /complaints.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	complaint, err := h.complaints.Create(c.UserContext(), principal.User.ID, service.ComplaintCreateInput{
		Type:             domain.ComplaintType(req.Type),
		Category:         req.Category,
		Urgency:          domain.ComplaintUrgency(req.Urgency),
		Description:      req.Description,
		Location:         req.Location,
		PreferredTiming:  req.PreferredTiming,
		MaterialProvided: req.MaterialProvided,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewComplaintResponse(complaint))
}

// ListOwn handles GET /complaints.
func (h *ComplaintsHandler) ListOwn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	complaints, err := h.complaints.ListForUser(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOwnedComplaintListResponse(complaints))
}

// ListAll handles GET /complaints/admin.
func (h *ComplaintsHandler) ListAll(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	items, err := h.complaints.ListAll(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAdminComplaintListResponse(items))
}

// UpdateStatus handles PATCH /complaints/:id/status.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid complaint id")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	complaint, err := h.complaints.Transition(c.UserContext(), principal.User, id,
		domain.ComplaintStatus(req.Status), req.RejectionReason)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewComplaintResponse(complaint))
}
