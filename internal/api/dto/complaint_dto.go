package dto

import (
	"time"

	"github.com/campuscare/complaint-service/internal/domain"
)

// CreateComplaintRequest payload for filing a complaint.
type CreateComplaintRequest struct {
	Type             string  `json:"type"`
	Category         string  `json:"category"`
	Urgency          string  `json:"urgency"`
	Description      string  `json:"description"`
	Location         string  `json:"location"`
	PreferredTiming  *string `json:"preferred_timing"`
	MaterialProvided bool    `json:"material_provided"`
}

// UpdateStatusRequest payload for admin status transitions.
type UpdateStatusRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason"`
}

// ComplaintResponse is the wire view of a complaint.
type ComplaintResponse struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Type             string    `json:"type"`
	Category         string    `json:"category"`
	Urgency          string    `json:"urgency"`
	Description      string    `json:"description"`
	Location         string    `json:"location"`
	PreferredTiming  *string   `json:"preferred_timing"`
	MaterialProvided bool      `json:"material_provided"`
	Status           string    `json:"status"`
	RejectionReason  *string   `json:"rejection_reason"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OwnedComplaintResponse is a row in the caller's own listing, joined with
// the owner's name and email.
type OwnedComplaintResponse struct {
	ComplaintResponse
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// AdminComplaintResponse extends ComplaintResponse with the owner's
// public profile for triage listings.
type AdminComplaintResponse struct {
	ComplaintResponse
	UserName        string `json:"user_name"`
	UserEmail       string `json:"user_email"`
	UserPhone       string `json:"user_phone"`
	UserDesignation string `json:"user_designation"`
	UserEmployeeID  string `json:"user_employee_id"`
	UserAddress     string `json:"user_address"`
}

// NewComplaintResponse maps a domain complaint to its wire view.
func NewComplaintResponse(c *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:               c.ID,
		UserID:           c.UserID,
		Type:             string(c.Type),
		Category:         c.Category,
		Urgency:          string(c.Urgency),
		Description:      c.Description,
		Location:         c.Location,
		PreferredTiming:  c.PreferredTiming,
		MaterialProvided: c.MaterialProvided,
		Status:           string(c.Status),
		RejectionReason:  c.RejectionReason,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// NewOwnedComplaintListResponse maps the caller's joined complaint rows.
func NewOwnedComplaintListResponse(items []domain.ComplaintWithOwner) []OwnedComplaintResponse {
	result := make([]OwnedComplaintResponse, 0, len(items))
	for i := range items {
		item := &items[i]
		result = append(result, OwnedComplaintResponse{
			ComplaintResponse: NewComplaintResponse(&item.Complaint),
			UserName:          item.Owner.Name,
			UserEmail:         item.Owner.Email,
		})
	}
	return result
}

// NewAdminComplaintListResponse maps joined complaint/owner rows.
func NewAdminComplaintListResponse(items []domain.ComplaintWithOwner) []AdminComplaintResponse {
	result := make([]AdminComplaintResponse, 0, len(items))
	for i := range items {
		item := &items[i]
		result = append(result, AdminComplaintResponse{
			ComplaintResponse: NewComplaintResponse(&item.Complaint),
			UserName:          item.Owner.Name,
			UserEmail:         item.Owner.Email,
			UserPhone:         item.Owner.Phone,
			UserDesignation:   item.Owner.Designation,
			UserEmployeeID:    item.Owner.EmployeeID,
			UserAddress:       item.Owner.Address,
		})
	}
	return result
}
