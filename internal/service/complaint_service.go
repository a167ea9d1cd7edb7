package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campuscare/complaint-service/internal/domain"
	"github.com/campuscare/complaint-service/internal/events"
	"github.com/campuscare/complaint-service/internal/repository"
	apperrors "github.com/campuscare/complaint-service/pkg/util"
)

// ComplaintService coordinates complaint submission and the status
// lifecycle. Transition legality is enforced here, not in the client.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	dispatcher events.Dispatcher
}

// ComplaintDependencies bundles requirements for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	Dispatcher    events.Dispatcher
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ComplaintCreateInput describes a submission payload.
type ComplaintCreateInput struct {
	Type             domain.ComplaintType
	Category         string
	Urgency          domain.ComplaintUrgency
	Description      string
	Location         string
	PreferredTiming  *string
	MaterialProvided bool
}

// allowedTransitions is the server-side lifecycle: completed and rejected
// are terminal, rejection is admissible from any earlier state.
var allowedTransitions = map[domain.ComplaintStatus][]domain.ComplaintStatus{
	domain.ComplaintStatusNew:       {domain.ComplaintStatusPending, domain.ComplaintStatusRejected},
	domain.ComplaintStatusPending:   {domain.ComplaintStatusCompleted, domain.ComplaintStatusRejected},
	domain.ComplaintStatusCompleted: {},
	domain.ComplaintStatusRejected:  {},
}

func isValidTransition(current, next domain.ComplaintStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Create files a complaint for a user with status "new".
func (s *ComplaintService) Create(ctx context.Context, userID int64, input ComplaintCreateInput) (*domain.Complaint, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	complaint := &domain.Complaint{
		UserID:           userID,
		Type:             input.Type,
		Category:         input.Category,
		Urgency:          input.Urgency,
		Description:      strings.TrimSpace(input.Description),
		Location:         strings.TrimSpace(input.Location),
		PreferredTiming:  input.PreferredTiming,
		MaterialProvided: input.MaterialProvided,
		Status:           domain.ComplaintStatusNew,
	}

	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		ActorID:     userID,
		Payload: events.ComplaintCreatedPayload{
			Type:     complaint.Type,
			Category: complaint.Category,
			Urgency:  complaint.Urgency,
			Location: complaint.Location,
		},
	})
	return complaint, nil
}

// ListForUser returns the caller's complaints, newest first, each joined
// with the owner's name and email.
func (s *ComplaintService) ListForUser(ctx context.Context, userID int64) ([]domain.ComplaintWithOwner, error) {
	return s.complaints.ListByUser(ctx, userID)
}

// ListAll returns every complaint joined with owner profiles. Admin only.
func (s *ComplaintService) ListAll(ctx context.Context, actor *domain.User) ([]domain.ComplaintWithOwner, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("admin only")
	}
	return s.complaints.ListAllWithOwners(ctx)
}

// Transition moves a complaint to targetStatus on behalf of an admin.
// Rejection requires a non-empty reason; every other target clears the
// stored reason. Terminal states admit no further transitions.
func (s *ComplaintService) Transition(ctx context.Context, actor *domain.User, complaintID int64, targetStatus domain.ComplaintStatus, reason string) (*domain.Complaint, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("admin only")
	}

	switch targetStatus {
	case domain.ComplaintStatusNew, domain.ComplaintStatusPending,
		domain.ComplaintStatusCompleted, domain.ComplaintStatusRejected:
	default:
		return nil, apperrors.NewValidationError("unknown status")
	}

	reason = strings.TrimSpace(reason)
	var rejectionReason *string
	if targetStatus == domain.ComplaintStatusRejected {
		if reason == "" {
			return nil, apperrors.NewValidationError("rejection requires a reason")
		}
		rejectionReason = &reason
	}

	current, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint")
		}
		return nil, err
	}

	if !isValidTransition(current.Status, targetStatus) {
		return nil, apperrors.NewValidationError("illegal status transition")
	}

	updated, err := s.complaints.UpdateStatus(ctx, complaintID, targetStatus, rejectionReason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint")
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: updated.ID,
		ActorID:     actor.ID,
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus:       current.Status,
			NewStatus:       updated.Status,
			RejectionReason: reason,
		},
	})
	return updated, nil
}

func validateCreateInput(input ComplaintCreateInput) error {
	if _, ok := domain.CategoriesByType[input.Type]; !ok {
		return apperrors.NewValidationError("unknown complaint type")
	}
	if !domain.ValidCategory(input.Type, input.Category) {
		return apperrors.NewValidationError("invalid category for complaint type")
	}
	if input.Urgency != domain.UrgencyUrgent && input.Urgency != domain.UrgencyGeneral {
		return apperrors.NewValidationError("invalid urgency")
	}
	if strings.TrimSpace(input.Description) == "" {
		return apperrors.NewValidationError("description required")
	}
	if strings.TrimSpace(input.Location) == "" {
		return apperrors.NewValidationError("location required")
	}
	return nil
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
