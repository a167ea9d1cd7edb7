package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/campuscare/complaint-service/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence. Authorization is
// the caller's concern; no ownership checks happen at this layer.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id int64) (*domain.Complaint, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.ComplaintWithOwner, error)
	ListAllWithOwners(ctx context.Context) ([]domain.ComplaintWithOwner, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus, rejectionReason *string) (*domain.Complaint, error)
}

type complaintRepository struct {
	db DB
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(db DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

const complaintColumns = `id, user_id, type, category, urgency, description, location,
               preferred_timing, material_provided, status, rejection_reason,
               created_at, updated_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (user_id, type, category, urgency, description, location,
                                preferred_timing, material_provided, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		complaint.UserID,
		complaint.Type,
		complaint.Category,
		complaint.Urgency,
		complaint.Description,
		complaint.Location,
		complaint.PreferredTiming,
		complaint.MaterialProvided,
		complaint.Status,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	const query = `
        SELECT ` + complaintColumns + `
        FROM complaints WHERE id=$1`

	var complaint domain.Complaint
	if err := scanComplaint(r.db.QueryRow(ctx, query, id), &complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ComplaintWithOwner, error) {
	const query = `
        SELECT c.id, c.user_id, c.type, c.category, c.urgency, c.description, c.location,
               c.preferred_timing, c.material_provided, c.status, c.rejection_reason,
               c.created_at, c.updated_at,
               u.name, u.email
        FROM complaints c
        JOIN users u ON c.user_id = u.id
        WHERE c.user_id=$1
        ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.ComplaintWithOwner{}
	for rows.Next() {
		var item domain.ComplaintWithOwner
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Type,
			&item.Category,
			&item.Urgency,
			&item.Description,
			&item.Location,
			&item.PreferredTiming,
			&item.MaterialProvided,
			&item.Status,
			&item.RejectionReason,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Owner.Name,
			&item.Owner.Email,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *complaintRepository) ListAllWithOwners(ctx context.Context) ([]domain.ComplaintWithOwner, error) {
	const query = `
        SELECT c.id, c.user_id, c.type, c.category, c.urgency, c.description, c.location,
               c.preferred_timing, c.material_provided, c.status, c.rejection_reason,
               c.created_at, c.updated_at,
               u.name, u.email, u.phone, u.designation, COALESCE(u.employee_id, ''), u.address
        FROM complaints c
        JOIN users u ON c.user_id = u.id
        ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.ComplaintWithOwner{}
	for rows.Next() {
		var item domain.ComplaintWithOwner
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Type,
			&item.Category,
			&item.Urgency,
			&item.Description,
			&item.Location,
			&item.PreferredTiming,
			&item.MaterialProvided,
			&item.Status,
			&item.RejectionReason,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Owner.Name,
			&item.Owner.Email,
			&item.Owner.Phone,
			&item.Owner.Designation,
			&item.Owner.EmployeeID,
			&item.Owner.Address,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus, rejectionReason *string) (*domain.Complaint, error) {
	const query = `
        UPDATE complaints
        SET status=$1, rejection_reason=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING ` + complaintColumns

	var complaint domain.Complaint
	if err := scanComplaint(r.db.QueryRow(ctx, query, status, rejectionReason, id), &complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func scanComplaint(row pgx.Row, complaint *domain.Complaint) error {
	return row.Scan(
		&complaint.ID,
		&complaint.UserID,
		&complaint.Type,
		&complaint.Category,
		&complaint.Urgency,
		&complaint.Description,
		&complaint.Location,
		&complaint.PreferredTiming,
		&complaint.MaterialProvided,
		&complaint.Status,
		&complaint.RejectionReason,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	)
}
