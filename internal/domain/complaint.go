package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusNew       ComplaintStatus = "new"
	ComplaintStatusPending   ComplaintStatus = "pending"
	ComplaintStatusCompleted ComplaintStatus = "completed"
	ComplaintStatusRejected  ComplaintStatus = "rejected"
)

// IsTerminal reports whether no further transitions are permitted.
func (s ComplaintStatus) IsTerminal() bool {
	return s == ComplaintStatusCompleted || s == ComplaintStatusRejected
}

// ComplaintType enumerates where a complaint originates.
type ComplaintType string

const (
	ComplaintTypePersonal     ComplaintType = "personal"
	ComplaintTypeHostel       ComplaintType = "hostel"
	ComplaintTypeDepartmental ComplaintType = "departmental"
)

// ComplaintUrgency enumerates handling priority.
type ComplaintUrgency string

const (
	UrgencyUrgent  ComplaintUrgency = "urgent"
	UrgencyGeneral ComplaintUrgency = "general"
)

// CategoriesByType maps each complaint type to its admissible categories.
var CategoriesByType = map[ComplaintType][]string{
	ComplaintTypePersonal:     {"inside house", "outside house", "street line"},
	ComplaintTypeDepartmental: {"cabin", "classroom", "project", "lab"},
	ComplaintTypeHostel:       {"fan", "light"},
}

// ValidCategory reports whether category is admissible for the given type.
func ValidCategory(t ComplaintType, category string) bool {
	for _, c := range CategoriesByType[t] {
		if c == category {
			return true
		}
	}
	return false
}

// Complaint is the aggregate for maintenance requests.
type Complaint struct {
	ID               int64
	UserID           int64
	Type             ComplaintType
	Category         string
	Urgency          ComplaintUrgency
	Description      string
	Location         string
	PreferredTiming  *string
	MaterialProvided bool
	Status           ComplaintStatus
	RejectionReason  *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OwnerProfile carries the public profile fields of a complaint's owner.
type OwnerProfile struct {
	Name        string
	Email       string
	Phone       string
	Designation string
	EmployeeID  string
	Address     string
}

// ComplaintWithOwner joins a complaint with its owner's public profile
// for admin listings.
type ComplaintWithOwner struct {
	Complaint
	Owner OwnerProfile
}
