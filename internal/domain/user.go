package domain

import "time"

// Role enumerates account privilege levels.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// SecurityQuestion tags the recovery question chosen at signup.
type SecurityQuestion string

const (
	SecurityQuestionLastName  SecurityQuestion = "lastName"
	SecurityQuestionFavColour SecurityQuestion = "favColour"
)

// User is the domain model for staff who submit complaints.
type User struct {
	ID               int64
	Email            string
	PasswordHash     string
	Name             string
	Phone            string
	Designation      string
	EmployeeID       string
	Address          string
	SecurityQuestion SecurityQuestion
	// SecurityAnswer is stored lowercase so recovery checks are
	// case-insensitive.
	SecurityAnswer string
	Role           Role
	CreatedAt      time.Time
}

// IsAdmin reports whether the account carries admin privileges.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
