package employee

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Can manage employees and offices
	RoleEmployee Role = "employee" // Regular employee
)

type Employee struct {
	ID              string
	Username        string
	PasswordHash    string
	Name            string
	Email           string
	Phone           string
	Department      string
	PrimaryOfficeID *string
	Role            Role
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if the employee has administrator access
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
