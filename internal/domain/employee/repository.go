package employee

import "context"

// EmployeeRepository defines data access methods for employee accounts.
type EmployeeRepository interface {
	// Create creates a new employee account
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByID retrieves an employee by ID
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByUsername retrieves an active employee by username, used for login
	GetByUsername(ctx context.Context, username string) (Employee, error)

	// List retrieves employee accounts matching the filter
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)

	// Update updates mutable employee fields
	Update(ctx context.Context, emp Employee) error

	// Deactivate soft-deletes an employee account
	Deactivate(ctx context.Context, id string) error
}
