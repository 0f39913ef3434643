package employee

import "context"

// EmployeeService defines admin-facing employee account management.
type EmployeeService interface {
	// List retrieves employee accounts matching the filter
	List(ctx context.Context, filter EmployeeFilter) (ListEmployeesResponse, error)

	// Get retrieves a single employee by ID
	Get(ctx context.Context, id string) (EmployeeResponse, error)

	// Update updates mutable account fields
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Deactivate soft-deletes an account so its history survives
	Deactivate(ctx context.Context, id string) error
}
