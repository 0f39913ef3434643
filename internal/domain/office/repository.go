package office

import "context"

// OfficeRepository defines data access methods for office locations and
// the department access relation.
type OfficeRepository interface {
	// Create inserts a new office location
	Create(ctx context.Context, o Office) (Office, error)

	// GetByID retrieves an office by ID
	GetByID(ctx context.Context, id string) (Office, error)

	// ListAll retrieves every office including inactive ones (admin view)
	ListAll(ctx context.Context) ([]Office, error)

	// ListAccessibleByDepartment retrieves active offices a department may use
	ListAccessibleByDepartment(ctx context.Context, department string) ([]Office, error)

	// Update updates mutable office fields
	Update(ctx context.Context, o Office) error

	// Deactivate soft-deletes an office
	Deactivate(ctx context.Context, id string) error

	// GrantDepartmentAccess links a department to an office
	GrantDepartmentAccess(ctx context.Context, department string, officeID string) error

	// RevokeDepartmentAccess removes a department/office link
	RevokeDepartmentAccess(ctx context.Context, department string, officeID string) error
}
