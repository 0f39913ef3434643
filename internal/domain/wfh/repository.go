package wfh

import (
	"context"
)

// WFHRepository defines data access methods for WFH requests. The
// (employee_id, date) pair is unique at the storage layer.
type WFHRepository interface {
	// Create inserts a new pending request
	Create(ctx context.Context, req WFHRequest) (WFHRequest, error)

	// GetByID retrieves a request by ID
	GetByID(ctx context.Context, id string) (WFHRequest, error)

	// ListByEmployee retrieves an employee's requests, newest first
	ListByEmployee(ctx context.Context, employeeID string) ([]WFHRequest, error)

	// UpdateStatus moves a pending request to approved or rejected with a
	// conditional update (status = 'pending' guard). Returns
	// ErrInvalidStatusChange when no pending request matched.
	UpdateStatus(ctx context.Context, id string, status Status) (WFHRequest, error)
}
