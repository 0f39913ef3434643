package office

import (
	"context"
)

// OfficeService defines business logic for office locations and geofencing.
type OfficeService interface {
	// AccessibleOffices returns active offices the department may check in at
	AccessibleOffices(ctx context.Context, department string) ([]OfficeResponse, error)

	// CheckProximity computes the caller's distance to an office geofence
	CheckProximity(ctx context.Context, req CheckLocationRequest) (ProximityResponse, error)

	// Create creates an office and its department access grants atomically
	Create(ctx context.Context, req CreateOfficeRequest) (OfficeResponse, error)

	// Get retrieves a single office by ID
	Get(ctx context.Context, id string) (OfficeResponse, error)

	// ListAll retrieves every office including inactive ones
	ListAll(ctx context.Context) ([]OfficeResponse, error)

	// Update updates office fields
	Update(ctx context.Context, req UpdateOfficeRequest) (OfficeResponse, error)

	// Deactivate soft-deletes an office
	Deactivate(ctx context.Context, id string) error
}
