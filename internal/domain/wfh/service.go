package wfh

import (
	"context"
)

// WFHService defines business logic for work-from-home requests and the
// monthly quota.
type WFHService interface {
	// CheckEligibility reports the authenticated employee's WFH usage for a
	// month against the configured quota
	CheckEligibility(ctx context.Context, year int, month int) (EligibilityResponse, error)

	// CreateRequest files a new WFH request for the authenticated employee
	CreateRequest(ctx context.Context, req CreateWFHRequest) (WFHRequestResponse, error)

	// ListMyRequests retrieves the authenticated employee's requests
	ListMyRequests(ctx context.Context) ([]WFHRequestResponse, error)

	// Review approves or rejects a pending request (admin only)
	Review(ctx context.Context, id string, req ReviewWFHRequest) (WFHRequestResponse, error)
}
