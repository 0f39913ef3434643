package wfh

import (
	"strings"

	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

type CreateWFHRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"date"` // YYYY-MM-DD
	Reason     string `json:"reason"`
}

func (r *CreateWFHRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewWFHRequest struct {
	Status string `json:"status"` // approved, rejected
}

func (r *ReviewWFHRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(strings.ToLower(r.Status), []string{string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: approved, rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WFHRequestResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

func (r *WFHRequest) ToResponse() WFHRequestResponse {
	return WFHRequestResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Date:       r.Date.Format("2006-01-02"),
		Reason:     r.Reason,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

type EligibilityResponse struct {
	Year         int  `json:"year"`
	Month        int  `json:"month"`
	CurrentCount int  `json:"current_count"`
	MaxLimit     int  `json:"max_limit"`
	CanRequest   bool `json:"can_request"`
}
