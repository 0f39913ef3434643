package response

import (
	"errors"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/auth"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/office"
	"github.com/attendly/attendance-backend-go/internal/domain/wfh"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUsernameOrEmailExists):
		Conflict(w, "Username or email already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is deactivated")

	// Office domain errors
	case errors.Is(err, office.ErrOfficeNotFound):
		NotFound(w, "Office not found")
	case errors.Is(err, office.ErrGeofenceNotConfigured):
		BadRequest(w, "Office has no geofence configured", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyMarked):
		Conflict(w, "Attendance already marked for this date")
	case errors.Is(err, attendance.ErrWFHLimitExceeded):
		BadRequest(w, "WFH limit exceeded for this month", nil)
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No check-in found for this date", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out for this date")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out time must be after check-in time", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// WFH domain errors
	case errors.Is(err, wfh.ErrRequestNotFound):
		NotFound(w, "WFH request not found")
	case errors.Is(err, wfh.ErrDuplicateRequest):
		Conflict(w, "A WFH request already exists for this date")
	case errors.Is(err, wfh.ErrQuotaExceeded):
		BadRequest(w, "WFH quota exceeded for this month", nil)
	case errors.Is(err, wfh.ErrInvalidStatusChange):
		Conflict(w, "WFH request already processed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
