package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyMarked    = errors.New("attendance already marked for this date")
	ErrWFHLimitExceeded = errors.New("WFH limit exceeded for this month")

	// Check-out errors
	ErrNotCheckedIn          = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut     = errors.New("you have already checked out")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time must be after check-in time")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
