package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
// The per-day state machine is: no record (absent) -> checked in -> checked
// out; checked out is terminal for that date.
type AttendanceService interface {
	// MarkAttendance processes employee check-in; a WFH check-in is gated by
	// the monthly quota
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (MarkAttendanceResponse, error)

	// CheckOut transitions the day's record to checked-out and returns the
	// computed work hours and half-day flag
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckOutResponse, error)

	// GetTodayAttendance returns the authenticated employee's record for
	// today, or nil when none exists
	GetTodayAttendance(ctx context.Context) (*AttendanceResponse, error)

	// ListRecords retrieves attendance records with optional filters
	ListRecords(ctx context.Context, filter RecordFilter) (ListAttendanceResponse, error)

	// GetMonthlyStats aggregates the authenticated employee's month
	GetMonthlyStats(ctx context.Context, year int, month int) (MonthlyStatsResponse, error)
}
