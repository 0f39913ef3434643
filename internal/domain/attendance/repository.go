package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// The (employee_id, date) pair is unique at the storage layer; Create
// surfaces that violation rather than relying on a prior existence check.
type AttendanceRepository interface {
	// Create inserts a new checked-in record
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for an employee on a date,
	// or nil when none exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// CompleteCheckOut transitions a checked-in record to checked-out with a
	// single conditional update (check_out IS NULL guard). Work hours and the
	// half-day flag are computed in the same statement. Returns
	// ErrAttendanceNotFound when no open record matched.
	CompleteCheckOut(ctx context.Context, employeeID string, date time.Time, checkOut time.Time, lat, lng *float64, photoURL *string, halfDayBelowHours float64) (workHours float64, isHalfDay bool, err error)

	// List retrieves records matching the filter, ordered by date descending
	// then creation time descending
	List(ctx context.Context, filter RecordFilter) ([]Attendance, int64, error)

	// CountWFHDaysInMonth counts wfh-type records for an employee within a
	// calendar month
	CountWFHDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error)

	// MonthlyStats aggregates an employee's records for a calendar month
	MonthlyStats(ctx context.Context, employeeID string, year int, month time.Month) (MonthlyStats, error)
}
