package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

// Create implements attendance.AttendanceRepository.
// The attendance_records table carries a unique constraint on
// (employee_id, date); a violation surfaces as a pgconn.PgError with
// code 23505 for the service layer to map.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, date, check_in, check_in_type,
			check_in_latitude, check_in_longitude, check_in_photo_url,
			office_id, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.CheckIn,
		newAttendance.CheckInType,
		newAttendance.CheckInLatitude,
		newAttendance.CheckInLongitude,
		newAttendance.CheckInPhotoURL,
		newAttendance.OfficeID,
		newAttendance.Status,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, err
	}

	return newAttendance, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.employee_id, a.date, a.check_in, a.check_in_type,
			   a.check_in_latitude, a.check_in_longitude, a.check_in_photo_url,
			   a.office_id, a.status,
			   a.check_out, a.check_out_latitude, a.check_out_longitude, a.check_out_photo_url,
			   a.work_hours, a.is_half_day,
			   a.created_at, a.updated_at,
			   o.name AS office_name,
			   o.address AS office_address
		FROM attendance_records a
		LEFT JOIN offices o ON o.id = a.office_id
		WHERE a.employee_id = $1
		  AND a.date = $2
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckInType,
		&att.CheckInLatitude, &att.CheckInLongitude, &att.CheckInPhotoURL,
		&att.OfficeID, &att.Status,
		&att.CheckOut, &att.CheckOutLatitude, &att.CheckOutLongitude, &att.CheckOutPhotoURL,
		&att.WorkHours, &att.IsHalfDay,
		&att.CreatedAt, &att.UpdatedAt,
		&att.OfficeName, &att.OfficeAddress,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No record for this date
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// CompleteCheckOut implements attendance.AttendanceRepository.
// Work hours and the half-day flag are computed inside the UPDATE; the
// check_out IS NULL guard makes concurrent check-outs lose cleanly.
func (a *attendanceRepository) CompleteCheckOut(ctx context.Context, employeeID string, date time.Time, checkOut time.Time, lat, lng *float64, photoURL *string, halfDayBelowHours float64) (float64, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_out = $3,
			check_out_latitude = $4,
			check_out_longitude = $5,
			check_out_photo_url = $6,
			work_hours = ROUND((EXTRACT(EPOCH FROM ($3 - check_in)) / 3600.0)::numeric, 2),
			is_half_day = (EXTRACT(EPOCH FROM ($3 - check_in)) / 3600.0) < $7,
			updated_at = NOW()
		WHERE employee_id = $1
		  AND date = $2
		  AND check_out IS NULL
		RETURNING work_hours, is_half_day
	`

	var workHours float64
	var isHalfDay bool
	err := q.QueryRow(ctx, query, employeeID, date, checkOut, lat, lng, photoURL, halfDayBelowHours).Scan(&workHours, &isHalfDay)

	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, false, attendance.ErrAttendanceNotFound
		}
		return 0, false, fmt.Errorf("failed to complete check-out: %w", err)
	}

	return workHours, isHalfDay, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	// Employee ID filter
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	// Date range filters; bound as date values so the driver encodes them
	// with the column's type
	if filter.StartDate != nil && *filter.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", *filter.StartDate)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse start_date: %w", err)
		}
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, startDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", *filter.EndDate)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse end_date: %w", err)
		}
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, endDate)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM attendance_records a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	// Build query with pagination
	selectQuery := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.date, a.check_in, a.check_in_type,
			   a.check_in_latitude, a.check_in_longitude, a.check_in_photo_url,
			   a.office_id, a.status,
			   a.check_out, a.check_out_latitude, a.check_out_longitude, a.check_out_photo_url,
			   a.work_hours, a.is_half_day,
			   a.created_at, a.updated_at,
			   e.name AS employee_name,
			   e.department AS department,
			   o.name AS office_name,
			   o.address AS office_address
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		LEFT JOIN offices o ON o.id = a.office_id
		WHERE %s
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckInType,
			&att.CheckInLatitude, &att.CheckInLongitude, &att.CheckInPhotoURL,
			&att.OfficeID, &att.Status,
			&att.CheckOut, &att.CheckOutLatitude, &att.CheckOutLongitude, &att.CheckOutPhotoURL,
			&att.WorkHours, &att.IsHalfDay,
			&att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName, &att.Department,
			&att.OfficeName, &att.OfficeAddress,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, att)
	}

	return records, total, nil
}

// CountWFHDaysInMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountWFHDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(*)
		FROM attendance_records
		WHERE employee_id = $1
		  AND check_in_type = 'wfh'
		  AND EXTRACT(YEAR FROM date) = $2
		  AND EXTRACT(MONTH FROM date) = $3
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, year, int(month)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count WFH days: %w", err)
	}

	return count, nil
}

// MonthlyStats implements attendance.AttendanceRepository.
func (a *attendanceRepository) MonthlyStats(ctx context.Context, employeeID string, year int, month time.Month) (attendance.MonthlyStats, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(*) AS total_days,
			   COALESCE(SUM(work_hours), 0) AS total_hours,
			   COUNT(*) FILTER (WHERE is_half_day) AS half_days,
			   COUNT(*) FILTER (WHERE check_in_type = 'wfh') AS wfh_days,
			   COUNT(*) FILTER (WHERE check_in_type = 'office') AS office_days,
			   COUNT(*) FILTER (WHERE check_in_type = 'client') AS client_days
		FROM attendance_records
		WHERE employee_id = $1
		  AND EXTRACT(YEAR FROM date) = $2
		  AND EXTRACT(MONTH FROM date) = $3
	`

	var stats attendance.MonthlyStats
	err := q.QueryRow(ctx, query, employeeID, year, int(month)).Scan(
		&stats.TotalDays,
		&stats.TotalHours,
		&stats.HalfDays,
		&stats.WFHDays,
		&stats.OfficeDays,
		&stats.ClientDays,
	)

	if err != nil {
		return attendance.MonthlyStats{}, fmt.Errorf("failed to get monthly stats: %w", err)
	}

	return stats, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
