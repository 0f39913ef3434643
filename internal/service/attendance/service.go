package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/office"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	office.OfficeRepository
	fileService file.FileService

	loc             *time.Location
	wfhMonthlyLimit int
	halfDayHours    float64
}

// MarkAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}

	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}

	checkIn, err := time.Parse(time.RFC3339, req.CheckIn)
	if err != nil {
		return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to parse check_in time: %w", err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	checkInType := attendance.CheckInType(strings.ToLower(req.Type))

	// An office check-in must reference a real office
	if checkInType == attendance.TypeOffice {
		if _, err := a.OfficeRepository.GetByID(ctx, *req.OfficeID); err != nil {
			return attendance.MarkAttendanceResponse{}, err
		}
	}

	// The WFH quota is checked against the month being marked, not the
	// current month
	if checkInType == attendance.TypeWFH {
		count, err := a.AttendanceRepository.CountWFHDaysInMonth(ctx, employeeID, date.Year(), date.Month())
		if err != nil {
			return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to count WFH days: %w", err)
		}
		if count >= a.wfhMonthlyLimit {
			return attendance.MarkAttendanceResponse{}, attendance.ErrWFHLimitExceeded
		}
	}

	var photoURL *string
	if req.Photo != nil && *req.Photo != "" {
		url, err := a.fileService.UploadAttendanceProof(ctx, employeeID, req.Date, *req.Photo, "check-in")
		if err != nil {
			return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to upload attendance proof: %w", err)
		}
		photoURL = &url
	}

	data := attendance.Attendance{
		EmployeeID:      employeeID,
		Date:            date,
		CheckIn:         checkIn.UTC(),
		CheckInType:     checkInType,
		CheckInPhotoURL: photoURL,
		OfficeID:        req.OfficeID,
		Status:          strings.ToLower(req.Status),
	}
	if req.Location != nil {
		data.CheckInLatitude = &req.Location.Latitude
		data.CheckInLongitude = &req.Location.Longitude
	}

	created, err := a.AttendanceRepository.Create(ctx, data)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return attendance.MarkAttendanceResponse{}, attendance.ErrAlreadyMarked
		}
		return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return attendance.MarkAttendanceResponse{
		RecordID: created.ID,
		Message:  "attendance marked successfully",
	}, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	checkOut, err := time.Parse(time.RFC3339, req.CheckOut)
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to parse check_out time: %w", err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	// Pre-fetch the record so the caller gets a specific error; the
	// conditional update below still decides the winner under races
	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if existing == nil {
		return attendance.CheckOutResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckOut != nil {
		return attendance.CheckOutResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if !checkOut.UTC().After(existing.CheckIn) {
		return attendance.CheckOutResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	var photoURL *string
	if req.Photo != nil && *req.Photo != "" {
		url, err := a.fileService.UploadAttendanceProof(ctx, employeeID, req.Date, *req.Photo, "check-out")
		if err != nil {
			return attendance.CheckOutResponse{}, fmt.Errorf("failed to upload attendance proof: %w", err)
		}
		photoURL = &url
	}

	var lat, lng *float64
	if req.Location != nil {
		lat = &req.Location.Latitude
		lng = &req.Location.Longitude
	}

	workHours, isHalfDay, err := a.AttendanceRepository.CompleteCheckOut(ctx, employeeID, date, checkOut.UTC(), lat, lng, photoURL, a.halfDayHours)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			// A concurrent check-out won the conditional update
			return attendance.CheckOutResponse{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to complete check-out: %w", err)
	}

	return attendance.CheckOutResponse{
		WorkHours: workHours,
		IsHalfDay: isHalfDay,
		Message:   "checked out successfully",
	}, nil
}

// GetTodayAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodayAttendance(ctx context.Context) (*attendance.AttendanceResponse, error) {
	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(a.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if att == nil {
		return nil, nil // Not marked yet
	}

	resp := toResponse(*att)
	return &resp, nil
}

// ListRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	employeeID, role, err := identityFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	// Non-admins only ever see their own records
	if role != "admin" {
		filter.EmployeeID = &employeeID
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, toResponse(att))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.ListAttendanceResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Records:    responses,
	}, nil
}

// GetMonthlyStats implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthlyStats(ctx context.Context, year int, month int) (attendance.MonthlyStatsResponse, error) {
	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.MonthlyStatsResponse{}, err
	}

	// Default to the current month in the deployment timezone
	now := time.Now().In(a.loc)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return attendance.MonthlyStatsResponse{}, fmt.Errorf("month must be between 1 and 12")
	}

	stats, err := a.AttendanceRepository.MonthlyStats(ctx, employeeID, year, time.Month(month))
	if err != nil {
		return attendance.MonthlyStatsResponse{}, fmt.Errorf("failed to get monthly stats: %w", err)
	}

	return attendance.MonthlyStatsResponse{
		Year:       year,
		Month:      month,
		TotalDays:  stats.TotalDays,
		TotalHours: stats.TotalHours,
		HalfDays:   stats.HalfDays,
		WFHDays:    stats.WFHDays,
		OfficeDays: stats.OfficeDays,
		ClientDays: stats.ClientDays,
	}, nil
}

// identityFromContext extracts the authenticated employee ID and role from
// the verified JWT claims.
func identityFromContext(ctx context.Context) (employeeID string, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	role, _ = claims["role"].(string)

	return employeeID, role, nil
}

func toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:               att.ID,
		EmployeeID:       att.EmployeeID,
		EmployeeName:     att.EmployeeName,
		Department:       att.Department,
		Date:             att.Date.Format("2006-01-02"),
		CheckInTime:      att.CheckIn.Format(time.RFC3339),
		CheckInType:      string(att.CheckInType),
		CheckInPhotoURL:  att.CheckInPhotoURL,
		OfficeID:         att.OfficeID,
		OfficeName:       att.OfficeName,
		OfficeAddress:    att.OfficeAddress,
		Status:           att.Status,
		CheckOutPhotoURL: att.CheckOutPhotoURL,
		WorkHours:        att.WorkHours,
		IsHalfDay:        att.IsHalfDay,
		CreatedAt:        att.CreatedAt.Format(time.RFC3339),
	}

	if att.CheckInLatitude != nil && att.CheckInLongitude != nil {
		resp.CheckInLocation = &attendance.Coordinate{
			Latitude:  *att.CheckInLatitude,
			Longitude: *att.CheckInLongitude,
		}
	}
	if att.CheckOut != nil {
		formatted := att.CheckOut.Format(time.RFC3339)
		resp.CheckOutTime = &formatted
	}
	if att.CheckOutLatitude != nil && att.CheckOutLongitude != nil {
		resp.CheckOutLocation = &attendance.Coordinate{
			Latitude:  *att.CheckOutLatitude,
			Longitude: *att.CheckOutLongitude,
		}
	}

	return resp
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	officeRepo office.OfficeRepository,
	fileService file.FileService,
	timezone string,
	wfhMonthlyLimit int,
	halfDayHours float64,
) attendance.AttendanceService {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		OfficeRepository:     officeRepo,
		fileService:          fileService,
		loc:                  loc,
		wfhMonthlyLimit:      wfhMonthlyLimit,
		halfDayHours:         halfDayHours,
	}
}
