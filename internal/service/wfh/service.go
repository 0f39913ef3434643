package wfh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/wfh"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type WFHServiceImpl struct {
	db *database.DB
	wfh.WFHRepository
	attendance.AttendanceRepository

	loc             *time.Location
	wfhMonthlyLimit int
}

// CheckEligibility implements wfh.WFHService.
// Usage counts actual WFH attendance days, not filed requests, so a request
// that never became a check-in does not burn quota.
func (s *WFHServiceImpl) CheckEligibility(ctx context.Context, year int, month int) (wfh.EligibilityResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return wfh.EligibilityResponse{}, err
	}

	now := time.Now().In(s.loc)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return wfh.EligibilityResponse{}, fmt.Errorf("month must be between 1 and 12")
	}

	count, err := s.AttendanceRepository.CountWFHDaysInMonth(ctx, employeeID, year, time.Month(month))
	if err != nil {
		return wfh.EligibilityResponse{}, fmt.Errorf("failed to count WFH days: %w", err)
	}

	return wfh.EligibilityResponse{
		Year:         year,
		Month:        month,
		CurrentCount: count,
		MaxLimit:     s.wfhMonthlyLimit,
		CanRequest:   count < s.wfhMonthlyLimit,
	}, nil
}

// CreateRequest implements wfh.WFHService.
func (s *WFHServiceImpl) CreateRequest(ctx context.Context, req wfh.CreateWFHRequest) (wfh.WFHRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return wfh.WFHRequestResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return wfh.WFHRequestResponse{}, err
	}

	requestedDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return wfh.WFHRequestResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	count, err := s.AttendanceRepository.CountWFHDaysInMonth(ctx, employeeID, requestedDate.Year(), requestedDate.Month())
	if err != nil {
		return wfh.WFHRequestResponse{}, fmt.Errorf("failed to count WFH days: %w", err)
	}
	if count >= s.wfhMonthlyLimit {
		return wfh.WFHRequestResponse{}, wfh.ErrQuotaExceeded
	}

	created, err := s.WFHRepository.Create(ctx, wfh.WFHRequest{
		EmployeeID: employeeID,
		Date:       requestedDate,
		Reason:     req.Reason,
		Status:     wfh.StatusPending,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return wfh.WFHRequestResponse{}, wfh.ErrDuplicateRequest
		}
		return wfh.WFHRequestResponse{}, fmt.Errorf("failed to create WFH request: %w", err)
	}

	return created.ToResponse(), nil
}

// ListMyRequests implements wfh.WFHService.
func (s *WFHServiceImpl) ListMyRequests(ctx context.Context) ([]wfh.WFHRequestResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.WFHRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list WFH requests: %w", err)
	}

	responses := make([]wfh.WFHRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, req.ToResponse())
	}

	return responses, nil
}

// Review implements wfh.WFHService.
func (s *WFHServiceImpl) Review(ctx context.Context, id string, req wfh.ReviewWFHRequest) (wfh.WFHRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return wfh.WFHRequestResponse{}, err
	}

	if _, err := s.WFHRepository.GetByID(ctx, id); err != nil {
		return wfh.WFHRequestResponse{}, err
	}

	updated, err := s.WFHRepository.UpdateStatus(ctx, id, wfh.Status(req.Status))
	if err != nil {
		if errors.Is(err, wfh.ErrInvalidStatusChange) {
			return wfh.WFHRequestResponse{}, err
		}
		return wfh.WFHRequestResponse{}, fmt.Errorf("failed to review WFH request: %w", err)
	}

	return updated.ToResponse(), nil
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, nil
}

func NewWFHService(
	db *database.DB,
	wfhRepo wfh.WFHRepository,
	attendanceRepo attendance.AttendanceRepository,
	timezone string,
	wfhMonthlyLimit int,
) wfh.WFHService {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	return &WFHServiceImpl{
		db:                   db,
		WFHRepository:        wfhRepo,
		AttendanceRepository: attendanceRepo,
		loc:                  loc,
		wfhMonthlyLimit:      wfhMonthlyLimit,
	}
}
