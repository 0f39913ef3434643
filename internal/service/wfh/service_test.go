package wfh

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/wfh"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	ta := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ta.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        "employee",
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeWFHRepo struct {
	requests map[string]wfh.WFHRequest // id
	byDay    map[string]string         // employeeID|date -> id
	nextID   int
}

func newFakeWFHRepo() *fakeWFHRepo {
	return &fakeWFHRepo{
		requests: make(map[string]wfh.WFHRequest),
		byDay:    make(map[string]string),
	}
}

func (f *fakeWFHRepo) Create(ctx context.Context, req wfh.WFHRequest) (wfh.WFHRequest, error) {
	k := req.EmployeeID + "|" + req.Date.Format("2006-01-02")
	if _, exists := f.byDay[k]; exists {
		return wfh.WFHRequest{}, &pgconn.PgError{Code: "23505", ConstraintName: "wfh_one_per_day"}
	}
	f.nextID++
	req.ID = fmt.Sprintf("wfh-%d", f.nextID)
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	f.requests[req.ID] = req
	f.byDay[k] = req.ID
	return req, nil
}

func (f *fakeWFHRepo) GetByID(ctx context.Context, id string) (wfh.WFHRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return wfh.WFHRequest{}, wfh.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeWFHRepo) ListByEmployee(ctx context.Context, employeeID string) ([]wfh.WFHRequest, error) {
	var result []wfh.WFHRequest
	for _, req := range f.requests {
		if req.EmployeeID == employeeID {
			result = append(result, req)
		}
	}
	return result, nil
}

func (f *fakeWFHRepo) UpdateStatus(ctx context.Context, id string, status wfh.Status) (wfh.WFHRequest, error) {
	req, ok := f.requests[id]
	if !ok || req.Status != wfh.StatusPending {
		return wfh.WFHRequest{}, wfh.ErrInvalidStatusChange
	}
	req.Status = status
	f.requests[id] = req
	return req, nil
}

// countingAttendanceRepo only answers CountWFHDaysInMonth; nothing else is
// reachable from the WFH service.
type countingAttendanceRepo struct {
	wfhCount int
}

func (c *countingAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	panic("not reachable")
}

func (c *countingAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	panic("not reachable")
}

func (c *countingAttendanceRepo) CompleteCheckOut(ctx context.Context, employeeID string, date time.Time, checkOut time.Time, lat, lng *float64, photoURL *string, halfDayBelowHours float64) (float64, bool, error) {
	panic("not reachable")
}

func (c *countingAttendanceRepo) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Attendance, int64, error) {
	panic("not reachable")
}

func (c *countingAttendanceRepo) CountWFHDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	return c.wfhCount, nil
}

func (c *countingAttendanceRepo) MonthlyStats(ctx context.Context, employeeID string, year int, month time.Month) (attendance.MonthlyStats, error) {
	panic("not reachable")
}

func TestCheckEligibility(t *testing.T) {
	t.Run("under the limit can request", func(t *testing.T) {
		svc := NewWFHService(nil, newFakeWFHRepo(), &countingAttendanceRepo{wfhCount: 0}, "UTC", 1)

		result, err := svc.CheckEligibility(authedContext(t, "emp-1"), 2026, 8)
		require.NoError(t, err)
		assert.Equal(t, 0, result.CurrentCount)
		assert.Equal(t, 1, result.MaxLimit)
		assert.True(t, result.CanRequest)
	})

	t.Run("at the limit cannot request", func(t *testing.T) {
		svc := NewWFHService(nil, newFakeWFHRepo(), &countingAttendanceRepo{wfhCount: 1}, "UTC", 1)

		result, err := svc.CheckEligibility(authedContext(t, "emp-1"), 2026, 8)
		require.NoError(t, err)
		assert.Equal(t, 1, result.CurrentCount)
		assert.False(t, result.CanRequest)
	})

	t.Run("invalid month", func(t *testing.T) {
		svc := NewWFHService(nil, newFakeWFHRepo(), &countingAttendanceRepo{}, "UTC", 1)

		_, err := svc.CheckEligibility(authedContext(t, "emp-1"), 2026, 13)
		assert.Error(t, err)
	})
}

func TestCreateRequest(t *testing.T) {
	createReq := wfh.CreateWFHRequest{
		Date:   "2026-08-10",
		Reason: "plumber visit",
	}

	t.Run("creates a pending request", func(t *testing.T) {
		svc := NewWFHService(nil, newFakeWFHRepo(), &countingAttendanceRepo{wfhCount: 0}, "UTC", 1)

		result, err := svc.CreateRequest(authedContext(t, "emp-1"), createReq)
		require.NoError(t, err)
		assert.Equal(t, string(wfh.StatusPending), result.Status)
		assert.Equal(t, "emp-1", result.EmployeeID)
	})

	t.Run("over quota is rejected", func(t *testing.T) {
		svc := NewWFHService(nil, newFakeWFHRepo(), &countingAttendanceRepo{wfhCount: 1}, "UTC", 1)

		_, err := svc.CreateRequest(authedContext(t, "emp-1"), createReq)
		assert.ErrorIs(t, err, wfh.ErrQuotaExceeded)
	})

	t.Run("duplicate date is rejected", func(t *testing.T) {
		svc := NewWFHService(nil, newFakeWFHRepo(), &countingAttendanceRepo{wfhCount: 0}, "UTC", 1)
		ctx := authedContext(t, "emp-1")

		_, err := svc.CreateRequest(ctx, createReq)
		require.NoError(t, err)

		_, err = svc.CreateRequest(ctx, createReq)
		assert.ErrorIs(t, err, wfh.ErrDuplicateRequest)
	})

	t.Run("missing reason fails validation", func(t *testing.T) {
		svc := NewWFHService(nil, newFakeWFHRepo(), &countingAttendanceRepo{}, "UTC", 1)

		_, err := svc.CreateRequest(authedContext(t, "emp-1"), wfh.CreateWFHRequest{Date: "2026-08-10"})
		assert.Error(t, err)
	})
}

func TestReview(t *testing.T) {
	t.Run("approves a pending request", func(t *testing.T) {
		repo := newFakeWFHRepo()
		svc := NewWFHService(nil, repo, &countingAttendanceRepo{}, "UTC", 1)

		created, err := svc.CreateRequest(authedContext(t, "emp-1"), wfh.CreateWFHRequest{
			Date:   "2026-08-10",
			Reason: "plumber visit",
		})
		require.NoError(t, err)

		result, err := svc.Review(context.Background(), created.ID, wfh.ReviewWFHRequest{Status: "approved"})
		require.NoError(t, err)
		assert.Equal(t, string(wfh.StatusApproved), result.Status)
	})

	t.Run("reviewing twice is rejected", func(t *testing.T) {
		repo := newFakeWFHRepo()
		svc := NewWFHService(nil, repo, &countingAttendanceRepo{}, "UTC", 1)

		created, err := svc.CreateRequest(authedContext(t, "emp-1"), wfh.CreateWFHRequest{
			Date:   "2026-08-10",
			Reason: "plumber visit",
		})
		require.NoError(t, err)

		_, err = svc.Review(context.Background(), created.ID, wfh.ReviewWFHRequest{Status: "approved"})
		require.NoError(t, err)

		_, err = svc.Review(context.Background(), created.ID, wfh.ReviewWFHRequest{Status: "rejected"})
		assert.ErrorIs(t, err, wfh.ErrInvalidStatusChange)
	})

	t.Run("unknown request", func(t *testing.T) {
		svc := NewWFHService(nil, newFakeWFHRepo(), &countingAttendanceRepo{}, "UTC", 1)

		_, err := svc.Review(context.Background(), "missing", wfh.ReviewWFHRequest{Status: "approved"})
		assert.ErrorIs(t, err, wfh.ErrRequestNotFound)
	})

	t.Run("invalid status fails validation", func(t *testing.T) {
		svc := NewWFHService(nil, newFakeWFHRepo(), &countingAttendanceRepo{}, "UTC", 1)

		_, err := svc.Review(context.Background(), "any", wfh.ReviewWFHRequest{Status: "maybe"})
		assert.Error(t, err)
	})
}
