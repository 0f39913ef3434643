package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/office"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func authedContext(t *testing.T, employeeID string, role string) context.Context {
	t.Helper()
	ta := jwtauth.New("HS256", []byte(testSecret), nil)
	token, _, err := ta.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        role,
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeAttendanceRepo struct {
	records  map[string]*attendance.Attendance // employeeID|date
	wfhCount int
	nextID   int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Attendance)}
}

func (f *fakeAttendanceRepo) key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	k := f.key(att.EmployeeID, att.Date)
	if _, exists := f.records[k]; exists {
		return attendance.Attendance{}, &pgconn.PgError{Code: "23505", ConstraintName: "attendance_one_per_day"}
	}
	f.nextID++
	att.ID = fmt.Sprintf("att-%d", f.nextID)
	att.CreatedAt = time.Now()
	att.UpdatedAt = att.CreatedAt
	f.records[k] = &att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	att, ok := f.records[f.key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := *att
	return &copied, nil
}

func (f *fakeAttendanceRepo) CompleteCheckOut(ctx context.Context, employeeID string, date time.Time, checkOut time.Time, lat, lng *float64, photoURL *string, halfDayBelowHours float64) (float64, bool, error) {
	att, ok := f.records[f.key(employeeID, date)]
	if !ok || att.CheckOut != nil {
		return 0, false, attendance.ErrAttendanceNotFound
	}
	hours := checkOut.Sub(att.CheckIn).Hours()
	isHalfDay := hours < halfDayBelowHours
	att.CheckOut = &checkOut
	att.CheckOutLatitude = lat
	att.CheckOutLongitude = lng
	att.CheckOutPhotoURL = photoURL
	att.WorkHours = &hours
	att.IsHalfDay = &isHalfDay
	return hours, isHalfDay, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Attendance, int64, error) {
	var result []attendance.Attendance
	for _, att := range f.records {
		if filter.EmployeeID != nil && att.EmployeeID != *filter.EmployeeID {
			continue
		}
		result = append(result, *att)
	}
	return result, int64(len(result)), nil
}

func (f *fakeAttendanceRepo) CountWFHDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	return f.wfhCount, nil
}

func (f *fakeAttendanceRepo) MonthlyStats(ctx context.Context, employeeID string, year int, month time.Month) (attendance.MonthlyStats, error) {
	stats := attendance.MonthlyStats{}
	for _, att := range f.records {
		if att.EmployeeID != employeeID {
			continue
		}
		stats.TotalDays++
		if att.WorkHours != nil {
			stats.TotalHours += *att.WorkHours
		}
		switch att.CheckInType {
		case attendance.TypeWFH:
			stats.WFHDays++
		case attendance.TypeOffice:
			stats.OfficeDays++
		case attendance.TypeClient:
			stats.ClientDays++
		}
	}
	return stats, nil
}

type fakeOfficeRepo struct {
	offices map[string]office.Office
}

func newFakeOfficeRepo(offices ...office.Office) *fakeOfficeRepo {
	repo := &fakeOfficeRepo{offices: make(map[string]office.Office)}
	for _, off := range offices {
		repo.offices[off.ID] = off
	}
	return repo
}

func (f *fakeOfficeRepo) Create(ctx context.Context, o office.Office) (office.Office, error) {
	f.offices[o.ID] = o
	return o, nil
}

func (f *fakeOfficeRepo) GetByID(ctx context.Context, id string) (office.Office, error) {
	off, ok := f.offices[id]
	if !ok {
		return office.Office{}, office.ErrOfficeNotFound
	}
	return off, nil
}

func (f *fakeOfficeRepo) ListAll(ctx context.Context) ([]office.Office, error) {
	var result []office.Office
	for _, off := range f.offices {
		result = append(result, off)
	}
	return result, nil
}

func (f *fakeOfficeRepo) ListAccessibleByDepartment(ctx context.Context, department string) ([]office.Office, error) {
	return f.ListAll(ctx)
}

func (f *fakeOfficeRepo) Update(ctx context.Context, o office.Office) error {
	if _, ok := f.offices[o.ID]; !ok {
		return office.ErrOfficeNotFound
	}
	f.offices[o.ID] = o
	return nil
}

func (f *fakeOfficeRepo) Deactivate(ctx context.Context, id string) error {
	off, ok := f.offices[id]
	if !ok {
		return office.ErrOfficeNotFound
	}
	off.IsActive = false
	f.offices[id] = off
	return nil
}

func (f *fakeOfficeRepo) GrantDepartmentAccess(ctx context.Context, department string, officeID string) error {
	return nil
}

func (f *fakeOfficeRepo) RevokeDepartmentAccess(ctx context.Context, department string, officeID string) error {
	return nil
}

type fakeFileService struct{}

func (f *fakeFileService) UploadAttendanceProof(ctx context.Context, employeeID string, date string, encoded string, proofType string) (string, error) {
	return "http://localhost:8080/uploads/attendance/" + employeeID + "/" + date + "-" + proofType + ".jpg", nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, path string) error { return nil }

func (f *fakeFileService) GetFileURL(ctx context.Context, path string) (string, error) {
	return path, nil
}

func newTestService(attRepo *fakeAttendanceRepo, officeRepo *fakeOfficeRepo) attendance.AttendanceService {
	return NewAttendanceService(nil, attRepo, officeRepo, &fakeFileService{}, "UTC", 1, 4)
}

func testOffice() office.Office {
	lat, lng, radius := 12.9716, 77.5946, 200.0
	return office.Office{
		ID:           "office-1",
		Name:         "HQ",
		Latitude:     &lat,
		Longitude:    &lng,
		RadiusMeters: &radius,
		IsActive:     true,
	}
}

func officeMarkRequest() attendance.MarkAttendanceRequest {
	officeID := "office-1"
	return attendance.MarkAttendanceRequest{
		Date:     "2026-08-03",
		CheckIn:  "2026-08-03T09:00:00+05:30",
		Type:     "office",
		Status:   "present",
		OfficeID: &officeID,
		Location: &attendance.Coordinate{Latitude: 12.9716, Longitude: 77.5946},
	}
}

func TestMarkAttendance(t *testing.T) {
	t.Run("office check-in succeeds", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		svc := newTestService(attRepo, newFakeOfficeRepo(testOffice()))
		ctx := authedContext(t, "emp-1", "employee")

		result, err := svc.MarkAttendance(ctx, officeMarkRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, result.RecordID)

		stored, err := attRepo.GetByEmployeeAndDate(ctx, "emp-1", time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, attendance.TypeOffice, stored.CheckInType)
		assert.Equal(t, "present", stored.Status)
	})

	t.Run("second mark on same date is rejected", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		svc := newTestService(attRepo, newFakeOfficeRepo(testOffice()))
		ctx := authedContext(t, "emp-1", "employee")

		_, err := svc.MarkAttendance(ctx, officeMarkRequest())
		require.NoError(t, err)

		_, err = svc.MarkAttendance(ctx, officeMarkRequest())
		assert.ErrorIs(t, err, attendance.ErrAlreadyMarked)
	})

	t.Run("unknown office is rejected", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeOfficeRepo())
		ctx := authedContext(t, "emp-1", "employee")

		_, err := svc.MarkAttendance(ctx, officeMarkRequest())
		assert.ErrorIs(t, err, office.ErrOfficeNotFound)
	})

	t.Run("wfh check-in over monthly limit is rejected", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		attRepo.wfhCount = 1 // limit is 1 in the test service
		svc := newTestService(attRepo, newFakeOfficeRepo())
		ctx := authedContext(t, "emp-1", "employee")

		_, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
			Date:    "2026-08-03",
			CheckIn: "2026-08-03T09:00:00+05:30",
			Type:    "wfh",
			Status:  "present",
		})
		assert.ErrorIs(t, err, attendance.ErrWFHLimitExceeded)
	})

	t.Run("wfh check-in under limit succeeds", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		svc := newTestService(attRepo, newFakeOfficeRepo())
		ctx := authedContext(t, "emp-1", "employee")

		result, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
			Date:    "2026-08-03",
			CheckIn: "2026-08-03T09:00:00+05:30",
			Type:    "wfh",
			Status:  "present",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.RecordID)
	})

	t.Run("invalid type fails validation", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeOfficeRepo())
		ctx := authedContext(t, "emp-1", "employee")

		_, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
			Date:    "2026-08-03",
			CheckIn: "2026-08-03T09:00:00+05:30",
			Type:    "beach",
			Status:  "present",
		})
		assert.Error(t, err)
	})

	t.Run("office type without office_id fails validation", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeOfficeRepo(testOffice()))
		ctx := authedContext(t, "emp-1", "employee")

		req := officeMarkRequest()
		req.OfficeID = nil
		_, err := svc.MarkAttendance(ctx, req)
		assert.Error(t, err)
	})
}

func TestCheckOut(t *testing.T) {
	checkOutRequest := func() attendance.CheckOutRequest {
		return attendance.CheckOutRequest{
			Date:     "2026-08-03",
			CheckOut: "2026-08-03T18:00:00+05:30",
		}
	}

	t.Run("without check-in is rejected", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeOfficeRepo())
		ctx := authedContext(t, "emp-1", "employee")

		_, err := svc.CheckOut(ctx, checkOutRequest())
		assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	})

	t.Run("computes work hours and half-day flag", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		svc := newTestService(attRepo, newFakeOfficeRepo(testOffice()))
		ctx := authedContext(t, "emp-1", "employee")

		_, err := svc.MarkAttendance(ctx, officeMarkRequest())
		require.NoError(t, err)

		result, err := svc.CheckOut(ctx, checkOutRequest())
		require.NoError(t, err)
		assert.InDelta(t, 9.0, result.WorkHours, 0.01)
		assert.False(t, result.IsHalfDay)
	})

	t.Run("short day is flagged half-day", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		svc := newTestService(attRepo, newFakeOfficeRepo(testOffice()))
		ctx := authedContext(t, "emp-1", "employee")

		_, err := svc.MarkAttendance(ctx, officeMarkRequest())
		require.NoError(t, err)

		result, err := svc.CheckOut(ctx, attendance.CheckOutRequest{
			Date:     "2026-08-03",
			CheckOut: "2026-08-03T11:00:00+05:30", // 2 hours after check-in
		})
		require.NoError(t, err)
		assert.InDelta(t, 2.0, result.WorkHours, 0.01)
		assert.True(t, result.IsHalfDay)
	})

	t.Run("second check-out is rejected", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		svc := newTestService(attRepo, newFakeOfficeRepo(testOffice()))
		ctx := authedContext(t, "emp-1", "employee")

		_, err := svc.MarkAttendance(ctx, officeMarkRequest())
		require.NoError(t, err)

		_, err = svc.CheckOut(ctx, checkOutRequest())
		require.NoError(t, err)

		_, err = svc.CheckOut(ctx, checkOutRequest())
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	})

	t.Run("check-out before check-in is rejected", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		svc := newTestService(attRepo, newFakeOfficeRepo(testOffice()))
		ctx := authedContext(t, "emp-1", "employee")

		_, err := svc.MarkAttendance(ctx, officeMarkRequest())
		require.NoError(t, err)

		_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{
			Date:     "2026-08-03",
			CheckOut: "2026-08-03T08:00:00+05:30",
		})
		assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
	})
}

func TestGetTodayAttendance(t *testing.T) {
	t.Run("nil when not marked", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeOfficeRepo())

		result, err := svc.GetTodayAttendance(authedContext(t, "emp-1", "employee"))
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("marked location round-trips", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		svc := newTestService(attRepo, newFakeOfficeRepo(testOffice()))
		ctx := authedContext(t, "emp-1", "employee")

		// The test service runs in UTC, so mark today's UTC date
		today := time.Now().UTC().Format("2006-01-02")
		photo := "data:image/jpeg;base64,/9j/4AAQ"
		req := officeMarkRequest()
		req.Date = today
		req.CheckIn = today + "T09:00:00Z"
		req.Photo = &photo

		_, err := svc.MarkAttendance(ctx, req)
		require.NoError(t, err)

		result, err := svc.GetTodayAttendance(ctx)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, today, result.Date)
		require.NotNil(t, result.CheckInLocation)
		assert.Equal(t, *req.Location, *result.CheckInLocation)
		require.NotNil(t, result.CheckInPhotoURL)
		assert.NotEmpty(t, *result.CheckInPhotoURL)
		assert.Nil(t, result.CheckOutTime)
	})
}

func TestListRecords(t *testing.T) {
	t.Run("non-admin only sees own records", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		svc := newTestService(attRepo, newFakeOfficeRepo(testOffice()))

		_, err := svc.MarkAttendance(authedContext(t, "emp-1", "employee"), officeMarkRequest())
		require.NoError(t, err)
		_, err = svc.MarkAttendance(authedContext(t, "emp-2", "employee"), officeMarkRequest())
		require.NoError(t, err)

		other := "emp-2"
		result, err := svc.ListRecords(authedContext(t, "emp-1", "employee"), attendance.RecordFilter{
			EmployeeID: &other, // ignored for non-admins
		})
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "emp-1", result.Records[0].EmployeeID)
	})

	t.Run("admin can filter by employee", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		svc := newTestService(attRepo, newFakeOfficeRepo(testOffice()))

		_, err := svc.MarkAttendance(authedContext(t, "emp-1", "employee"), officeMarkRequest())
		require.NoError(t, err)
		_, err = svc.MarkAttendance(authedContext(t, "emp-2", "employee"), officeMarkRequest())
		require.NoError(t, err)

		target := "emp-2"
		result, err := svc.ListRecords(authedContext(t, "admin-1", "admin"), attendance.RecordFilter{
			EmployeeID: &target,
		})
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "emp-2", result.Records[0].EmployeeID)
	})
}

func TestGetMonthlyStats(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, newFakeOfficeRepo(testOffice()))
	ctx := authedContext(t, "emp-1", "employee")

	_, err := svc.MarkAttendance(ctx, officeMarkRequest())
	require.NoError(t, err)

	stats, err := svc.GetMonthlyStats(ctx, 2026, 8)
	require.NoError(t, err)
	assert.Equal(t, 2026, stats.Year)
	assert.Equal(t, 8, stats.Month)
	assert.Equal(t, 1, stats.TotalDays)
	assert.Equal(t, 1, stats.OfficeDays)

	_, err = svc.GetMonthlyStats(ctx, 2026, 13)
	assert.Error(t, err)
}
