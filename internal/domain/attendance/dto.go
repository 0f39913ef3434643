package attendance

import (
	"strings"

	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// Coordinate is a structured location pair as stored on a record and
// returned to clients.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c *Coordinate) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	if !validator.IsValidLatitude(c.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(c.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	return errs
}

type MarkAttendanceRequest struct {
	EmployeeID string      `json:"-"`
	Date       string      `json:"date"`     // YYYY-MM-DD
	CheckIn    string      `json:"check_in"` // RFC3339
	Type       string      `json:"type"`     // office, wfh, client
	Status     string      `json:"status"`   // present, late
	OfficeID   *string     `json:"office_id,omitempty"`
	Location   *Coordinate `json:"location,omitempty"`
	Photo      *string     `json:"photo,omitempty"` // base64 proof image
}

func (r *MarkAttendanceRequest) Validate() error {
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

	if validator.IsEmpty(r.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in is required",
		})
	} else if _, valid := validator.IsValidDateTime(r.CheckIn); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in must be an RFC3339 timestamp",
		})
	}

	validTypes := []string{string(TypeOffice), string(TypeWFH), string(TypeClient)}
	if !validator.IsInSlice(strings.ToLower(r.Type), validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: office, wfh, client",
		})
	}

	if !validator.IsInSlice(strings.ToLower(r.Status), []string{"present", "late"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, late",
		})
	}

	if strings.ToLower(r.Type) == string(TypeOffice) && (r.OfficeID == nil || validator.IsEmpty(*r.OfficeID)) {
		errs = append(errs, validator.ValidationError{
			Field:   "office_id",
			Message: "office_id is required for office check-in",
		})
	}

	if r.Location != nil {
		errs = r.Location.validate(errs)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID string      `json:"-"`
	Date       string      `json:"date"`      // YYYY-MM-DD
	CheckOut   string      `json:"check_out"` // RFC3339
	Location   *Coordinate `json:"location,omitempty"`
	Photo      *string     `json:"photo,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
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

	if validator.IsEmpty(r.CheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out is required",
		})
	} else if _, valid := validator.IsValidDateTime(r.CheckOut); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must be an RFC3339 timestamp",
		})
	}

	if r.Location != nil {
		errs = r.Location.validate(errs)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkAttendanceResponse struct {
	RecordID string `json:"record_id"`
	Message  string `json:"message"`
}

type CheckOutResponse struct {
	WorkHours float64 `json:"work_hours"`
	IsHalfDay bool    `json:"is_half_day"`
	Message   string  `json:"message"`
}

type AttendanceResponse struct {
	ID               string      `json:"id"`
	EmployeeID       string      `json:"employee_id"`
	EmployeeName     *string     `json:"employee_name,omitempty"`
	Department       *string     `json:"department,omitempty"`
	Date             string      `json:"date"`
	CheckInTime      string      `json:"check_in_time"`
	CheckInType      string      `json:"check_in_type"`
	CheckInLocation  *Coordinate `json:"check_in_location,omitempty"`
	CheckInPhotoURL  *string     `json:"check_in_photo_url,omitempty"`
	OfficeID         *string     `json:"office_id,omitempty"`
	OfficeName       *string     `json:"office_name,omitempty"`
	OfficeAddress    *string     `json:"office_address,omitempty"`
	Status           string      `json:"status"`
	CheckOutTime     *string     `json:"check_out_time,omitempty"`
	CheckOutLocation *Coordinate `json:"check_out_location,omitempty"`
	CheckOutPhotoURL *string     `json:"check_out_photo_url,omitempty"`
	WorkHours        *float64    `json:"work_hours,omitempty"`
	IsHalfDay        *bool       `json:"is_half_day,omitempty"`
	CreatedAt        string      `json:"created_at"`
}

type RecordFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
	Records    []AttendanceResponse `json:"records"`
}

type MonthlyStatsResponse struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	TotalDays  int     `json:"total_days"`
	TotalHours float64 `json:"total_hours"`
	HalfDays   int     `json:"half_days"`
	WFHDays    int     `json:"wfh_days"`
	OfficeDays int     `json:"office_days"`
	ClientDays int     `json:"client_days"`
}
