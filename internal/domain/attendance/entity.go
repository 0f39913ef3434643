package attendance

import (
	"time"
)

type CheckInType string

const (
	TypeOffice CheckInType = "office"
	TypeWFH    CheckInType = "wfh"
	TypeClient CheckInType = "client"
)

type Attendance struct {
	ID                string
	EmployeeID        string
	Date              time.Time // work day in the deployment timezone, date precision
	CheckIn           time.Time
	CheckInType       CheckInType
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckInPhotoURL   *string
	OfficeID          *string
	Status            string
	CheckOut          *time.Time
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckOutPhotoURL  *string
	WorkHours         *float64
	IsHalfDay         *bool
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	EmployeeName  *string
	Department    *string
	OfficeName    *string
	OfficeAddress *string
}

// MonthlyStats aggregates one employee's attendance for a calendar month.
type MonthlyStats struct {
	TotalDays  int
	TotalHours float64
	HalfDays   int
	WFHDays    int
	OfficeDays int
	ClientDays int
}
