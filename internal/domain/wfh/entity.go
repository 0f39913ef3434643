package wfh

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type WFHRequest struct {
	ID         string
	EmployeeID string
	Date       time.Time // requested day, date precision
	Reason     string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
