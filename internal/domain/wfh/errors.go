package wfh

import "errors"

// WFH domain errors
var (
	ErrRequestNotFound     = errors.New("WFH request not found")
	ErrDuplicateRequest    = errors.New("a WFH request already exists for this date")
	ErrQuotaExceeded       = errors.New("WFH quota exceeded for this month")
	ErrInvalidStatusChange = errors.New("request is not in a reviewable state")
)
