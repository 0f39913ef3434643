package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrUsernameOrEmailExists = errors.New("username or email already exists")
	ErrEmployeeInactive      = errors.New("employee account is deactivated")
)
