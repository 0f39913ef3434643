package employee

import (
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

type EmployeeResponse struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Department      string  `json:"department"`
	PrimaryOfficeID *string `json:"primary_office_id,omitempty"`
	Role            string  `json:"role"`
	IsActive        bool    `json:"is_active"`
}

// ToResponse maps an Employee entity to its API shape, dropping the credential.
func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:              e.ID,
		Username:        e.Username,
		Name:            e.Name,
		Email:           e.Email,
		Phone:           e.Phone,
		Department:      e.Department,
		PrimaryOfficeID: e.PrimaryOfficeID,
		Role:            string(e.Role),
		IsActive:        e.IsActive,
	}
}

type EmployeeFilter struct {
	Department *string `json:"department,omitempty"`
	Search     *string `json:"search,omitempty"` // matches name or username
	IsActive   *bool   `json:"is_active,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListEmployeesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Employees  []EmployeeResponse `json:"employees"`
}

// UpdateEmployeeRequest for admins fixing account data.
type UpdateEmployeeRequest struct {
	ID              string  `json:"-"`
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Department      *string `json:"department,omitempty"`
	PrimaryOfficeID *string `json:"primary_office_id,omitempty"`
	Role            *string `json:"role,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone number must be exactly 10 digits",
		})
	}

	if r.Role != nil && !validator.IsInSlice(*r.Role, []string{string(RoleEmployee), string(RoleAdmin)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: employee, admin",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
