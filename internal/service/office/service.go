package office

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/office"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/geo"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type OfficeServiceImpl struct {
	db *database.DB
	office.OfficeRepository
	employee.EmployeeRepository
}

// AccessibleOffices implements office.OfficeService.
// An empty department resolves to the authenticated employee's own.
func (s *OfficeServiceImpl) AccessibleOffices(ctx context.Context, department string) ([]office.OfficeResponse, error) {
	if department == "" {
		_, claims, err := jwtauth.FromContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to extract claims from context: %w", err)
		}
		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			return nil, fmt.Errorf("employee_id claim is missing or invalid")
		}
		emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
		if err != nil {
			return nil, err
		}
		department = emp.Department
	}

	offices, err := s.OfficeRepository.ListAccessibleByDepartment(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list accessible offices: %w", err)
	}

	responses := make([]office.OfficeResponse, 0, len(offices))
	for _, off := range offices {
		responses = append(responses, office.ToResponse(off))
	}

	return responses, nil
}

// CheckProximity implements office.OfficeService.
// The boundary is inclusive: a caller exactly on the geofence radius is in
// range.
func (s *OfficeServiceImpl) CheckProximity(ctx context.Context, req office.CheckLocationRequest) (office.ProximityResponse, error) {
	if err := req.Validate(); err != nil {
		return office.ProximityResponse{}, err
	}

	off, err := s.OfficeRepository.GetByID(ctx, req.OfficeID)
	if err != nil {
		return office.ProximityResponse{}, err
	}

	if !off.HasGeofence() {
		return office.ProximityResponse{}, office.ErrGeofenceNotConfigured
	}

	distance := geo.DistanceMeters(req.Latitude, req.Longitude, *off.Latitude, *off.Longitude)

	return office.ProximityResponse{
		DistanceMeters: distance,
		InRange:        distance <= *off.RadiusMeters,
		Office:         office.ToResponse(off),
	}, nil
}

// Create implements office.OfficeService.
// The office row and its department access grants are written in one
// transaction so no office is ever visible without its grants.
func (s *OfficeServiceImpl) Create(ctx context.Context, req office.CreateOfficeRequest) (office.OfficeResponse, error) {
	if err := req.Validate(); err != nil {
		return office.OfficeResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	newOffice := office.Office{
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     isActive,
	}

	var created office.Office
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		created, err = s.OfficeRepository.Create(txCtx, newOffice)
		if err != nil {
			return err
		}

		for _, dept := range req.Departments {
			if err := s.OfficeRepository.GrantDepartmentAccess(txCtx, dept, created.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return office.OfficeResponse{}, fmt.Errorf("failed to create office: %w", err)
	}

	return office.ToResponse(created), nil
}

// Get implements office.OfficeService.
func (s *OfficeServiceImpl) Get(ctx context.Context, id string) (office.OfficeResponse, error) {
	off, err := s.OfficeRepository.GetByID(ctx, id)
	if err != nil {
		return office.OfficeResponse{}, err
	}

	return office.ToResponse(off), nil
}

// ListAll implements office.OfficeService.
func (s *OfficeServiceImpl) ListAll(ctx context.Context) ([]office.OfficeResponse, error) {
	offices, err := s.OfficeRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}

	responses := make([]office.OfficeResponse, 0, len(offices))
	for _, off := range offices {
		responses = append(responses, office.ToResponse(off))
	}

	return responses, nil
}

// Update implements office.OfficeService.
func (s *OfficeServiceImpl) Update(ctx context.Context, req office.UpdateOfficeRequest) (office.OfficeResponse, error) {
	if err := req.Validate(); err != nil {
		return office.OfficeResponse{}, err
	}

	existing, err := s.OfficeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return office.OfficeResponse{}, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Address != nil {
		existing.Address = req.Address
	}
	if req.Latitude != nil {
		existing.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		existing.Longitude = req.Longitude
	}
	if req.RadiusMeters != nil {
		existing.RadiusMeters = req.RadiusMeters
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.OfficeRepository.Update(ctx, existing); err != nil {
		if errors.Is(err, office.ErrOfficeNotFound) {
			return office.OfficeResponse{}, err
		}
		return office.OfficeResponse{}, fmt.Errorf("failed to update office: %w", err)
	}

	return office.ToResponse(existing), nil
}

// Deactivate implements office.OfficeService.
func (s *OfficeServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.OfficeRepository.Deactivate(ctx, id)
}

func NewOfficeService(db *database.DB, officeRepo office.OfficeRepository, employeeRepo employee.EmployeeRepository) office.OfficeService {
	return &OfficeServiceImpl{
		db:                 db,
		OfficeRepository:   officeRepo,
		EmployeeRepository: employeeRepo,
	}
}
