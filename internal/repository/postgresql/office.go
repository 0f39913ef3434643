package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/office"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type officeRepository struct {
	db *database.DB
}

// Create implements office.OfficeRepository.
func (o *officeRepository) Create(ctx context.Context, newOffice office.Office) (office.Office, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		INSERT INTO offices (
			name, address, latitude, longitude, radius_meters, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newOffice.Name,
		newOffice.Address,
		newOffice.Latitude,
		newOffice.Longitude,
		newOffice.RadiusMeters,
		newOffice.IsActive,
	).Scan(&newOffice.ID, &newOffice.CreatedAt, &newOffice.UpdatedAt)

	if err != nil {
		return office.Office{}, fmt.Errorf("failed to create office: %w", err)
	}

	return newOffice, nil
}

// GetByID implements office.OfficeRepository.
func (o *officeRepository) GetByID(ctx context.Context, id string) (office.Office, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT id, name, address, latitude, longitude, radius_meters, is_active,
			   created_at, updated_at
		FROM offices
		WHERE id = $1
	`

	var off office.Office
	err := q.QueryRow(ctx, query, id).Scan(
		&off.ID, &off.Name, &off.Address, &off.Latitude, &off.Longitude, &off.RadiusMeters, &off.IsActive,
		&off.CreatedAt, &off.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return office.Office{}, office.ErrOfficeNotFound
		}
		return office.Office{}, fmt.Errorf("failed to get office by ID: %w", err)
	}

	return off, nil
}

// ListAll implements office.OfficeRepository.
func (o *officeRepository) ListAll(ctx context.Context) ([]office.Office, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT id, name, address, latitude, longitude, radius_meters, is_active,
			   created_at, updated_at
		FROM offices
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query offices: %w", err)
	}
	defer rows.Close()

	var offices []office.Office
	for rows.Next() {
		var off office.Office
		err := rows.Scan(
			&off.ID, &off.Name, &off.Address, &off.Latitude, &off.Longitude, &off.RadiusMeters, &off.IsActive,
			&off.CreatedAt, &off.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan office: %w", err)
		}
		offices = append(offices, off)
	}

	return offices, nil
}

// ListAccessibleByDepartment implements office.OfficeRepository.
func (o *officeRepository) ListAccessibleByDepartment(ctx context.Context, department string) ([]office.Office, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT o.id, o.name, o.address, o.latitude, o.longitude, o.radius_meters, o.is_active,
			   o.created_at, o.updated_at
		FROM offices o
		INNER JOIN department_office_access doa ON doa.office_id = o.id
		WHERE doa.department = $1
		  AND o.is_active = TRUE
		ORDER BY o.name ASC
	`

	rows, err := q.Query(ctx, query, department)
	if err != nil {
		return nil, fmt.Errorf("failed to query accessible offices: %w", err)
	}
	defer rows.Close()

	var offices []office.Office
	for rows.Next() {
		var off office.Office
		err := rows.Scan(
			&off.ID, &off.Name, &off.Address, &off.Latitude, &off.Longitude, &off.RadiusMeters, &off.IsActive,
			&off.CreatedAt, &off.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan office: %w", err)
		}
		offices = append(offices, off)
	}

	return offices, nil
}

// Update implements office.OfficeRepository.
func (o *officeRepository) Update(ctx context.Context, off office.Office) error {
	q := GetQuerier(ctx, o.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if off.Name != "" {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, off.Name)
		argIdx++
	}
	if off.Address != nil {
		updates = append(updates, fmt.Sprintf("address = $%d", argIdx))
		args = append(args, off.Address)
		argIdx++
	}
	if off.Latitude != nil {
		updates = append(updates, fmt.Sprintf("latitude = $%d", argIdx))
		args = append(args, off.Latitude)
		argIdx++
	}
	if off.Longitude != nil {
		updates = append(updates, fmt.Sprintf("longitude = $%d", argIdx))
		args = append(args, off.Longitude)
		argIdx++
	}
	if off.RadiusMeters != nil {
		updates = append(updates, fmt.Sprintf("radius_meters = $%d", argIdx))
		args = append(args, off.RadiusMeters)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for office update")
	}

	updates = append(updates, fmt.Sprintf("is_active = $%d", argIdx))
	args = append(args, off.IsActive)
	argIdx++

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, off.ID)

	query := "UPDATE offices SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return office.ErrOfficeNotFound
		}
		return fmt.Errorf("failed to update office: %w", err)
	}

	return nil
}

// Deactivate implements office.OfficeRepository.
func (o *officeRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, o.db)

	query := `UPDATE offices SET is_active = FALSE, updated_at = NOW() WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate office: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return office.ErrOfficeNotFound
	}

	return nil
}

// GrantDepartmentAccess implements office.OfficeRepository.
func (o *officeRepository) GrantDepartmentAccess(ctx context.Context, department string, officeID string) error {
	q := GetQuerier(ctx, o.db)

	query := `
		INSERT INTO department_office_access (department, office_id)
		VALUES ($1, $2)
		ON CONFLICT (department, office_id) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, department, officeID); err != nil {
		return fmt.Errorf("failed to grant department access: %w", err)
	}

	return nil
}

// RevokeDepartmentAccess implements office.OfficeRepository.
func (o *officeRepository) RevokeDepartmentAccess(ctx context.Context, department string, officeID string) error {
	q := GetQuerier(ctx, o.db)

	query := `DELETE FROM department_office_access WHERE department = $1 AND office_id = $2`

	if _, err := q.Exec(ctx, query, department, officeID); err != nil {
		return fmt.Errorf("failed to revoke department access: %w", err)
	}

	return nil
}

func NewOfficeRepository(db *database.DB) office.OfficeRepository {
	return &officeRepository{db: db}
}
