package postgresql

import (
	"context"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/wfh"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type wfhRepository struct {
	db *database.DB
}

// Create implements wfh.WFHRepository.
// The wfh_requests table carries a unique constraint on (employee_id, date);
// a violation surfaces as a pgconn.PgError with code 23505 for the service
// layer to map.
func (w *wfhRepository) Create(ctx context.Context, newRequest wfh.WFHRequest) (wfh.WFHRequest, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		INSERT INTO wfh_requests (
			employee_id, date, reason, status
		) VALUES (
			$1, $2, $3, $4
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newRequest.EmployeeID,
		newRequest.Date,
		newRequest.Reason,
		newRequest.Status,
	).Scan(&newRequest.ID, &newRequest.CreatedAt, &newRequest.UpdatedAt)

	if err != nil {
		return wfh.WFHRequest{}, err
	}

	return newRequest, nil
}

// GetByID implements wfh.WFHRepository.
func (w *wfhRepository) GetByID(ctx context.Context, id string) (wfh.WFHRequest, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT id, employee_id, date, reason, status, created_at, updated_at
		FROM wfh_requests
		WHERE id = $1
	`

	var req wfh.WFHRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return wfh.WFHRequest{}, wfh.ErrRequestNotFound
		}
		return wfh.WFHRequest{}, fmt.Errorf("failed to get WFH request by ID: %w", err)
	}

	return req, nil
}

// ListByEmployee implements wfh.WFHRepository.
func (w *wfhRepository) ListByEmployee(ctx context.Context, employeeID string) ([]wfh.WFHRequest, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT id, employee_id, date, reason, status, created_at, updated_at
		FROM wfh_requests
		WHERE employee_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query WFH requests: %w", err)
	}
	defer rows.Close()

	var requests []wfh.WFHRequest
	for rows.Next() {
		var req wfh.WFHRequest
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.Date, &req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan WFH request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// UpdateStatus implements wfh.WFHRepository.
// The status = 'pending' guard makes the review transition idempotent under
// concurrent reviewers.
func (w *wfhRepository) UpdateStatus(ctx context.Context, id string, status wfh.Status) (wfh.WFHRequest, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		UPDATE wfh_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		  AND status = 'pending'
		RETURNING id, employee_id, date, reason, status, created_at, updated_at
	`

	var req wfh.WFHRequest
	err := q.QueryRow(ctx, query, id, status).Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return wfh.WFHRequest{}, wfh.ErrInvalidStatusChange
		}
		return wfh.WFHRequest{}, fmt.Errorf("failed to update WFH request status: %w", err)
	}

	return req, nil
}

func NewWFHRepository(db *database.DB) wfh.WFHRepository {
	return &wfhRepository{db: db}
}
