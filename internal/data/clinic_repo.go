package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/caredesk/clinic-portal/internal/data/pgxutil"
	"github.com/caredesk/clinic-portal/internal/domain/model"
)

// ClinicRepo provides database operations for clinics (tenants).
type ClinicRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewClinicRepo creates a new ClinicRepo.
func NewClinicRepo(db *sql.DB) *ClinicRepo {
	return &ClinicRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Create inserts a new clinic.
func (r *ClinicRepo) Create(ctx context.Context, name string) (*model.Clinic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name is required")
	}

	var out model.Clinic
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO clinics (name, created_at)
			VALUES ($1, $2)
			RETURNING id, name, created_at`,
			name, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Clinic])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create clinic: %w", mapConstraintErr(err))
	}
	return &out, nil
}

// GetByID retrieves a clinic by ID.
func (r *ClinicRepo) GetByID(ctx context.Context, id string) (*model.Clinic, error) {
	var out model.Clinic
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT id, name, created_at FROM clinics WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Clinic])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClinicNotFound
		}
		return nil, fmt.Errorf("failed to get clinic by ID: %w", err)
	}
	return &out, nil
}

// List retrieves clinics with pagination.
func (r *ClinicRepo) List(ctx context.Context, limit, offset int) ([]*model.Clinic, error) {
	if limit <= 0 {
		limit = 50
	}
	offset = max(offset, 0)

	var rowsOut []model.Clinic
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT id, name, created_at FROM clinics ORDER BY created_at ASC LIMIT $1 OFFSET $2`,
			limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Clinic])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}

	res := make([]*model.Clinic, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
