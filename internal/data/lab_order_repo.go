package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/caredesk/clinic-portal/internal/core"
	"github.com/caredesk/clinic-portal/internal/data/database"
	"github.com/caredesk/clinic-portal/internal/data/pgxutil"
	"github.com/caredesk/clinic-portal/internal/domain/model"
)

const labOrderColumns = "id, clinic_id, patient_id, doctor_id, test_name, status, result, flags, completed_at, created_at, updated_at"

// LabOrderRepo provides database operations for lab orders.
type LabOrderRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewLabOrderRepo creates a new LabOrderRepo with the real time provider.
func NewLabOrderRepo(db *sql.DB) *LabOrderRepo {
	return &LabOrderRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewLabOrderRepoWithTimeProvider creates a new LabOrderRepo with a custom time provider.
func NewLabOrderRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *LabOrderRepo {
	return &LabOrderRepo{DB: db, timeProvider: tp}
}

// Create inserts a new lab order in the ordered state.
func (r *LabOrderRepo) Create(ctx context.Context, clinicID, doctorID string, req *model.CreateLabOrderRequest) (*model.LabOrder, error) {
	if req == nil {
		return nil, errors.New("create lab order request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.LabOrder
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO lab_orders (clinic_id, patient_id, doctor_id, test_name, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+labOrderColumns,
			clinicID,
			req.PatientID,
			doctorID,
			strings.TrimSpace(req.TestName),
			model.LabOrderOrdered,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LabOrder])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create lab order: %w", mapConstraintErr(err))
	}
	return &out, nil
}

// GetByID retrieves a lab order by ID within the clinic.
func (r *LabOrderRepo) GetByID(ctx context.Context, clinicID, id string) (*model.LabOrder, error) {
	var out model.LabOrder
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+labOrderColumns+` FROM lab_orders WHERE clinic_id = $1 AND id = $2`,
			clinicID, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LabOrder])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLabOrderNotFound
		}
		return nil, fmt.Errorf("failed to get lab order by ID: %w", err)
	}
	return &out, nil
}

// List retrieves lab orders with optional filters, newest first.
func (r *LabOrderRepo) List(ctx context.Context, opts *model.LabOrdersListOptions) ([]*model.LabOrder, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	conds := []database.Condition{
		database.WhereCond("clinic_id", database.Equal, opts.ClinicID),
	}
	if opts.PatientID != nil {
		conds = append(conds, database.WhereCond("patient_id", database.Equal, *opts.PatientID))
	}
	if opts.Status != nil {
		conds = append(conds, database.WhereCond("status", database.Equal, *opts.Status))
	}

	query, args := database.BuildListQuery(database.ListQueryOptions{
		Table:      "lab_orders",
		Conditions: conds,
		OrderBy:    "created_at",
		OrderDir:   "desc",
		Limit:      limit,
		Offset:     max(opts.Offset, 0),
	})

	var rowsOut []model.LabOrder
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.LabOrder])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list lab orders: %w", err)
	}

	res := make([]*model.LabOrder, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// SetStatus transitions a lab order without touching the result.
func (r *LabOrderRepo) SetStatus(ctx context.Context, clinicID, id string, status model.LabOrderStatus) (*model.LabOrder, error) {
	if !status.Valid() {
		return nil, errors.New("invalid status")
	}

	var out model.LabOrder
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE lab_orders
			SET status = $1, updated_at = $2
			WHERE clinic_id = $3 AND id = $4
			RETURNING `+labOrderColumns,
			status, r.timeProvider.Now().UTC(), clinicID, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LabOrder])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLabOrderNotFound
		}
		return nil, fmt.Errorf("failed to update lab order status: %w", err)
	}
	return &out, nil
}

// RecordResult stores the reported result document with its derived flags
// and completes the order in one statement.
func (r *LabOrderRepo) RecordResult(ctx context.Context, params core.RecordLabResultParams) (*model.LabOrder, error) {
	var out model.LabOrder
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE lab_orders
			SET status = $1, result = $2, flags = $3, completed_at = $4, updated_at = $5
			WHERE clinic_id = $6 AND id = $7
			RETURNING `+labOrderColumns,
			model.LabOrderCompleted,
			params.Result,
			params.Flags,
			params.CompletedAt.UTC(),
			r.timeProvider.Now().UTC(),
			params.ClinicID,
			params.ID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LabOrder])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLabOrderNotFound
		}
		return nil, fmt.Errorf("failed to record lab result: %w", err)
	}
	return &out, nil
}
