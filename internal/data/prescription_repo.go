package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/caredesk/clinic-portal/internal/data/database"
	"github.com/caredesk/clinic-portal/internal/data/pgxutil"
	"github.com/caredesk/clinic-portal/internal/domain/model"
)

const prescriptionColumns = "id, clinic_id, patient_id, doctor_id, medication, dosage, instructions, status, dispensed_at, created_at, updated_at"

// PrescriptionRepo provides database operations for prescriptions.
type PrescriptionRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPrescriptionRepo creates a new PrescriptionRepo with the real time provider.
func NewPrescriptionRepo(db *sql.DB) *PrescriptionRepo {
	return &PrescriptionRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewPrescriptionRepoWithTimeProvider creates a new PrescriptionRepo with a custom time provider.
func NewPrescriptionRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *PrescriptionRepo {
	return &PrescriptionRepo{DB: db, timeProvider: tp}
}

// Create inserts a new pending prescription written by the doctor.
func (r *PrescriptionRepo) Create(ctx context.Context, clinicID, doctorID string, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if req == nil {
		return nil, errors.New("create prescription request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Prescription
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO prescriptions (clinic_id, patient_id, doctor_id, medication, dosage, instructions, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			RETURNING `+prescriptionColumns,
			clinicID,
			req.PatientID,
			doctorID,
			strings.TrimSpace(req.Medication),
			strings.TrimSpace(req.Dosage),
			req.Instructions,
			model.PrescriptionPending,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Prescription])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", mapConstraintErr(err))
	}
	return &out, nil
}

// GetByID retrieves a prescription by ID within the clinic.
func (r *PrescriptionRepo) GetByID(ctx context.Context, clinicID, id string) (*model.Prescription, error) {
	var out model.Prescription
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+prescriptionColumns+` FROM prescriptions WHERE clinic_id = $1 AND id = $2`,
			clinicID, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Prescription])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrescriptionNotFound
		}
		return nil, fmt.Errorf("failed to get prescription by ID: %w", err)
	}
	return &out, nil
}

// List retrieves prescriptions with optional filters, newest first.
func (r *PrescriptionRepo) List(ctx context.Context, opts *model.PrescriptionsListOptions) ([]*model.Prescription, error) {
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
	if opts.DoctorID != nil {
		conds = append(conds, database.WhereCond("doctor_id", database.Equal, *opts.DoctorID))
	}
	if opts.Status != nil {
		conds = append(conds, database.WhereCond("status", database.Equal, *opts.Status))
	}

	query, args := database.BuildListQuery(database.ListQueryOptions{
		Table:      "prescriptions",
		Conditions: conds,
		OrderBy:    "created_at",
		OrderDir:   "desc",
		Limit:      limit,
		Offset:     max(opts.Offset, 0),
	})

	var rowsOut []model.Prescription
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Prescription])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}

	res := make([]*model.Prescription, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// SetStatus transitions a prescription. Moving to dispensed stamps
// dispensed_at; any other transition clears it.
func (r *PrescriptionRepo) SetStatus(ctx context.Context, clinicID, id string, status model.PrescriptionStatus) (*model.Prescription, error) {
	if !status.Valid() {
		return nil, errors.New("invalid status")
	}

	now := r.timeProvider.Now().UTC()
	var dispensedAt any
	if status == model.PrescriptionDispensed {
		dispensedAt = now
	}

	var out model.Prescription
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE prescriptions
			SET status = $1, dispensed_at = $2, updated_at = $3
			WHERE clinic_id = $4 AND id = $5
			RETURNING `+prescriptionColumns,
			status, dispensedAt, now, clinicID, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Prescription])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrescriptionNotFound
		}
		return nil, fmt.Errorf("failed to update prescription status: %w", err)
	}
	return &out, nil
}
