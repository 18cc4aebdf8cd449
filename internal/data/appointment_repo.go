package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/caredesk/clinic-portal/internal/data/database"
	"github.com/caredesk/clinic-portal/internal/data/pgxutil"
	"github.com/caredesk/clinic-portal/internal/domain/model"
)

const appointmentColumns = "id, clinic_id, patient_id, doctor_id, scheduled_at, status, notes, created_at, updated_at"

// AppointmentRepo provides database operations for appointments.
type AppointmentRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAppointmentRepo creates a new AppointmentRepo with the real time provider.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo {
	return &AppointmentRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAppointmentRepoWithTimeProvider creates a new AppointmentRepo with a custom time provider.
func NewAppointmentRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AppointmentRepo {
	return &AppointmentRepo{DB: db, timeProvider: tp}
}

// Create inserts a new appointment, initially scheduled.
func (r *AppointmentRepo) Create(ctx context.Context, clinicID string, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if req == nil {
		return nil, errors.New("create appointment request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Appointment
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO appointments (clinic_id, patient_id, doctor_id, scheduled_at, status, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			RETURNING `+appointmentColumns,
			clinicID,
			req.PatientID,
			req.DoctorID,
			req.ScheduledAt.UTC(),
			model.AppointmentScheduled,
			req.Notes,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Appointment])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", mapConstraintErr(err))
	}
	return &out, nil
}

// GetByID retrieves an appointment by ID within the clinic.
func (r *AppointmentRepo) GetByID(ctx context.Context, clinicID, id string) (*model.Appointment, error) {
	var out model.Appointment
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+appointmentColumns+` FROM appointments WHERE clinic_id = $1 AND id = $2`,
			clinicID, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Appointment])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment by ID: %w", err)
	}
	return &out, nil
}

// List retrieves appointments with optional filters, newest first.
func (r *AppointmentRepo) List(ctx context.Context, opts *model.AppointmentsListOptions) ([]*model.Appointment, error) {
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
	if opts.From != nil {
		conds = append(conds, database.WhereCond("scheduled_at", database.GreaterThanOrEqual, opts.From.UTC()))
	}
	if opts.To != nil {
		conds = append(conds, database.WhereCond("scheduled_at", database.LessThan, opts.To.UTC()))
	}

	query, args := database.BuildListQuery(database.ListQueryOptions{
		Table:      "appointments",
		Conditions: conds,
		OrderBy:    "scheduled_at",
		OrderDir:   "desc",
		Limit:      limit,
		Offset:     max(opts.Offset, 0),
	})

	var rowsOut []model.Appointment
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Appointment])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	res := make([]*model.Appointment, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of an appointment within the clinic.
func (r *AppointmentRepo) Update(ctx context.Context, clinicID, id string, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	if req == nil {
		return nil, errors.New("update appointment request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 4)
	args := make([]any, 0, 6)
	nextIdx := func() int { return len(args) + 1 }

	if req.ScheduledAt != nil {
		setParts = append(setParts, fmt.Sprintf("scheduled_at = $%d", nextIdx()))
		args = append(args, req.ScheduledAt.UTC())
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}
	if req.Notes != nil {
		setParts = append(setParts, fmt.Sprintf("notes = $%d", nextIdx()))
		args = append(args, *req.Notes)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, clinicID, id)
	query := "UPDATE appointments SET " + strings.Join(setParts, ", ") +
		" WHERE clinic_id = $" + strconv.Itoa(len(args)-1) +
		" AND id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + appointmentColumns

	var out model.Appointment
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Appointment])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to update appointment: %w", mapConstraintErr(err))
	}
	return &out, nil
}

// Delete deletes an appointment by ID within the clinic.
func (r *AppointmentRepo) Delete(ctx context.Context, clinicID, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM appointments WHERE clinic_id = $1 AND id = $2`, clinicID, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete appointment: %w", err)
	}
	return rows > 0, nil
}

// FindUpcoming returns scheduled appointments starting inside [from, to),
// across all clinics, ordered by start time. Used by the reminder worker.
func (r *AppointmentRepo) FindUpcoming(ctx context.Context, from, to time.Time) ([]*model.Appointment, error) {
	var rowsOut []model.Appointment
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+appointmentColumns+`
			FROM appointments
			WHERE status = $1 AND scheduled_at >= $2 AND scheduled_at < $3
			ORDER BY scheduled_at ASC`,
			model.AppointmentScheduled, from.UTC(), to.UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Appointment])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to find upcoming appointments: %w", err)
	}

	res := make([]*model.Appointment, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
