package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/caredesk/clinic-portal/internal/data/database"
	"github.com/caredesk/clinic-portal/internal/data/pgxutil"
	"github.com/caredesk/clinic-portal/internal/domain/model"
)

const patientColumns = "id, clinic_id, user_id, name, email, phone, address, date_of_birth, created_at, updated_at"

// PatientRepo provides database operations for patients. Every query is
// scoped by clinic_id; there is no cross-tenant read path.
type PatientRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPatientRepo creates a new PatientRepo with the real time provider.
func NewPatientRepo(db *sql.DB) *PatientRepo {
	return &PatientRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewPatientRepoWithTimeProvider creates a new PatientRepo with a custom time provider.
func NewPatientRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *PatientRepo {
	return &PatientRepo{DB: db, timeProvider: tp}
}

// Create inserts a new patient into the clinic.
func (r *PatientRepo) Create(ctx context.Context, clinicID string, req *model.CreatePatientRequest) (*model.Patient, error) {
	if req == nil {
		return nil, errors.New("create patient request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Patient
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO patients (clinic_id, name, email, phone, address, date_of_birth, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			RETURNING `+patientColumns,
			clinicID,
			strings.TrimSpace(req.Name),
			req.Email,
			req.Phone,
			req.Address,
			req.DateOfBirth,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Patient])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", mapConstraintErr(err))
	}
	return &out, nil
}

// GetByID retrieves a patient by ID within the clinic.
func (r *PatientRepo) GetByID(ctx context.Context, clinicID, id string) (*model.Patient, error) {
	var out model.Patient
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+patientColumns+` FROM patients WHERE clinic_id = $1 AND id = $2`,
			clinicID, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Patient])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient by ID: %w", err)
	}
	return &out, nil
}

// List retrieves patients with optional filters and sorting.
func (r *PatientRepo) List(ctx context.Context, opts *model.PatientsListOptions) ([]*model.Patient, error) {
	queryOpts := buildPatientQueryOptions(opts, false)
	query, args := database.BuildListQuery(queryOpts)

	var rowsOut []model.Patient
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Patient])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	res := make([]*model.Patient, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the number of patients matching the filters.
func (r *PatientRepo) Count(ctx context.Context, opts *model.PatientsListOptions) (int, error) {
	queryOpts := buildPatientQueryOptions(opts, true)
	query, args := database.BuildListQuery(queryOpts)

	var count int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&count)
	}); err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}

// Update updates fields of a patient within the clinic.
func (r *PatientRepo) Update(ctx context.Context, clinicID, id string, req *model.UpdatePatientRequest) (*model.Patient, error) {
	if req == nil {
		return nil, errors.New("update patient request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 6)
	args := make([]any, 0, 8)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", nextIdx()))
		args = append(args, *req.Email)
	}
	if req.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("phone = $%d", nextIdx()))
		args = append(args, *req.Phone)
	}
	if req.Address != nil {
		setParts = append(setParts, fmt.Sprintf("address = $%d", nextIdx()))
		args = append(args, *req.Address)
	}
	if req.DateOfBirth != nil {
		setParts = append(setParts, fmt.Sprintf("date_of_birth = $%d", nextIdx()))
		args = append(args, *req.DateOfBirth)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, clinicID, id)
	query := "UPDATE patients SET " + strings.Join(setParts, ", ") +
		" WHERE clinic_id = $" + strconv.Itoa(len(args)-1) +
		" AND id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + patientColumns

	var out model.Patient
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Patient])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to update patient: %w", mapConstraintErr(err))
	}
	return &out, nil
}

// Delete deletes a patient by ID within the clinic.
func (r *PatientRepo) Delete(ctx context.Context, clinicID, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM patients WHERE clinic_id = $1 AND id = $2`, clinicID, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete patient: %w", err)
	}
	return rows > 0, nil
}

func buildPatientQueryOptions(opts *model.PatientsListOptions, countOnly bool) database.ListQueryOptions {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	conds := []database.Condition{
		database.WhereCond("clinic_id", database.Equal, opts.ClinicID),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		conds = append(conds, database.WhereCond("name", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"))
	}

	sort := "created_at"
	if strings.EqualFold(opts.Sort, "name") {
		sort = "name"
	}
	dir := "desc"
	if strings.EqualFold(opts.Dir, "asc") {
		dir = "asc"
	}

	return database.ListQueryOptions{
		Table:      "patients",
		CountOnly:  countOnly,
		Conditions: conds,
		OrderBy:    sort,
		OrderDir:   dir,
		Limit:      limit,
		Offset:     offset,
	}
}
