package data

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Shared sentinel errors for data-layer repositories.
var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrLabOrderNotFound     = errors.New("lab order not found")
	ErrClinicNotFound       = errors.New("clinic not found")

	ErrDuplicateRecord  = errors.New("record already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// mapConstraintErr translates Postgres constraint violations into the shared
// sentinels so callers never need pgconn knowledge. Other errors pass through.
func mapConstraintErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return ErrDuplicateRecord
	case pgerrcode.ForeignKeyViolation:
		return ErrInvalidReference
	default:
		return err
	}
}
