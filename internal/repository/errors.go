package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUniqueViolation     = errors.New("unique violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrCheckViolation      = errors.New("check violation")
	ErrNotNullViolation    = errors.New("not null violation")
	ErrInvalidData         = errors.New("invalid data")
	ErrStorage             = errors.New("storage failure")
)

// DBError carries the classified kind of a database failure together with
// the constraint that fired, when Postgres reports one.
type DBError struct {
	Kind       error
	Constraint string
	Err        error
}

func (e *DBError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s (%s): %v", e.Kind, e.Constraint, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *DBError) Unwrap() []error { return []error{e.Kind, e.Err} }

// classify wraps errors that originate in the database driver. Errors it
// does not recognise as database errors are returned untouched so that
// callback errors from WithTx keep their identity.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &DBError{Kind: kindForSQLState(pgErr.Code), Constraint: pgErr.ConstraintName, Err: err}
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, driver.ErrBadConn),
		errors.As(err, &connErr),
		errors.As(err, &netErr):
		return &DBError{Kind: ErrStorage, Err: err}
	}

	return err
}

func kindForSQLState(code string) error {
	switch code {
	case "23505":
		return ErrUniqueViolation
	case "23503":
		return ErrForeignKeyViolation
	case "23514":
		return ErrCheckViolation
	case "23502":
		return ErrNotNullViolation
	}
	// class 22: value too long, numeric overflow, bad encoding
	if strings.HasPrefix(code, "22") {
		return ErrInvalidData
	}
	return ErrStorage
}
