package repo

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Sentinel errors for the store layer. Handlers map these to HTTP statuses;
// raw pq errors never leave this package.
var (
	// ErrNotFound means the requested entity id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists means a duplicate was detected before any write (category name pre-check).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidReference means a foreign key is dangling or blocks the operation.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrConstraintViolation means a uniqueness constraint rejected the write (e.g. duplicate serial number).
	ErrConstraintViolation = errors.New("constraint violation")
)

// Postgres error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// normalizeError maps driver-level failures onto the store error taxonomy.
// Anything unrecognized is returned as-is for the handler to treat as internal.
func normalizeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrInvalidReference, pqErr.Constraint)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrConstraintViolation, pqErr.Constraint)
		}
	}
	return err
}
