package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE raised when the bookings overlap exclusion constraint
// rejects an insert that slipped past the application-level check.
const pgExclusionViolation = "23P01"

func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}
