package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505). Lets services turn an insert that lost a
// duplicate race into a conflict instead of a server error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
