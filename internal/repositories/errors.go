package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrKeyNotFound is returned by key-value stores for a missing key.
var ErrKeyNotFound = errors.New("key not found")

// IsUniqueViolation reports whether err is a Postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}
