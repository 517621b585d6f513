package allocation

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mintforge/packvault/internal/domain"
)

// Postgres SQLSTATE codes that indicate transient transaction contention.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// isSerializationFailure reports whether err is a transient storage conflict
// worth retrying: a postgres serialization failure or deadlock, or a
// repository signalling domain.ErrTemporaryConflict directly (the in-memory
// implementation does this).
func isSerializationFailure(err error) bool {
	if errors.Is(err, domain.ErrTemporaryConflict) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}
	return false
}
