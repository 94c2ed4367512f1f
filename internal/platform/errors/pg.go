package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pg error class prefixes we treat as retryable
// 08 connection exceptions, 40 transaction rollbacks (serialization, deadlock)
func retryableSQLState(code string) bool {
	if len(code) < 2 {
		return false
	}
	switch code[:2] {
	case "08", "40":
		return true
	}
	return code == "57P03" // cannot_connect_now
}

// IsRetryable reports whether err looks like a transient Postgres failure
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return retryableSQLState(pgErr.Code)
	}
	return false
}

// FromPG maps a Postgres error into a project *Error with the DB code
// Non-pg errors pass through wrapped with the same code
func FromPG(err error, op string) error {
	if err == nil {
		return nil
	}
	e := Wrapf(err, ErrorCodeDB, "postgres: %s", op)
	return WithOp(e, op)
}
