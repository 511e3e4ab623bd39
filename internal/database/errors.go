package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

// pq error codes we branch on
const (
	pqUniqueViolation       = "23505"
	pqSerializationFailure  = "40001"
	pqDeadlockDetected      = "40P01"
	pqQueryCanceled         = "57014"
	pqConnectionFailureBase = "08"
)

// translateError maps driver errors onto the domain taxonomy. A
// unique-constraint violation or serialization failure means a
// concurrent request won a race the transaction detected; timeouts and
// connection drops are transient and retryable.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, models.ErrStorageUnavailable)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == pqUniqueViolation,
			pqErr.Code == pqSerializationFailure,
			pqErr.Code == pqDeadlockDetected:
			return &models.ConcurrencyConflictError{Op: op, Err: err}
		case pqErr.Code == pqQueryCanceled,
			pqErr.Code.Class() == pqConnectionFailureBase:
			return fmt.Errorf("%s: %w", op, models.ErrStorageUnavailable)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
