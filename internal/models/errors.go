package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrCodeGenerationFailed is returned when the reservation code
// collision-retry budget is exhausted.
var ErrCodeGenerationFailed = errors.New("reservation code generation failed after maximum attempts")

// ErrStorageUnavailable is returned for transient storage failures
// (timeouts, dropped connections). Callers may retry with backoff.
var ErrStorageUnavailable = errors.New("storage temporarily unavailable")

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports invalid caller input. Nothing has been
// written when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// SeatUnavailableError reports that one or more requested seats are
// already held on the occurrence. The whole batch is rejected.
type SeatUnavailableError struct {
	OccurrenceID string
	Seats        []int
}

func (e *SeatUnavailableError) Error() string {
	parts := make([]string, len(e.Seats))
	for i, s := range e.Seats {
		parts[i] = strconv.Itoa(s)
	}
	return fmt.Sprintf("seat(s) %s already booked on occurrence %s", strings.Join(parts, ", "), e.OccurrenceID)
}

// ConcurrencyConflictError reports that a concurrent request won a
// race the transaction detected (unique-constraint violation on a
// seat or reservation code). The operation was rolled back and can be
// retried.
type ConcurrencyConflictError struct {
	Op  string
	Err error
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("concurrent modification detected during %s: %v", e.Op, e.Err)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return e.Err
}
