package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Validation Error",
			err:        models.NewValidationError("seat_numbers", "at least one seat is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "validation_failed",
		},
		{
			name:       "Seats Unavailable",
			err:        &models.SeatUnavailableError{OccurrenceID: "occ-1", Seats: []int{4, 7}},
			wantStatus: http.StatusConflict,
			wantBody:   "seats_unavailable",
		},
		{
			name:       "Concurrency Conflict",
			err:        &models.ConcurrencyConflictError{Op: "insert booking", Err: errors.New("unique violation")},
			wantStatus: http.StatusConflict,
			wantBody:   "concurrency_conflict",
		},
		{
			name:       "Not Found",
			err:        models.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "not_found",
		},
		{
			name:       "Code Generation Failed",
			err:        models.ErrCodeGenerationFailed,
			wantStatus: http.StatusInternalServerError,
			wantBody:   "code_generation_failed",
		},
		{
			name:       "Storage Unavailable",
			err:        fmt.Errorf("lock occurrence: %w", models.ErrStorageUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "storage_unavailable",
		},
		{
			name:       "Unknown Error",
			err:        errors.New("something broke"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, logger, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
