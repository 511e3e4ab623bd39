package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

// respondError maps service errors onto HTTP responses. Every handler
// funnels its error path through here so the taxonomy maps to status
// codes in exactly one place.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"field":   validationErr.Field,
			"message": validationErr.Message,
		})
		return
	}

	var seatErr *models.SeatUnavailableError
	if errors.As(err, &seatErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":         "seats_unavailable",
			"message":       "One or more requested seats are already booked",
			"occurrence_id": seatErr.OccurrenceID,
			"seats":         seatErr.Seats,
		})
		return
	}

	var conflictErr *models.ConcurrencyConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "concurrency_conflict",
			"message":   "The request conflicted with a concurrent update, retry",
			"retryable": true,
		})
		return
	}

	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Resource not found"})
		return
	}

	if errors.Is(err, models.ErrCodeGenerationFailed) {
		logger.WithError(err).Error("Reservation code generation exhausted retries")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "code_generation_failed",
			"message": "Could not allocate a reservation code",
		})
		return
	}

	if errors.Is(err, models.ErrStorageUnavailable) {
		logger.WithError(err).Error("Storage unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "storage_unavailable",
			"message": "Storage is temporarily unavailable",
		})
		return
	}

	logger.WithError(err).Error("Unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "Internal server error"})
}
