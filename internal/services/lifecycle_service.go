package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/tripdesk/trip-booking-backend/internal/database"
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

// LifecycleService drives booking status transitions. The transition
// table and the coupled payment status live on the model; the
// repository applies them under a row lock.
type LifecycleService struct {
	bookingRepo *database.BookingRepository
	logger      *logrus.Logger
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(bookingRepo *database.BookingRepository, logger *logrus.Logger) *LifecycleService {
	return &LifecycleService{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// SetStatus transitions a booking to the requested status. Cancelling
// an already-cancelled booking succeeds without changing anything.
func (s *LifecycleService) SetStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookingRepo.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":     booking.ID,
		"status":         booking.Status,
		"payment_status": booking.PaymentStatus,
	}).Info("Booking status updated")

	return booking, nil
}

// Cancel is a convenience wrapper for the cancellation transition
func (s *LifecycleService) Cancel(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.SetStatus(ctx, bookingID, models.BookingStatusCancelled)
}
