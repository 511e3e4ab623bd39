package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tripdesk/trip-booking-backend/internal/database"
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

// BookingService coordinates seat reservation on trip occurrences. The
// atomic multi-seat reservation itself runs in the repository
// transaction; this layer handles request shaping, batch limits and
// availability views.
type BookingService struct {
	bookingRepo    *database.BookingRepository
	paymentRepo    *database.PaymentRepository
	occurrenceRepo *database.TripOccurrenceRepository
	templateRepo   *database.TripTemplateRepository
	maxSeats       int
	logger         *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo *database.BookingRepository,
	paymentRepo *database.PaymentRepository,
	occurrenceRepo *database.TripOccurrenceRepository,
	templateRepo *database.TripTemplateRepository,
	maxSeats int,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo:    bookingRepo,
		paymentRepo:    paymentRepo,
		occurrenceRepo: occurrenceRepo,
		templateRepo:   templateRepo,
		maxSeats:       maxSeats,
		logger:         logger,
	}
}

// BookSeats reserves the requested seats on an occurrence for one
// passenger. Either every seat is booked or none are.
func (s *BookingService) BookSeats(ctx context.Context, occurrenceID string, req *models.BookSeatsRequest) ([]models.Booking, error) {
	if len(req.SeatNumbers) > s.maxSeats {
		return nil, models.NewValidationError("seat_numbers",
			fmt.Sprintf("at most %d seats per booking", s.maxSeats))
	}

	paymentStatus := models.PaymentStatus(req.PaymentStatus)
	if paymentStatus == models.PaymentStatusPaid && req.PaymentMethod == "" {
		return nil, models.NewValidationError("payment_method", "required when payment_status is paid")
	}

	bookings, err := s.bookingRepo.CreateBatch(
		ctx, occurrenceID, req.Passenger, req.SeatNumbers,
		paymentStatus, req.PaymentMethod, s.paymentRepo,
	)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(bookings))
	for _, b := range bookings {
		codes = append(codes, b.ReservationCode)
	}

	s.logger.WithFields(logrus.Fields{
		"occurrence_id":     occurrenceID,
		"passenger_email":   req.Passenger.Email,
		"seat_count":        len(bookings),
		"payment_status":    paymentStatus,
		"reservation_codes": codes,
	}).Info("Seats booked")

	return bookings, nil
}

// AvailableSeats returns the passenger seat numbers on an occurrence
// that are not currently held.
func (s *BookingService) AvailableSeats(occurrenceID string) ([]int, error) {
	occurrence, err := s.occurrenceRepo.GetByID(occurrenceID)
	if err != nil {
		return nil, err
	}

	template, err := s.templateRepo.GetByID(occurrence.TemplateID)
	if err != nil {
		return nil, err
	}

	held, err := s.bookingRepo.HeldSeatNumbers(occurrenceID)
	if err != nil {
		return nil, err
	}

	heldSet := make(map[int]bool, len(held))
	for _, seat := range held {
		heldSet[seat] = true
	}

	layout := models.SeatLayoutForCapacity(template.SeatCapacity)
	available := []int{}
	for _, seat := range layout.PassengerSeats() {
		if !heldSet[seat] {
			available = append(available, seat)
		}
	}
	return available, nil
}

// GetByID retrieves a booking by ID
func (s *BookingService) GetByID(bookingID string) (*models.Booking, error) {
	return s.bookingRepo.GetByID(bookingID)
}

// GetByReservationCode retrieves a booking by its reservation code
func (s *BookingService) GetByReservationCode(code string) (*models.Booking, error) {
	return s.bookingRepo.GetByReservationCode(code)
}

// ListByOccurrence retrieves all bookings on an occurrence
func (s *BookingService) ListByOccurrence(occurrenceID string) ([]models.Booking, error) {
	return s.bookingRepo.GetByOccurrenceID(occurrenceID)
}

// GetPayment retrieves the payment recorded for a booking
func (s *BookingService) GetPayment(bookingID string) (*models.Payment, error) {
	return s.paymentRepo.GetByBookingID(bookingID)
}
