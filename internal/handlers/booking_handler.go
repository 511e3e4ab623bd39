package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tripdesk/trip-booking-backend/internal/models"
	"github.com/tripdesk/trip-booking-backend/internal/services"
)

// BookingHandler handles seat booking and booking lifecycle endpoints
type BookingHandler struct {
	bookingService   *services.BookingService
	lifecycleService *services.LifecycleService
	logger           *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(
	bookingService *services.BookingService,
	lifecycleService *services.LifecycleService,
	logger *logrus.Logger,
) *BookingHandler {
	return &BookingHandler{
		bookingService:   bookingService,
		lifecycleService: lifecycleService,
		logger:           logger,
	}
}

// BookSeats reserves seats on an occurrence for one passenger
// POST /api/v1/occurrences/:occurrenceId/bookings
func (h *BookingHandler) BookSeats(c *gin.Context) {
	occurrenceID := c.Param("occurrenceId")
	if occurrenceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Occurrence ID is required"})
		return
	}

	var req models.BookSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	bookings, err := h.bookingService.BookSeats(c.Request.Context(), occurrenceID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bookings": bookings, "count": len(bookings)})
}

// GetAvailableSeats returns bookable seat numbers not currently held
// GET /api/v1/occurrences/:occurrenceId/seats
func (h *BookingHandler) GetAvailableSeats(c *gin.Context) {
	occurrenceID := c.Param("occurrenceId")
	if occurrenceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Occurrence ID is required"})
		return
	}

	seats, err := h.bookingService.AvailableSeats(occurrenceID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"occurrence_id": occurrenceID, "available_seats": seats})
}

// ListBookings returns all bookings on an occurrence
// GET /api/v1/occurrences/:occurrenceId/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	occurrenceID := c.Param("occurrenceId")
	if occurrenceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Occurrence ID is required"})
		return
	}

	bookings, err := h.bookingService.ListByOccurrence(occurrenceID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// GetBooking retrieves a booking by ID
// GET /api/v1/bookings/:bookingId
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID := c.Param("bookingId")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Booking ID is required"})
		return
	}

	booking, err := h.bookingService.GetByID(bookingID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// GetBookingByCode retrieves a booking by its reservation code
// GET /api/v1/bookings/by-code/:code
func (h *BookingHandler) GetBookingByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Reservation code is required"})
		return
	}

	booking, err := h.bookingService.GetByReservationCode(code)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// SetBookingStatus transitions a booking's lifecycle status
// PATCH /api/v1/bookings/:bookingId/status
func (h *BookingHandler) SetBookingStatus(c *gin.Context) {
	bookingID := c.Param("bookingId")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Booking ID is required"})
		return
	}

	var req models.SetBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	booking, err := h.lifecycleService.SetStatus(c.Request.Context(), bookingID, models.BookingStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// GetPayment retrieves the payment recorded for a booking
// GET /api/v1/bookings/:bookingId/payment
func (h *BookingHandler) GetPayment(c *gin.Context) {
	bookingID := c.Param("bookingId")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Booking ID is required"})
		return
	}

	payment, err := h.bookingService.GetPayment(bookingID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}
