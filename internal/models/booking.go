package models

import (
	"crypto/rand"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusBoarded   BookingStatus = "boarded"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the payment status of a booking
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Booking represents one reserved seat on a trip occurrence. A party
// booking N seats produces N rows sharing passenger details.
type Booking struct {
	ID               string        `json:"id" db:"id"`
	OccurrenceID     string        `json:"occurrence_id" db:"occurrence_id"`
	TemplateID       string        `json:"template_id" db:"template_id"` // denormalized for queries
	TripDate         time.Time     `json:"trip_date" db:"trip_date"`     // denormalized for queries
	ReservationCode  string        `json:"reservation_code" db:"reservation_code"`
	SeatNumber       int           `json:"seat_number" db:"seat_number"`
	PassengerName    string        `json:"passenger_name" db:"passenger_name"`
	PassengerEmail   string        `json:"passenger_email" db:"passenger_email"`
	PassengerPhone   string        `json:"passenger_phone" db:"passenger_phone"`
	EmergencyContact *string       `json:"emergency_contact,omitempty" db:"emergency_contact"`
	SpecialRequests  *string       `json:"special_requests,omitempty" db:"special_requests"`
	TotalAmount      float64       `json:"total_amount" db:"total_amount"`
	Status           BookingStatus `json:"status" db:"status"`
	PaymentStatus    PaymentStatus `json:"payment_status" db:"payment_status"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}

// HoldsSeat reports whether this booking blocks its seat from resale.
// Cancelled bookings (either status axis) free the seat.
func (b *Booking) HoldsSeat() bool {
	return b.Status != BookingStatusCancelled && b.PaymentStatus != PaymentStatusCancelled
}

// CountsTowardOccupancy reports whether this booking is included in
// the occurrence's booked-seat counter.
func (b *Booking) CountsTowardOccupancy() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusBoarded
}

// Payment is the record the core creates when a booking is inserted
// with payment_status=paid. Its later lifecycle is external.
type Payment struct {
	ID        string    `json:"id" db:"id"`
	BookingID string    `json:"booking_id" db:"booking_id"`
	Amount    float64   `json:"amount" db:"amount"`
	Method    string    `json:"method" db:"method"`
	Reference string    `json:"reference" db:"reference"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PassengerInfo carries the passenger identity for a booking batch
type PassengerInfo struct {
	Name             string  `json:"name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Phone            string  `json:"phone" binding:"required"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
	SpecialRequests  *string `json:"special_requests,omitempty"`
}

// BookSeatsRequest represents the request to book one or more seats
type BookSeatsRequest struct {
	Passenger     PassengerInfo `json:"passenger" binding:"required"`
	SeatNumbers   []int         `json:"seat_numbers" binding:"required,min=1"`
	PaymentStatus string        `json:"payment_status" binding:"required,oneof=pending paid"`
	PaymentMethod string        `json:"payment_method,omitempty"`
}

// SetBookingStatusRequest transitions a booking's lifecycle status
type SetBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed boarded cancelled"`
}

// bookingTransitions is the lifecycle transition table. Cancelled is
// terminal: the only accepted request from it is another cancel, which
// is an idempotent no-op.
var bookingTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingStatusPending: {
		BookingStatusPending:   true,
		BookingStatusConfirmed: true,
		BookingStatusBoarded:   true,
		BookingStatusCancelled: true,
	},
	BookingStatusConfirmed: {
		BookingStatusPending:   true,
		BookingStatusConfirmed: true,
		BookingStatusBoarded:   true,
		BookingStatusCancelled: true,
	},
	BookingStatusBoarded: {
		BookingStatusPending:   true,
		BookingStatusConfirmed: true,
		BookingStatusBoarded:   true,
		BookingStatusCancelled: true,
	},
	BookingStatusCancelled: {
		BookingStatusCancelled: true,
	},
}

// CanTransition reports whether the lifecycle controller accepts a
// transition from one status to another.
func CanTransition(from, to BookingStatus) bool {
	allowed, ok := bookingTransitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}

// CoupledPaymentStatus returns the payment status forced by a booking
// status transition. Confirmation implies payment receipt; cancellation
// cancels the payment. Other transitions leave payment state untouched.
func CoupledPaymentStatus(newStatus BookingStatus, current PaymentStatus) PaymentStatus {
	switch newStatus {
	case BookingStatusConfirmed:
		return PaymentStatusPaid
	case BookingStatusCancelled:
		return PaymentStatusCancelled
	default:
		return current
	}
}

// reservationAlphabet omits 0/O and 1/I so codes survive being read
// over the phone.
const reservationAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// GenerateReservationCode returns a human-readable candidate code like
// "TRP-7K3N9F". Uniqueness is not guaranteed by construction; callers
// must check and retry on collision.
func GenerateReservationCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = reservationAlphabet[int(b)%len(reservationAlphabet)]
	}
	return "TRP-" + string(buf), nil
}
