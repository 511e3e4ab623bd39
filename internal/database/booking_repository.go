package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

// BookingRepository handles database operations for the bookings table,
// including the transactional seat-reservation path. It takes *sqlx.DB
// directly because every mutation spans multiple statements.
type BookingRepository struct {
	db           *sqlx.DB
	codeLength   int
	codeAttempts int
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB, codeLength, codeAttempts int) *BookingRepository {
	return &BookingRepository{
		db:           db,
		codeLength:   codeLength,
		codeAttempts: codeAttempts,
	}
}

const bookingColumns = `
	id, occurrence_id, template_id, trip_date, reservation_code, seat_number,
	passenger_name, passenger_email, passenger_phone, emergency_contact,
	special_requests, total_amount, status, payment_status, created_at, updated_at
`

// occurrenceLock is the in-transaction view of an occurrence and its
// template, read under FOR UPDATE so concurrent bookings serialize on
// the occurrence row.
type occurrenceLock struct {
	ID             string                  `db:"id"`
	TemplateID     string                  `db:"template_id"`
	TripDate       time.Time               `db:"trip_date"`
	Status         models.OccurrenceStatus `db:"status"`
	Price          float64                 `db:"price"`
	SeatCapacity   int                     `db:"seat_capacity"`
	TemplateStatus models.TemplateStatus   `db:"template_status"`
}

// CreateBatch atomically reserves the requested seats on an occurrence.
// All seats succeed or the whole call rolls back with no visible
// effect: one booking row per seat, a payment row per booking when
// paid, and the occurrence counter recomputed from the booking rows.
func (r *BookingRepository) CreateBatch(
	ctx context.Context,
	occurrenceID string,
	passenger models.PassengerInfo,
	seatNumbers []int,
	paymentStatus models.PaymentStatus,
	paymentMethod string,
	paymentRepo *PaymentRepository,
) ([]models.Booking, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, translateError("begin booking transaction", err)
	}
	defer tx.Rollback()

	// Lock the occurrence row so overlapping batches for the same trip
	// serialize here rather than racing at the unique index.
	lockQuery := `
		SELECT o.id, o.template_id, o.trip_date, o.status,
			   t.price, t.seat_capacity, t.status AS template_status
		FROM trip_occurrences o
		JOIN trip_templates t ON t.id = o.template_id
		WHERE o.id = $1
		FOR UPDATE OF o
	`

	var lock occurrenceLock
	if err := tx.GetContext(ctx, &lock, lockQuery, occurrenceID); err != nil {
		return nil, translateError("lock occurrence", err)
	}

	if lock.Status != models.OccurrenceStatusActive {
		return nil, models.NewValidationError("occurrence_id", "occurrence is cancelled")
	}
	if lock.TemplateStatus != models.TemplateStatusActive {
		return nil, models.NewValidationError("occurrence_id", "trip template is not active")
	}

	layout := models.SeatLayoutForCapacity(lock.SeatCapacity)
	seats, err := normalizeSeatNumbers(seatNumbers, layout)
	if err != nil {
		return nil, err
	}

	// Reject the whole batch if any requested seat is already held by
	// a non-cancelled booking. Partial success would split a party.
	conflictQuery := `
		SELECT seat_number
		FROM bookings
		WHERE occurrence_id = $1
		  AND seat_number = ANY($2)
		  AND status <> 'cancelled'
		  AND payment_status <> 'cancelled'
		ORDER BY seat_number
	`

	taken := []int{}
	if err := tx.SelectContext(ctx, &taken, conflictQuery, occurrenceID, pq.Array(seats)); err != nil {
		return nil, translateError("check seat availability", err)
	}
	if len(taken) > 0 {
		return nil, &models.SeatUnavailableError{OccurrenceID: occurrenceID, Seats: taken}
	}

	status := models.BookingStatusPending
	if paymentStatus == models.PaymentStatusPaid {
		status = models.BookingStatusConfirmed
	}

	insertQuery := `
		INSERT INTO bookings (
			id, occurrence_id, template_id, trip_date, reservation_code,
			seat_number, passenger_name, passenger_email, passenger_phone,
			emergency_contact, special_requests, total_amount, status, payment_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		RETURNING created_at, updated_at
	`

	bookings := make([]models.Booking, 0, len(seats))
	for _, seat := range seats {
		code, err := r.generateUniqueCode(ctx, tx)
		if err != nil {
			return nil, err
		}

		booking := models.Booking{
			ID:               uuid.New().String(),
			OccurrenceID:     occurrenceID,
			TemplateID:       lock.TemplateID,
			TripDate:         lock.TripDate,
			ReservationCode:  code,
			SeatNumber:       seat,
			PassengerName:    passenger.Name,
			PassengerEmail:   passenger.Email,
			PassengerPhone:   passenger.Phone,
			EmergencyContact: passenger.EmergencyContact,
			SpecialRequests:  passenger.SpecialRequests,
			TotalAmount:      lock.Price,
			Status:           status,
			PaymentStatus:    paymentStatus,
		}

		err = tx.QueryRowxContext(ctx, insertQuery,
			booking.ID, booking.OccurrenceID, booking.TemplateID, booking.TripDate,
			booking.ReservationCode, booking.SeatNumber, booking.PassengerName,
			booking.PassengerEmail, booking.PassengerPhone, booking.EmergencyContact,
			booking.SpecialRequests, booking.TotalAmount, booking.Status,
			booking.PaymentStatus,
		).Scan(&booking.CreatedAt, &booking.UpdatedAt)
		if err != nil {
			return nil, translateError("insert booking", err)
		}

		if paymentStatus == models.PaymentStatusPaid {
			payment := &models.Payment{
				ID:        uuid.New().String(),
				BookingID: booking.ID,
				Amount:    booking.TotalAmount,
				Method:    paymentMethod,
				Reference: booking.ReservationCode,
				Status:    "completed",
			}
			if err := paymentRepo.CreateTx(ctx, tx, payment); err != nil {
				return nil, err
			}
		}

		bookings = append(bookings, booking)
	}

	if err := recountBookedSeats(ctx, tx, occurrenceID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, translateError("commit booking transaction", err)
	}

	return bookings, nil
}

// UpdateStatus transitions a booking's lifecycle status, applies the
// coupled payment status, and recomputes the occurrence counter, all
// in one transaction. Cancelling an already-cancelled booking is a
// no-op success.
func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID string, newStatus models.BookingStatus) (*models.Booking, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, translateError("begin status transaction", err)
	}
	defer tx.Rollback()

	lockQuery := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	var booking models.Booking
	if err := tx.GetContext(ctx, &booking, lockQuery, bookingID); err != nil {
		return nil, translateError("lock booking", err)
	}

	if booking.Status == models.BookingStatusCancelled && newStatus == models.BookingStatusCancelled {
		if err := tx.Commit(); err != nil {
			return nil, translateError("commit status transaction", err)
		}
		return &booking, nil
	}

	if !models.CanTransition(booking.Status, newStatus) {
		return nil, models.NewValidationError("status",
			fmt.Sprintf("transition from %s to %s is not supported", booking.Status, newStatus))
	}

	newPayment := models.CoupledPaymentStatus(newStatus, booking.PaymentStatus)

	updateQuery := `
		UPDATE bookings
		SET status = $2, payment_status = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	if err := tx.QueryRowxContext(ctx, updateQuery, bookingID, newStatus, newPayment).Scan(&booking.UpdatedAt); err != nil {
		return nil, translateError("update booking status", err)
	}
	booking.Status = newStatus
	booking.PaymentStatus = newPayment

	if err := recountBookedSeats(ctx, tx, booking.OccurrenceID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, translateError("commit status transaction", err)
	}

	return &booking, nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(bookingID string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking models.Booking
	if err := r.db.Get(&booking, query, bookingID); err != nil {
		return nil, translateError("get booking", err)
	}
	return &booking, nil
}

// GetByReservationCode retrieves a booking by its reservation code
func (r *BookingRepository) GetByReservationCode(code string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reservation_code = $1`

	var booking models.Booking
	if err := r.db.Get(&booking, query, code); err != nil {
		return nil, translateError("get booking by code", err)
	}
	return &booking, nil
}

// GetByOccurrenceID retrieves all bookings on an occurrence, oldest
// first. Cancelled bookings are included; callers filter as needed.
func (r *BookingRepository) GetByOccurrenceID(occurrenceID string) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE occurrence_id = $1
		ORDER BY created_at
	`

	bookings := []models.Booking{}
	if err := r.db.Select(&bookings, query, occurrenceID); err != nil {
		return nil, translateError("list bookings", err)
	}
	return bookings, nil
}

// HeldSeatNumbers returns the seat numbers currently blocked from
// resale on an occurrence.
func (r *BookingRepository) HeldSeatNumbers(occurrenceID string) ([]int, error) {
	query := `
		SELECT seat_number
		FROM bookings
		WHERE occurrence_id = $1
		  AND status <> 'cancelled'
		  AND payment_status <> 'cancelled'
		ORDER BY seat_number
	`

	seats := []int{}
	if err := r.db.Select(&seats, query, occurrenceID); err != nil {
		return nil, translateError("list held seats", err)
	}
	return seats, nil
}

// generateUniqueCode draws random reservation codes until one is
// globally unused, bounded by the configured retry budget.
func (r *BookingRepository) generateUniqueCode(ctx context.Context, tx *sqlx.Tx) (string, error) {
	existsQuery := `SELECT EXISTS (SELECT 1 FROM bookings WHERE reservation_code = $1)`

	for attempt := 0; attempt < r.codeAttempts; attempt++ {
		code, err := models.GenerateReservationCode(r.codeLength)
		if err != nil {
			return "", fmt.Errorf("generate reservation code: %w", err)
		}

		var exists bool
		if err := tx.GetContext(ctx, &exists, existsQuery, code); err != nil {
			return "", translateError("check reservation code", err)
		}
		if !exists {
			return code, nil
		}
	}

	return "", models.ErrCodeGenerationFailed
}

// recountBookedSeats rewrites the occurrence counter from the booking
// rows. Recomputation inside the mutating transaction keeps the
// denormalized value from drifting.
func recountBookedSeats(ctx context.Context, tx *sqlx.Tx, occurrenceID string) error {
	query := `
		UPDATE trip_occurrences
		SET booked_seats = (
			SELECT COUNT(*) FROM bookings
			WHERE occurrence_id = $1 AND status IN ('confirmed', 'boarded')
		),
		updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.ExecContext(ctx, query, occurrenceID)
	if err != nil {
		return translateError("recount booked seats", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translateError("recount booked seats", err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}

	return nil
}

// normalizeSeatNumbers deduplicates and validates the requested seats
// against the vehicle layout.
func normalizeSeatNumbers(seatNumbers []int, layout models.SeatLayout) ([]int, error) {
	if len(seatNumbers) == 0 {
		return nil, models.NewValidationError("seat_numbers", "at least one seat is required")
	}

	seen := make(map[int]bool, len(seatNumbers))
	seats := make([]int, 0, len(seatNumbers))
	for _, seat := range seatNumbers {
		if seen[seat] {
			continue
		}
		if !layout.IsBookableSeat(seat) {
			return nil, models.NewValidationError("seat_numbers",
				fmt.Sprintf("seat %d is not a bookable position for this vehicle", seat))
		}
		seen[seat] = true
		seats = append(seats, seat)
	}
	sort.Ints(seats)

	return seats, nil
}
