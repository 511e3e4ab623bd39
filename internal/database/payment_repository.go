package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

// PaymentRepository handles database operations for the payments
// table. The core only creates payment rows (inside the booking
// transaction) and reads them back; the rest of the payment lifecycle
// belongs to the payment collaborator.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreateTx inserts a payment row inside an existing transaction so it
// commits or rolls back with the booking that triggered it.
func (r *PaymentRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, amount, method, reference, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := tx.QueryRowxContext(ctx, query,
		payment.ID, payment.BookingID, payment.Amount,
		payment.Method, payment.Reference, payment.Status,
	).Scan(&payment.CreatedAt, &payment.UpdatedAt)

	return translateError("insert payment", err)
}

// GetByBookingID retrieves the payment recorded for a booking
func (r *PaymentRepository) GetByBookingID(bookingID string) (*models.Payment, error) {
	query := `
		SELECT id, booking_id, amount, method, reference, status, created_at, updated_at
		FROM payments
		WHERE booking_id = $1
	`

	var payment models.Payment
	if err := r.db.Get(&payment, query, bookingID); err != nil {
		return nil, translateError("get payment", err)
	}
	return &payment, nil
}
