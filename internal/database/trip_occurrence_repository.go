package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

// TripOccurrenceRepository handles database operations for the
// trip_occurrences table. One row per (template, date); rows are
// materialized lazily on the first booking request for that date.
type TripOccurrenceRepository struct {
	db DB
}

// NewTripOccurrenceRepository creates a new TripOccurrenceRepository
func NewTripOccurrenceRepository(db DB) *TripOccurrenceRepository {
	return &TripOccurrenceRepository{db: db}
}

const tripOccurrenceColumns = `
	id, template_id, trip_date, booked_seats, status, created_at, updated_at
`

// GetByID retrieves an occurrence by ID
func (r *TripOccurrenceRepository) GetByID(occurrenceID string) (*models.TripOccurrence, error) {
	query := `SELECT ` + tripOccurrenceColumns + ` FROM trip_occurrences WHERE id = $1`

	var occ models.TripOccurrence
	if err := r.db.Get(&occ, query, occurrenceID); err != nil {
		return nil, translateError("get trip occurrence", err)
	}
	return &occ, nil
}

// GetByTemplateAndDate retrieves the occurrence for a (template, date)
// pair, or models.ErrNotFound when none has been materialized yet.
func (r *TripOccurrenceRepository) GetByTemplateAndDate(templateID string, date time.Time) (*models.TripOccurrence, error) {
	query := `
		SELECT ` + tripOccurrenceColumns + `
		FROM trip_occurrences
		WHERE template_id = $1 AND trip_date = $2
	`

	var occ models.TripOccurrence
	if err := r.db.Get(&occ, query, templateID, date); err != nil {
		return nil, translateError("get trip occurrence by date", err)
	}
	return &occ, nil
}

// GetOrCreate returns the occurrence for (template, date), inserting
// it with a zero seat counter when absent. Concurrent first-time
// bookings are resolved by the unique constraint on
// (template_id, trip_date): the loser's insert affects no rows and the
// follow-up fetch returns the winner's row.
func (r *TripOccurrenceRepository) GetOrCreate(templateID string, date time.Time) (*models.TripOccurrence, error) {
	existing, err := r.GetByTemplateAndDate(templateID, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	insert := `
		INSERT INTO trip_occurrences (id, template_id, trip_date, booked_seats, status)
		VALUES ($1, $2, $3, 0, 'active')
		ON CONFLICT (template_id, trip_date) DO NOTHING
		RETURNING ` + tripOccurrenceColumns

	var occ models.TripOccurrence
	err = r.db.QueryRow(insert, uuid.New().String(), templateID, date).Scan(
		&occ.ID, &occ.TemplateID, &occ.TripDate, &occ.BookedSeats,
		&occ.Status, &occ.CreatedAt, &occ.UpdatedAt,
	)
	if err == nil {
		return &occ, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, translateError("create trip occurrence", err)
	}

	// Lost the race: another request inserted the row between our
	// lookup and insert. Fetch what they created.
	occurrence, err := r.GetByTemplateAndDate(templateID, date)
	if err != nil {
		return nil, fmt.Errorf("fetch occurrence after insert conflict: %w", err)
	}
	return occurrence, nil
}

// ListUpcoming returns occurrence summaries joined with template and
// catalog data for dashboard display.
func (r *TripOccurrenceRepository) ListUpcoming(filters models.OccurrenceFilters) ([]models.OccurrenceSummary, error) {
	query := `
		SELECT o.id, o.template_id, o.trip_date,
			   pc.name AS pickup_city, dc.name AS dropoff_city,
			   ts.departure_time, t.price, t.seat_capacity,
			   o.booked_seats, o.status
		FROM trip_occurrences o
		JOIN trip_templates t ON t.id = o.template_id
		JOIN cities pc ON pc.id = t.pickup_city_id
		JOIN cities dc ON dc.id = t.dropoff_city_id
		JOIN time_slots ts ON ts.id = t.time_slot_id
		WHERE o.status = 'active'
	`

	args := []interface{}{}
	n := 0

	if filters.TemplateID != "" {
		n++
		args = append(args, filters.TemplateID)
		query += fmt.Sprintf(" AND o.template_id = $%d", n)
	}
	if filters.PickupCityID != "" {
		n++
		args = append(args, filters.PickupCityID)
		query += fmt.Sprintf(" AND t.pickup_city_id = $%d", n)
	}
	if filters.FromDate != nil {
		n++
		args = append(args, *filters.FromDate)
		query += fmt.Sprintf(" AND o.trip_date >= $%d", n)
	}
	if filters.ToDate != nil {
		n++
		args = append(args, *filters.ToDate)
		query += fmt.Sprintf(" AND o.trip_date <= $%d", n)
	}

	query += " ORDER BY o.trip_date, ts.departure_time"

	limit := filters.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	n++
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", n)

	if filters.Offset > 0 {
		n++
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", n)
	}

	summaries := []models.OccurrenceSummary{}
	if err := r.db.Select(&summaries, query, args...); err != nil {
		return nil, translateError("list upcoming occurrences", err)
	}
	return summaries, nil
}

// SetStatus updates an occurrence's status
func (r *TripOccurrenceRepository) SetStatus(occurrenceID string, status models.OccurrenceStatus) error {
	query := `
		UPDATE trip_occurrences
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, occurrenceID, status)
	if err != nil {
		return translateError("set occurrence status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translateError("set occurrence status", err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}

	return nil
}
