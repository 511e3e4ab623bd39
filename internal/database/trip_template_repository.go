package database

import (
	"github.com/google/uuid"
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

// TripTemplateRepository handles database operations for the
// trip_templates table.
type TripTemplateRepository struct {
	db DB
}

// NewTripTemplateRepository creates a new TripTemplateRepository
func NewTripTemplateRepository(db DB) *TripTemplateRepository {
	return &TripTemplateRepository{db: db}
}

const tripTemplateColumns = `
	id, pickup_city_id, dropoff_city_id, vehicle_id, vehicle_type_id,
	seat_capacity, time_slot_id, price, recurrence_kind, recurrence_days,
	start_date, end_date, status, created_at, updated_at
`

// Create creates a new trip template
func (r *TripTemplateRepository) Create(template *models.TripTemplate) error {
	query := `
		INSERT INTO trip_templates (
			id, pickup_city_id, dropoff_city_id, vehicle_id, vehicle_type_id,
			seat_capacity, time_slot_id, price, recurrence_kind, recurrence_days,
			start_date, end_date, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		RETURNING created_at, updated_at
	`

	if template.ID == "" {
		template.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		template.ID, template.PickupCityID, template.DropoffCityID,
		template.VehicleID, template.VehicleTypeID, template.SeatCapacity,
		template.TimeSlotID, template.Price, template.RecurrenceKind,
		template.RecurrenceDays, template.StartDate, template.EndDate,
		template.Status,
	).Scan(&template.CreatedAt, &template.UpdatedAt)

	return translateError("create trip template", err)
}

// GetByID retrieves a trip template by ID
func (r *TripTemplateRepository) GetByID(templateID string) (*models.TripTemplate, error) {
	query := `SELECT ` + tripTemplateColumns + ` FROM trip_templates WHERE id = $1`

	var template models.TripTemplate
	if err := r.db.Get(&template, query, templateID); err != nil {
		return nil, translateError("get trip template", err)
	}
	return &template, nil
}

// List retrieves trip templates with pagination, newest first
func (r *TripTemplateRepository) List(limit, offset int) ([]models.TripTemplate, error) {
	query := `
		SELECT ` + tripTemplateColumns + `
		FROM trip_templates
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	templates := []models.TripTemplate{}
	if err := r.db.Select(&templates, query, limit, offset); err != nil {
		return nil, translateError("list trip templates", err)
	}
	return templates, nil
}

// ListActive retrieves all active templates whose window has not ended
func (r *TripTemplateRepository) ListActive() ([]models.TripTemplate, error) {
	query := `
		SELECT ` + tripTemplateColumns + `
		FROM trip_templates
		WHERE status = 'active' AND end_date >= CURRENT_DATE
		ORDER BY start_date
	`

	templates := []models.TripTemplate{}
	if err := r.db.Select(&templates, query); err != nil {
		return nil, translateError("list active trip templates", err)
	}
	return templates, nil
}

// Update updates the mutable fields of a trip template
func (r *TripTemplateRepository) Update(template *models.TripTemplate) error {
	query := `
		UPDATE trip_templates
		SET vehicle_id = $2, vehicle_type_id = $3, seat_capacity = $4,
			time_slot_id = $5, price = $6, recurrence_days = $7,
			status = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		template.ID, template.VehicleID, template.VehicleTypeID,
		template.SeatCapacity, template.TimeSlotID, template.Price,
		template.RecurrenceDays, template.Status,
	).Scan(&template.UpdatedAt)

	return translateError("update trip template", err)
}

// SetStatus transitions a template's lifecycle status. Deactivation is
// the soft-delete path; templates are never physically removed while
// bookings reference them.
func (r *TripTemplateRepository) SetStatus(templateID string, status models.TemplateStatus) error {
	query := `
		UPDATE trip_templates
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, templateID, status)
	if err != nil {
		return translateError("set trip template status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translateError("set trip template status", err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}

	return nil
}
