package models

import "time"

// OccurrenceStatus represents the status of a trip occurrence
type OccurrenceStatus string

const (
	OccurrenceStatusActive    OccurrenceStatus = "active"
	OccurrenceStatusCancelled OccurrenceStatus = "cancelled"
)

// TripOccurrence is one concrete, dated, bookable instance of a trip
// template. It is created lazily on the first booking request for its
// date. BookedSeats is denormalized and always recomputed from the
// booking rows inside the same transaction as any mutation.
type TripOccurrence struct {
	ID          string           `json:"id" db:"id"`
	TemplateID  string           `json:"template_id" db:"template_id"`
	TripDate    time.Time        `json:"trip_date" db:"trip_date"`
	BookedSeats int              `json:"booked_seats" db:"booked_seats"`
	Status      OccurrenceStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// OccurrenceSummary is the dashboard view of an occurrence joined with
// its template data.
type OccurrenceSummary struct {
	ID             string    `json:"id" db:"id"`
	TemplateID     string    `json:"template_id" db:"template_id"`
	TripDate       time.Time `json:"trip_date" db:"trip_date"`
	PickupCity     string    `json:"pickup_city" db:"pickup_city"`
	DropoffCity    string    `json:"dropoff_city" db:"dropoff_city"`
	DepartureTime  string    `json:"departure_time" db:"departure_time"`
	Price          float64   `json:"price" db:"price"`
	SeatCapacity   int       `json:"seat_capacity" db:"seat_capacity"`
	BookedSeats    int       `json:"booked_seats" db:"booked_seats"`
	Status         string    `json:"status" db:"status"`
}

// OccurrenceFilters narrows ListUpcoming queries
type OccurrenceFilters struct {
	TemplateID   string
	PickupCityID string
	FromDate     *time.Time
	ToDate       *time.Time
	Limit        int
	Offset       int
}

// GetOrCreateOccurrenceRequest materializes an occurrence for a date
type GetOrCreateOccurrenceRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
	TripDate   string `json:"trip_date" binding:"required"` // YYYY-MM-DD
}
