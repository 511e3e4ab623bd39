package models

import (
	"errors"
	"strings"
	"time"
)

// RecurrenceKind represents how a trip template repeats
type RecurrenceKind string

const (
	RecurrenceSingleDay RecurrenceKind = "single_day"
	RecurrenceWeekly    RecurrenceKind = "weekly"
	RecurrenceMonthly   RecurrenceKind = "monthly"
	RecurrenceYearly    RecurrenceKind = "yearly"
)

// TemplateStatus represents the lifecycle status of a trip template
type TemplateStatus string

const (
	TemplateStatusActive    TemplateStatus = "active"
	TemplateStatusInactive  TemplateStatus = "inactive"
	TemplateStatusCancelled TemplateStatus = "cancelled"
)

// weekdayNames is the accepted spelling for the weekly day-set
var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// TripTemplate is the reusable, recurring definition of a route,
// schedule and price. Occurrences are materialized from it lazily.
type TripTemplate struct {
	ID             string         `json:"id" db:"id"`
	PickupCityID   string         `json:"pickup_city_id" db:"pickup_city_id"`
	DropoffCityID  string         `json:"dropoff_city_id" db:"dropoff_city_id"`
	VehicleID      string         `json:"vehicle_id" db:"vehicle_id"`
	VehicleTypeID  string         `json:"vehicle_type_id" db:"vehicle_type_id"`
	SeatCapacity   int            `json:"seat_capacity" db:"seat_capacity"` // denormalized from vehicle type
	TimeSlotID     string         `json:"time_slot_id" db:"time_slot_id"`
	Price          float64        `json:"price" db:"price"`
	RecurrenceKind RecurrenceKind `json:"recurrence_kind" db:"recurrence_kind"`
	RecurrenceDays string         `json:"recurrence_days,omitempty" db:"recurrence_days"` // weekly only: "Monday,Friday"
	StartDate      time.Time      `json:"start_date" db:"start_date"`
	EndDate        time.Time      `json:"end_date" db:"end_date"` // derived from kind + start date
	Status         TemplateStatus `json:"status" db:"status"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the template accepts new occurrences
func (t *TripTemplate) IsActive() bool {
	return t.Status == TemplateStatusActive
}

// DaySet parses the comma-separated weekly day-set into weekdays.
// An empty string yields an empty set, which never matches any date.
func (t *TripTemplate) DaySet() (map[time.Weekday]bool, error) {
	set := make(map[time.Weekday]bool)
	if t.RecurrenceDays == "" {
		return set, nil
	}
	for _, part := range strings.Split(t.RecurrenceDays, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		day, ok := weekdayNames[name]
		if !ok {
			return nil, errors.New("invalid weekday name: " + name)
		}
		set[day] = true
	}
	return set, nil
}

// SetDaySet stores weekdays as the canonical comma-separated form
func (t *TripTemplate) SetDaySet(days []string) {
	cleaned := make([]string, 0, len(days))
	for _, d := range days {
		d = strings.TrimSpace(d)
		if d != "" {
			cleaned = append(cleaned, d)
		}
	}
	t.RecurrenceDays = strings.Join(cleaned, ",")
}

// CreateTripTemplateRequest represents the request to create a template
type CreateTripTemplateRequest struct {
	PickupCityID   string   `json:"pickup_city_id" binding:"required"`
	DropoffCityID  string   `json:"dropoff_city_id" binding:"required"`
	VehicleID      string   `json:"vehicle_id" binding:"required"`
	VehicleTypeID  string   `json:"vehicle_type_id" binding:"required"`
	TimeSlotID     string   `json:"time_slot_id" binding:"required"`
	Price          float64  `json:"price" binding:"required,gt=0"`
	RecurrenceKind string   `json:"recurrence_kind" binding:"required,oneof=single_day weekly monthly yearly"`
	RecurrenceDays []string `json:"recurrence_days,omitempty"`
	StartDate      string   `json:"start_date" binding:"required"` // YYYY-MM-DD
}

// Validate validates the create template request
func (r *CreateTripTemplateRequest) Validate() error {
	if r.PickupCityID == r.DropoffCityID {
		return NewValidationError("dropoff_city_id", "pickup and dropoff cities must differ")
	}

	if _, err := time.Parse("2006-01-02", r.StartDate); err != nil {
		return NewValidationError("start_date", "must be in YYYY-MM-DD format")
	}

	for _, day := range r.RecurrenceDays {
		if _, ok := weekdayNames[strings.TrimSpace(day)]; !ok {
			return NewValidationError("recurrence_days", "invalid weekday name: "+day)
		}
	}

	// A weekly template with no days is accepted but never produces an
	// occurrence. Kept as explicit behavior rather than rejected.
	if RecurrenceKind(r.RecurrenceKind) != RecurrenceWeekly && len(r.RecurrenceDays) > 0 {
		return NewValidationError("recurrence_days", "only meaningful for weekly recurrence")
	}

	return nil
}

// UpdateTripTemplateRequest represents the request to edit a template
type UpdateTripTemplateRequest struct {
	VehicleID      *string  `json:"vehicle_id,omitempty"`
	VehicleTypeID  *string  `json:"vehicle_type_id,omitempty"`
	TimeSlotID     *string  `json:"time_slot_id,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	RecurrenceDays []string `json:"recurrence_days,omitempty"`
	Status         *string  `json:"status,omitempty"`
}

// Validate validates the update template request
func (r *UpdateTripTemplateRequest) Validate() error {
	if r.Price != nil && *r.Price <= 0 {
		return NewValidationError("price", "must be greater than 0")
	}

	if r.Status != nil {
		switch TemplateStatus(*r.Status) {
		case TemplateStatusActive, TemplateStatusInactive, TemplateStatusCancelled:
		default:
			return NewValidationError("status", "must be active, inactive or cancelled")
		}
	}

	for _, day := range r.RecurrenceDays {
		if _, ok := weekdayNames[strings.TrimSpace(day)]; !ok {
			return NewValidationError("recurrence_days", "invalid weekday name: "+day)
		}
	}

	return nil
}
