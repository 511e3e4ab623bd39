package models

import "time"

// City represents a pickup or dropoff city in the reference catalog
type City struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// VehicleType represents a vehicle class with a fixed seat capacity
type VehicleType struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	SeatCapacity int       `json:"seat_capacity" db:"seat_capacity"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Vehicle represents a physical vehicle assigned to trips
type Vehicle struct {
	ID            string    `json:"id" db:"id"`
	VehicleTypeID string    `json:"vehicle_type_id" db:"vehicle_type_id"`
	PlateNumber   string    `json:"plate_number" db:"plate_number"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// TimeSlot represents a departure/arrival clock-time pair
type TimeSlot struct {
	ID            string    `json:"id" db:"id"`
	DepartureTime string    `json:"departure_time" db:"departure_time"` // HH:MM:SS
	ArrivalTime   string    `json:"arrival_time" db:"arrival_time"`     // HH:MM:SS
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
