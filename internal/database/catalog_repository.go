package database

import (
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

// CatalogRepository handles read-only lookups against the reference
// catalog tables (cities, vehicle types, vehicles, time slots).
type CatalogRepository struct {
	db DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListCities returns all cities ordered by name
func (r *CatalogRepository) ListCities() ([]models.City, error) {
	query := `SELECT id, name, created_at FROM cities ORDER BY name`

	cities := []models.City{}
	if err := r.db.Select(&cities, query); err != nil {
		return nil, translateError("list cities", err)
	}
	return cities, nil
}

// GetCityByID retrieves a city by ID
func (r *CatalogRepository) GetCityByID(cityID string) (*models.City, error) {
	query := `SELECT id, name, created_at FROM cities WHERE id = $1`

	var city models.City
	if err := r.db.Get(&city, query, cityID); err != nil {
		return nil, translateError("get city", err)
	}
	return &city, nil
}

// ListVehicleTypes returns all vehicle types ordered by capacity
func (r *CatalogRepository) ListVehicleTypes() ([]models.VehicleType, error) {
	query := `SELECT id, name, seat_capacity, created_at FROM vehicle_types ORDER BY seat_capacity`

	types := []models.VehicleType{}
	if err := r.db.Select(&types, query); err != nil {
		return nil, translateError("list vehicle types", err)
	}
	return types, nil
}

// GetVehicleTypeByID retrieves a vehicle type by ID
func (r *CatalogRepository) GetVehicleTypeByID(typeID string) (*models.VehicleType, error) {
	query := `SELECT id, name, seat_capacity, created_at FROM vehicle_types WHERE id = $1`

	var vt models.VehicleType
	if err := r.db.Get(&vt, query, typeID); err != nil {
		return nil, translateError("get vehicle type", err)
	}
	return &vt, nil
}

// GetVehicleByID retrieves a vehicle by ID
func (r *CatalogRepository) GetVehicleByID(vehicleID string) (*models.Vehicle, error) {
	query := `SELECT id, vehicle_type_id, plate_number, is_active, created_at FROM vehicles WHERE id = $1`

	var v models.Vehicle
	if err := r.db.Get(&v, query, vehicleID); err != nil {
		return nil, translateError("get vehicle", err)
	}
	return &v, nil
}

// ListTimeSlots returns all time slots ordered by departure
func (r *CatalogRepository) ListTimeSlots() ([]models.TimeSlot, error) {
	query := `SELECT id, departure_time, arrival_time, created_at FROM time_slots ORDER BY departure_time`

	slots := []models.TimeSlot{}
	if err := r.db.Select(&slots, query); err != nil {
		return nil, translateError("list time slots", err)
	}
	return slots, nil
}

// GetTimeSlotByID retrieves a time slot by ID
func (r *CatalogRepository) GetTimeSlotByID(slotID string) (*models.TimeSlot, error) {
	query := `SELECT id, departure_time, arrival_time, created_at FROM time_slots WHERE id = $1`

	var slot models.TimeSlot
	if err := r.db.Get(&slot, query, slotID); err != nil {
		return nil, translateError("get time slot", err)
	}
	return &slot, nil
}
