package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tripdesk/trip-booking-backend/internal/database"
)

// CatalogHandler exposes the read-only reference catalog used by the
// back-office forms: cities, vehicle types and time slots.
type CatalogHandler struct {
	catalogRepo *database.CatalogRepository
	logger      *logrus.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogRepo *database.CatalogRepository, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListCities returns all cities
// GET /api/v1/catalog/cities
func (h *CatalogHandler) ListCities(c *gin.Context) {
	cities, err := h.catalogRepo.ListCities()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// ListVehicleTypes returns all vehicle types with their seat capacities
// GET /api/v1/catalog/vehicle-types
func (h *CatalogHandler) ListVehicleTypes(c *gin.Context) {
	vehicleTypes, err := h.catalogRepo.ListVehicleTypes()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicle_types": vehicleTypes})
}

// ListTimeSlots returns all departure time slots
// GET /api/v1/catalog/time-slots
func (h *CatalogHandler) ListTimeSlots(c *gin.Context) {
	timeSlots, err := h.catalogRepo.ListTimeSlots()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"time_slots": timeSlots})
}
