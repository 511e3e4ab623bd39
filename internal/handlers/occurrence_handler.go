package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tripdesk/trip-booking-backend/internal/models"
	"github.com/tripdesk/trip-booking-backend/internal/services"
)

// OccurrenceHandler handles dated trip occurrence endpoints
type OccurrenceHandler struct {
	occurrenceService *services.OccurrenceService
	logger            *logrus.Logger
}

// NewOccurrenceHandler creates a new OccurrenceHandler
func NewOccurrenceHandler(occurrenceService *services.OccurrenceService, logger *logrus.Logger) *OccurrenceHandler {
	return &OccurrenceHandler{
		occurrenceService: occurrenceService,
		logger:            logger,
	}
}

// ResolveOccurrence returns the occurrence for a (template, date) pair,
// materializing it on first access
// POST /api/v1/occurrences/resolve
func (h *OccurrenceHandler) ResolveOccurrence(c *gin.Context) {
	var req models.GetOrCreateOccurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	occurrence, err := h.occurrenceService.GetOrCreate(req.TemplateID, req.TripDate)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"occurrence": occurrence})
}

// GetOccurrence retrieves an occurrence by ID
// GET /api/v1/occurrences/:occurrenceId
func (h *OccurrenceHandler) GetOccurrence(c *gin.Context) {
	occurrenceID := c.Param("occurrenceId")
	if occurrenceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Occurrence ID is required"})
		return
	}

	occurrence, err := h.occurrenceService.GetByID(occurrenceID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"occurrence": occurrence})
}

// ListOccurrences returns occurrence summaries for dashboard display
// GET /api/v1/occurrences?template_id=&pickup_city_id=&from_date=&to_date=&limit=&offset=
func (h *OccurrenceHandler) ListOccurrences(c *gin.Context) {
	filters := models.OccurrenceFilters{
		TemplateID:   c.Query("template_id"),
		PickupCityID: c.Query("pickup_city_id"),
	}

	if fromStr := c.Query("from_date"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Invalid from_date format. Use YYYY-MM-DD"})
			return
		}
		filters.FromDate = &from
	}
	if toStr := c.Query("to_date"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Invalid to_date format. Use YYYY-MM-DD"})
			return
		}
		filters.ToDate = &to
	}

	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	summaries, err := h.occurrenceService.ListUpcoming(filters)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"occurrences": summaries, "count": len(summaries)})
}

// CancelOccurrence marks an occurrence cancelled
// DELETE /api/v1/occurrences/:occurrenceId
func (h *OccurrenceHandler) CancelOccurrence(c *gin.Context) {
	occurrenceID := c.Param("occurrenceId")
	if occurrenceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Occurrence ID is required"})
		return
	}

	if err := h.occurrenceService.Cancel(occurrenceID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Occurrence cancelled"})
}
