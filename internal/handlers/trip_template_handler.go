package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tripdesk/trip-booking-backend/internal/models"
	"github.com/tripdesk/trip-booking-backend/internal/services"
)

// TripTemplateHandler handles trip template administration endpoints
type TripTemplateHandler struct {
	templateService   *services.TemplateService
	occurrenceService *services.OccurrenceService
	logger            *logrus.Logger
}

// NewTripTemplateHandler creates a new TripTemplateHandler
func NewTripTemplateHandler(
	templateService *services.TemplateService,
	occurrenceService *services.OccurrenceService,
	logger *logrus.Logger,
) *TripTemplateHandler {
	return &TripTemplateHandler{
		templateService:   templateService,
		occurrenceService: occurrenceService,
		logger:            logger,
	}
}

// CreateTemplate creates a new trip template
// POST /api/v1/templates
func (h *TripTemplateHandler) CreateTemplate(c *gin.Context) {
	var req models.CreateTripTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	template, err := h.templateService.Create(&req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"template": template})
}

// GetTemplate retrieves a trip template by ID
// GET /api/v1/templates/:templateId
func (h *TripTemplateHandler) GetTemplate(c *gin.Context) {
	templateID := c.Param("templateId")
	if templateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Template ID is required"})
		return
	}

	template, err := h.templateService.GetByID(templateID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}

// ListTemplates retrieves trip templates with pagination. With
// active=true only bookable templates are returned.
// GET /api/v1/templates?limit=50&offset=0&active=true
func (h *TripTemplateHandler) ListTemplates(c *gin.Context) {
	if c.Query("active") == "true" {
		templates, err := h.templateService.ListActive()
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"templates": templates, "count": len(templates)})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	templates, err := h.templateService.List(limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates, "count": len(templates)})
}

// UpdateTemplate applies an edit to a trip template
// PUT /api/v1/templates/:templateId
func (h *TripTemplateHandler) UpdateTemplate(c *gin.Context) {
	templateID := c.Param("templateId")
	if templateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Template ID is required"})
		return
	}

	var req models.UpdateTripTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": err.Error()})
		return
	}

	template, err := h.templateService.Update(templateID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}

// DeactivateTemplate soft-deletes a trip template
// DELETE /api/v1/templates/:templateId
func (h *TripTemplateHandler) DeactivateTemplate(c *gin.Context) {
	templateID := c.Param("templateId")
	if templateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Template ID is required"})
		return
	}

	if err := h.templateService.Deactivate(templateID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deactivated"})
}

// GetUpcomingDates enumerates the next dates a template runs on
// GET /api/v1/templates/:templateId/upcoming-dates?count=14
func (h *TripTemplateHandler) GetUpcomingDates(c *gin.Context) {
	templateID := c.Param("templateId")
	if templateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "Template ID is required"})
		return
	}

	count, _ := strconv.Atoi(c.DefaultQuery("count", "14"))

	dates, err := h.occurrenceService.UpcomingDates(templateID, count)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"template_id": templateID, "dates": dates})
}
