package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tripdesk/trip-booking-backend/internal/database"
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

// OccurrenceService resolves (template, date) pairs to dated trip
// occurrences, materializing rows lazily on first access.
type OccurrenceService struct {
	templateRepo   *database.TripTemplateRepository
	occurrenceRepo *database.TripOccurrenceRepository
	logger         *logrus.Logger
}

// NewOccurrenceService creates a new OccurrenceService
func NewOccurrenceService(
	templateRepo *database.TripTemplateRepository,
	occurrenceRepo *database.TripOccurrenceRepository,
	logger *logrus.Logger,
) *OccurrenceService {
	return &OccurrenceService{
		templateRepo:   templateRepo,
		occurrenceRepo: occurrenceRepo,
		logger:         logger,
	}
}

// GetOrCreate validates that the template is active and actually runs
// on the requested date, then returns the occurrence row for that
// date, inserting it if this is the first request to touch it.
func (s *OccurrenceService) GetOrCreate(templateID, dateStr string) (*models.TripOccurrence, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, models.NewValidationError("trip_date", "must be in YYYY-MM-DD format")
	}

	template, err := s.templateRepo.GetByID(templateID)
	if err != nil {
		return nil, err
	}

	if !template.IsActive() {
		return nil, models.NewValidationError("template_id", "trip template is not active")
	}
	if !OccursOn(template, date) {
		return nil, models.NewValidationError("trip_date", "template has no trip on this date")
	}

	occurrence, err := s.occurrenceRepo.GetOrCreate(templateID, date)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"occurrence_id": occurrence.ID,
		"template_id":   templateID,
		"trip_date":     dateStr,
	}).Debug("Resolved trip occurrence")

	return occurrence, nil
}

// GetByID retrieves an occurrence by ID
func (s *OccurrenceService) GetByID(occurrenceID string) (*models.TripOccurrence, error) {
	return s.occurrenceRepo.GetByID(occurrenceID)
}

// ListUpcoming returns occurrence summaries for dashboard display
func (s *OccurrenceService) ListUpcoming(filters models.OccurrenceFilters) ([]models.OccurrenceSummary, error) {
	return s.occurrenceRepo.ListUpcoming(filters)
}

// UpcomingDates enumerates the next n dates a template runs on,
// starting from today. These are computed, not materialized; rows only
// exist once someone books.
func (s *OccurrenceService) UpcomingDates(templateID string, n int) ([]string, error) {
	template, err := s.templateRepo.GetByID(templateID)
	if err != nil {
		return nil, err
	}

	if n <= 0 || n > 60 {
		n = 14
	}

	dates := NextOccurrenceDates(template, time.Now().UTC(), n)
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	return out, nil
}

// Cancel marks an occurrence cancelled so it stops accepting bookings.
// Existing bookings are untouched; cancelling them is a per-booking
// lifecycle operation.
func (s *OccurrenceService) Cancel(occurrenceID string) error {
	if err := s.occurrenceRepo.SetStatus(occurrenceID, models.OccurrenceStatusCancelled); err != nil {
		return err
	}

	s.logger.WithField("occurrence_id", occurrenceID).Info("Trip occurrence cancelled")
	return nil
}
