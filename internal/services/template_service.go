package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tripdesk/trip-booking-backend/internal/database"
	"github.com/tripdesk/trip-booking-backend/internal/models"
)

// TemplateService handles trip template administration: creation with
// catalog validation, edits, and the soft-delete lifecycle.
type TemplateService struct {
	templateRepo *database.TripTemplateRepository
	catalogRepo  *database.CatalogRepository
	logger       *logrus.Logger
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(
	templateRepo *database.TripTemplateRepository,
	catalogRepo *database.CatalogRepository,
	logger *logrus.Logger,
) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		catalogRepo:  catalogRepo,
		logger:       logger,
	}
}

// Create validates the request against the reference catalog and
// stores a new template. The validity window end is derived from the
// recurrence kind, and the vehicle type's capacity is denormalized
// onto the template.
func (s *TemplateService) Create(req *models.CreateTripTemplateRequest) (*models.TripTemplate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, models.NewValidationError("start_date", "must be in YYYY-MM-DD format")
	}

	if _, err := s.catalogRepo.GetCityByID(req.PickupCityID); err != nil {
		return nil, models.NewValidationError("pickup_city_id", "unknown city")
	}
	if _, err := s.catalogRepo.GetCityByID(req.DropoffCityID); err != nil {
		return nil, models.NewValidationError("dropoff_city_id", "unknown city")
	}
	if _, err := s.catalogRepo.GetTimeSlotByID(req.TimeSlotID); err != nil {
		return nil, models.NewValidationError("time_slot_id", "unknown time slot")
	}

	vehicleType, err := s.catalogRepo.GetVehicleTypeByID(req.VehicleTypeID)
	if err != nil {
		return nil, models.NewValidationError("vehicle_type_id", "unknown vehicle type")
	}

	vehicle, err := s.catalogRepo.GetVehicleByID(req.VehicleID)
	if err != nil {
		return nil, models.NewValidationError("vehicle_id", "unknown vehicle")
	}
	if vehicle.VehicleTypeID != vehicleType.ID {
		return nil, models.NewValidationError("vehicle_id", "vehicle does not belong to the given vehicle type")
	}

	kind := models.RecurrenceKind(req.RecurrenceKind)
	template := &models.TripTemplate{
		PickupCityID:   req.PickupCityID,
		DropoffCityID:  req.DropoffCityID,
		VehicleID:      req.VehicleID,
		VehicleTypeID:  req.VehicleTypeID,
		SeatCapacity:   vehicleType.SeatCapacity,
		TimeSlotID:     req.TimeSlotID,
		Price:          req.Price,
		RecurrenceKind: kind,
		StartDate:      startDate,
		EndDate:        ComputeEndDate(kind, startDate),
		Status:         models.TemplateStatusActive,
	}
	template.SetDaySet(req.RecurrenceDays)

	if err := s.templateRepo.Create(template); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"template_id":     template.ID,
		"recurrence_kind": template.RecurrenceKind,
		"start_date":      template.StartDate.Format("2006-01-02"),
		"end_date":        template.EndDate.Format("2006-01-02"),
	}).Info("Trip template created")

	return template, nil
}

// Update applies an edit to an existing template. Changing the vehicle
// type re-denormalizes the seat capacity.
func (s *TemplateService) Update(templateID string, req *models.UpdateTripTemplateRequest) (*models.TripTemplate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	template, err := s.templateRepo.GetByID(templateID)
	if err != nil {
		return nil, err
	}

	if req.VehicleTypeID != nil {
		vehicleType, err := s.catalogRepo.GetVehicleTypeByID(*req.VehicleTypeID)
		if err != nil {
			return nil, models.NewValidationError("vehicle_type_id", "unknown vehicle type")
		}
		template.VehicleTypeID = vehicleType.ID
		template.SeatCapacity = vehicleType.SeatCapacity
	}
	if req.VehicleID != nil {
		vehicle, err := s.catalogRepo.GetVehicleByID(*req.VehicleID)
		if err != nil {
			return nil, models.NewValidationError("vehicle_id", "unknown vehicle")
		}
		if vehicle.VehicleTypeID != template.VehicleTypeID {
			return nil, models.NewValidationError("vehicle_id", "vehicle does not belong to the template's vehicle type")
		}
		template.VehicleID = vehicle.ID
	}
	if req.TimeSlotID != nil {
		if _, err := s.catalogRepo.GetTimeSlotByID(*req.TimeSlotID); err != nil {
			return nil, models.NewValidationError("time_slot_id", "unknown time slot")
		}
		template.TimeSlotID = *req.TimeSlotID
	}
	if req.Price != nil {
		template.Price = *req.Price
	}
	if req.RecurrenceDays != nil {
		if template.RecurrenceKind != models.RecurrenceWeekly {
			return nil, models.NewValidationError("recurrence_days", "only meaningful for weekly recurrence")
		}
		template.SetDaySet(req.RecurrenceDays)
	}
	if req.Status != nil {
		template.Status = models.TemplateStatus(*req.Status)
	}

	if err := s.templateRepo.Update(template); err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}

	s.logger.WithField("template_id", template.ID).Info("Trip template updated")

	return template, nil
}

// Deactivate soft-deletes a template. Existing occurrences and
// bookings keep referencing it; no new occurrences materialize.
func (s *TemplateService) Deactivate(templateID string) error {
	if err := s.templateRepo.SetStatus(templateID, models.TemplateStatusInactive); err != nil {
		return err
	}

	s.logger.WithField("template_id", templateID).Info("Trip template deactivated")
	return nil
}

// GetByID retrieves a template by ID
func (s *TemplateService) GetByID(templateID string) (*models.TripTemplate, error) {
	return s.templateRepo.GetByID(templateID)
}

// List retrieves templates with pagination
func (s *TemplateService) List(limit, offset int) ([]models.TripTemplate, error) {
	return s.templateRepo.List(limit, offset)
}

// ListActive retrieves active templates whose validity window has not
// ended, the set an operator can still take bookings against.
func (s *TemplateService) ListActive() ([]models.TripTemplate, error) {
	return s.templateRepo.ListActive()
}
