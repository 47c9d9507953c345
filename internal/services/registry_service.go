package services

import (
	"context"
	"fmt"
	"time"

	"skyharbor/dispatch/internal/db/repositories"
	"skyharbor/dispatch/internal/logging"
	"skyharbor/dispatch/internal/models/dtos"
	gormModels "skyharbor/dispatch/internal/models/gorm"
)

// RegistryService covers the reference-data side: airports for the search
// forms and staff onboarding for admins. Worker IDs are shared across pilots,
// attendants and managers, so uniqueness is checked across all three.
type RegistryService struct {
	registry *repositories.RegistryRepositoryGORM
}

func NewRegistryService(registry *repositories.RegistryRepositoryGORM) *RegistryService {
	return &RegistryService{registry: registry}
}

func (s *RegistryService) ListAirports(ctx context.Context) ([]gormModels.Airport, error) {
	airports, err := s.registry.ListAirports(ctx)
	if err != nil {
		return nil, fmt.Errorf("list airports: %w", err)
	}
	return airports, nil
}

// AddStaff onboards a new pilot or attendant with an unused worker ID.
func (s *RegistryService) AddStaff(ctx context.Context, req dtos.AddStaffReq) error {
	if req.WorkerID <= 0 {
		return fmt.Errorf("%w: worker id is required", ErrValidation)
	}
	if req.FirstName == "" || req.LastName == "" {
		return fmt.Errorf("%w: first and last name are required", ErrValidation)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrValidation)
	}

	taken, err := s.registry.WorkerIDTaken(ctx, req.WorkerID)
	if err != nil {
		return fmt.Errorf("check worker id: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: worker id %d is already in use", ErrValidation, req.WorkerID)
	}

	switch req.StaffType {
	case "pilot":
		err = s.registry.CreatePilot(ctx, &gormModels.Pilot{
			WorkerID:    req.WorkerID,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Phone:       req.Phone,
			City:        req.City,
			Street:      req.Street,
			HouseNumber: req.HouseNumber,
			StartDate:   startDate,
			IsQualified: req.IsQualified,
		})
	case "attendant":
		err = s.registry.CreateAttendant(ctx, &gormModels.Attendant{
			WorkerID:    req.WorkerID,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Phone:       req.Phone,
			City:        req.City,
			Street:      req.Street,
			HouseNumber: req.HouseNumber,
			StartDate:   startDate,
			IsQualified: req.IsQualified,
		})
	default:
		return fmt.Errorf("%w: staff_type must be pilot or attendant", ErrValidation)
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", req.StaffType, err)
	}

	logging.Info("staff added", "staff_type", req.StaffType, "worker_id", req.WorkerID)
	return nil
}
