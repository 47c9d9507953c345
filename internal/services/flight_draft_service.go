package services

import (
	"context"
	"fmt"
	"time"

	"skyharbor/dispatch/internal/common"
	"skyharbor/dispatch/internal/constants"
	"skyharbor/dispatch/internal/db/repositories"
	"skyharbor/dispatch/internal/models/dtos"
	"skyharbor/dispatch/internal/models/entities"
)

// FlightDraftService drives the multi-step flight creation state machine:
// Step1 (route+window) -> Step2 (resources) -> Review -> commit. The draft is
// per-admin transient state in the cache layer; any validation failure leaves
// the draft on its current step so nothing has to be re-entered.
type FlightDraftService struct {
	drafts       *common.DraftStore
	routeSvc     *RouteService
	availability *AvailabilityService
	planes       *repositories.PlaneRepository
}

func NewFlightDraftService(drafts *common.DraftStore, routeSvc *RouteService,
	availability *AvailabilityService, planes *repositories.PlaneRepository) *FlightDraftService {
	return &FlightDraftService{
		drafts:       drafts,
		routeSvc:     routeSvc,
		availability: availability,
		planes:       planes,
	}
}

// StartDraft validates the route and window and opens a fresh draft at the
// resource-selection step. Starting over replaces any previous draft.
func (s *FlightDraftService) StartDraft(ctx context.Context, adminID int, req dtos.FlightDraftStartReq) (*entities.FlightDraft, error) {
	if req.OriginID == 0 || req.DestinationID == 0 {
		return nil, fmt.Errorf("%w: origin and destination are required", ErrValidation)
	}
	if req.OriginID == req.DestinationID {
		return nil, fmt.Errorf("%w: %s", ErrValidation, constants.MsgSameAirports)
	}

	departure, err := CombineDateTime(req.DepartureDate, req.DepartureTime)
	if err != nil {
		return nil, err
	}

	minutes, err := s.routeSvc.ResolveDuration(ctx, req.OriginID, req.DestinationID)
	if err != nil {
		return nil, err
	}

	draft := &entities.FlightDraft{
		AdminID:       adminID,
		Step:          entities.StepResources,
		OriginID:      req.OriginID,
		DestinationID: req.DestinationID,
		DepartureAt:   departure,
		DurationMin:   minutes,
		IsLong:        IsLongFlight(minutes),
		Window:        entities.NewWindow(departure, minutes),
		CreatedAt:     time.Now(),
	}

	if err := s.drafts.PutFlightDraft(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Candidates re-runs the soft availability check for the draft's window so
// the admin always picks from current data.
func (s *FlightDraftService) Candidates(ctx context.Context, adminID int) (*dtos.AvailabilitySet, error) {
	draft, found := s.drafts.GetFlightDraft(adminID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgDraftMissing)
	}
	return s.availability.FindAvailable(ctx, draft.Window, draft.IsLong)
}

// SelectResources applies the admin's plane/crew/price picks, enforcing the
// size and quota rules and re-checking availability as a second soft check.
func (s *FlightDraftService) SelectResources(ctx context.Context, adminID int, req dtos.FlightDraftResourcesReq) (*entities.FlightDraft, error) {
	draft, found := s.drafts.GetFlightDraft(adminID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgDraftMissing)
	}
	if draft.Step != entities.StepResources && draft.Step != entities.StepReview {
		return nil, fmt.Errorf("%w: draft is not at resource selection", ErrValidation)
	}

	if req.PlaneID == 0 || req.EconomyPrice <= 0 {
		return nil, fmt.Errorf("%w: plane and economy price are required", ErrValidation)
	}

	exists, err := s.planes.PlaneExists(ctx, req.PlaneID)
	if err != nil {
		return nil, fmt.Errorf("check plane: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: plane %d", ErrNotFound, req.PlaneID)
	}

	isLarge, err := s.planes.IsLarge(ctx, req.PlaneID)
	if err != nil {
		return nil, fmt.Errorf("classify plane: %w", err)
	}

	if draft.IsLong && !isLarge {
		return nil, ErrIncompatiblePlaneSize
	}

	reqPilots, reqAttendants := constants.CrewQuota(isLarge)
	if len(req.PilotIDs) != reqPilots {
		return nil, fmt.Errorf("%w: need exactly %d pilots", ErrQuotaMismatch, reqPilots)
	}
	if len(req.AttendantIDs) != reqAttendants {
		return nil, fmt.Errorf("%w: need exactly %d attendants", ErrQuotaMismatch, reqAttendants)
	}

	businessPrice := req.BusinessPrice
	if isLarge {
		if businessPrice <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrValidation, constants.MsgBusinessPriceNeeded)
		}
	} else {
		// Small planes sell no business seats; the price field is forced.
		businessPrice = 0
	}

	if err := s.recheckSelection(ctx, draft, req.PlaneID, req.PilotIDs, req.AttendantIDs); err != nil {
		return nil, err
	}

	size := "small"
	if isLarge {
		size = "large"
	}

	draft.PlaneID = req.PlaneID
	draft.PlaneSize = size
	draft.EconomyPrice = req.EconomyPrice
	draft.BusinessPrice = businessPrice
	draft.PilotIDs = req.PilotIDs
	draft.AttendantIDs = req.AttendantIDs
	draft.Step = entities.StepReview

	if err := s.drafts.PutFlightDraft(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// recheckSelection verifies every picked resource is still in the current
// availability set. Advisory only; the commit transaction decides for real.
func (s *FlightDraftService) recheckSelection(ctx context.Context, draft *entities.FlightDraft,
	planeID int, pilotIDs, attendantIDs []int) error {

	set, err := s.availability.FindAvailable(ctx, draft.Window, draft.IsLong)
	if err != nil {
		return err
	}

	planeOK := false
	for _, p := range set.Planes {
		if p.PlaneID == planeID {
			planeOK = true
			break
		}
	}
	if !planeOK {
		return fmt.Errorf("%w: %s", ErrResourceUnavailable, constants.MsgPlaneUnavailable)
	}

	freePilots := make(map[int]bool, len(set.Pilots))
	for _, p := range set.Pilots {
		freePilots[p.WorkerID] = true
	}
	for _, id := range pilotIDs {
		if !freePilots[id] {
			return fmt.Errorf("%w: %s", ErrResourceUnavailable, constants.MsgPilotUnavailable)
		}
	}

	freeAttendants := make(map[int]bool, len(set.Attendants))
	for _, a := range set.Attendants {
		freeAttendants[a.WorkerID] = true
	}
	for _, id := range attendantIDs {
		if !freeAttendants[id] {
			return fmt.Errorf("%w: %s", ErrResourceUnavailable, constants.MsgAttUnavailable)
		}
	}

	return nil
}

// Review returns the draft if it is ready to commit.
func (s *FlightDraftService) Review(adminID int) (*entities.FlightDraft, error) {
	draft, found := s.drafts.GetFlightDraft(adminID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgDraftMissing)
	}
	if draft.Step != entities.StepReview {
		return nil, fmt.Errorf("%w: draft is not ready for review", ErrValidation)
	}
	return draft, nil
}

// Abandon discards the in-progress draft.
func (s *FlightDraftService) Abandon(adminID int) {
	s.drafts.DeleteFlightDraft(adminID)
}
