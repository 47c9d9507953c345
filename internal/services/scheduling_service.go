package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"skyharbor/dispatch/internal/common"
	"skyharbor/dispatch/internal/constants"
	"skyharbor/dispatch/internal/db/repositories"
	"skyharbor/dispatch/internal/logging"
	"skyharbor/dispatch/internal/metrics"
	"skyharbor/dispatch/internal/models/dtos"
	"skyharbor/dispatch/internal/models/entities"
)

// SchedulingService owns the durable side of flight lifecycle: the commit
// transaction that turns a reviewed draft into a flight row, and the 72-hour
// admin cancellation with its order cascade. Every decision inside a
// transaction is made from in-transaction reads; the draft's soft checks
// count for nothing here.
type SchedulingService struct {
	db           *sqlx.DB
	drafts       *common.DraftStore
	availability *repositories.AvailabilityRepository
	flights      *repositories.FlightRepository
	orders       *repositories.OrderRepository
	metrics      *metrics.MetricsRegistry
}

func NewSchedulingService(db *sqlx.DB, drafts *common.DraftStore,
	availability *repositories.AvailabilityRepository,
	flights *repositories.FlightRepository,
	orders *repositories.OrderRepository,
	reg *metrics.MetricsRegistry) *SchedulingService {
	return &SchedulingService{
		db:           db,
		drafts:       drafts,
		availability: availability,
		flights:      flights,
		orders:       orders,
		metrics:      reg,
	}
}

// CommitFlight runs the hard availability re-check and, if every selected
// resource is still free, inserts the flight and its crew assignments in one
// transaction. On a conflict the draft drops back to resource selection so
// the admin can re-pick without starting over.
func (s *SchedulingService) CommitFlight(ctx context.Context, adminID int) (*dtos.FlightCommitted, error) {
	draft, found := s.drafts.GetFlightDraft(adminID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgDraftMissing)
	}
	if draft.Step != entities.StepReview {
		return nil, fmt.Errorf("%w: draft is not ready to commit", ErrValidation)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin commit tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.hardCheck(ctx, tx, draft); err != nil {
		if errors.Is(err, ErrResourceUnavailable) {
			draft.Step = entities.StepResources
			_ = s.drafts.PutFlightDraft(draft)
			if s.metrics != nil {
				s.metrics.ResourceConflictsTotal.Inc()
			}
		}
		return nil, err
	}

	flightID, err := s.flights.NextFlightID(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("allocate flight id: %w", err)
	}

	flight := &entities.Flight{
		FlightID:      flightID,
		PlaneID:       draft.PlaneID,
		OriginID:      draft.OriginID,
		DestinationID: draft.DestinationID,
		DepartureAt:   draft.DepartureAt,
		EconomyPrice:  draft.EconomyPrice,
		BusinessPrice: draft.BusinessPrice,
		Status:        string(constants.FlightActive),
	}
	if err := s.flights.InsertFlight(ctx, tx, flight); err != nil {
		return nil, fmt.Errorf("insert flight: %w", err)
	}

	for _, workerID := range draft.PilotIDs {
		if err := s.flights.InsertPilotAssignment(ctx, tx, workerID, flightID); err != nil {
			return nil, fmt.Errorf("assign pilot %d: %w", workerID, err)
		}
	}
	for _, workerID := range draft.AttendantIDs {
		if err := s.flights.InsertAttendantAssignment(ctx, tx, workerID, flightID); err != nil {
			return nil, fmt.Errorf("assign attendant %d: %w", workerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit flight tx: %w", err)
	}

	s.drafts.DeleteFlightDraft(adminID)
	if s.metrics != nil {
		s.metrics.FlightsCommittedTotal.Inc()
	}
	logging.Info("flight committed", "flight_id", flightID, "admin_id", adminID,
		"plane_id", draft.PlaneID, "departure_at", draft.DepartureAt)

	return &dtos.FlightCommitted{FlightID: flightID}, nil
}

// hardCheck re-reads every selected resource's commitments inside the commit
// transaction and fails if any of them overlaps the draft's window.
func (s *SchedulingService) hardCheck(ctx context.Context, tx *sqlx.Tx, draft *entities.FlightDraft) error {
	rows, err := s.availability.CommitmentsForPlane(ctx, tx, draft.PlaneID)
	if err != nil {
		return fmt.Errorf("plane commitments: %w", err)
	}
	if anyOverlap(rows, draft.Window) {
		return fmt.Errorf("%w: %s", ErrResourceUnavailable, constants.MsgPlaneUnavailable)
	}

	for _, id := range draft.PilotIDs {
		rows, err := s.availability.CommitmentsForPilot(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("pilot %d commitments: %w", id, err)
		}
		if anyOverlap(rows, draft.Window) {
			return fmt.Errorf("%w: %s", ErrResourceUnavailable, constants.MsgPilotUnavailable)
		}
	}

	for _, id := range draft.AttendantIDs {
		rows, err := s.availability.CommitmentsForAttendant(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("attendant %d commitments: %w", id, err)
		}
		if anyOverlap(rows, draft.Window) {
			return fmt.Errorf("%w: %s", ErrResourceUnavailable, constants.MsgAttUnavailable)
		}
	}

	return nil
}

func anyOverlap(rows []entities.ResourceCommitment, window entities.Window) bool {
	for _, row := range rows {
		if CommitmentOverlaps(row, window) {
			return true
		}
	}
	return false
}

// CancelFlight cancels an active or full flight at least 72 hours before
// departure and cascades to its active orders: each becomes a system
// cancellation with a zero total, and its seats are released. The whole
// cascade is one transaction.
func (s *SchedulingService) CancelFlight(ctx context.Context, flightID int, now time.Time) (*dtos.CascadeSummary, error) {
	flight, err := s.flights.GetFlight(ctx, flightID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: flight %d", ErrNotFound, flightID)
		}
		return nil, fmt.Errorf("load flight: %w", err)
	}
	if err := cancellableFlight(flight, now); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin cancel tx: %w", err)
	}
	defer tx.Rollback()

	// Re-read under the transaction; a concurrent cancel or status change
	// between the check above and here must not double-cascade.
	flight, err = s.flights.GetFlightTx(ctx, tx, flightID)
	if err != nil {
		return nil, fmt.Errorf("re-read flight: %w", err)
	}
	if err := cancellableFlight(flight, now); err != nil {
		return nil, err
	}

	if err := s.flights.UpdateStatus(ctx, tx, flightID, constants.FlightCancelled); err != nil {
		return nil, fmt.Errorf("cancel flight: %w", err)
	}

	orderIDs, err := s.orders.ActiveOrderIDsForFlight(ctx, tx, flightID)
	if err != nil {
		return nil, fmt.Errorf("list flight orders: %w", err)
	}

	seatsReleased := 0
	for _, orderID := range orderIDs {
		if err := s.orders.MarkCancelled(ctx, tx, orderID, constants.OrderSystemCancelled, 0); err != nil {
			return nil, fmt.Errorf("cascade order %d: %w", orderID, err)
		}
		n, err := s.orders.ReleaseSeats(ctx, tx, orderID)
		if err != nil {
			return nil, fmt.Errorf("release seats for order %d: %w", orderID, err)
		}
		seatsReleased += n
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cancel tx: %w", err)
	}

	if s.metrics != nil {
		s.metrics.CancellationsTotal.WithLabelValues("flight").Inc()
	}
	logging.Info("flight cancelled", "flight_id", flightID,
		"orders_cancelled", len(orderIDs), "seats_released", seatsReleased)

	return &dtos.CascadeSummary{
		FlightID:        flightID,
		OrdersCancelled: len(orderIDs),
		SeatsReleased:   seatsReleased,
	}, nil
}

func cancellableFlight(f *entities.Flight, now time.Time) error {
	if !f.Cancellable() {
		return fmt.Errorf("%w: flight is %s", ErrCancellationDenied, f.Status)
	}
	if f.HoursUntilDeparture(now) < constants.FlightCancelCutoffHours {
		return fmt.Errorf("%w: %s", ErrCancellationDenied, constants.MsgFlightCutoff)
	}
	return nil
}
