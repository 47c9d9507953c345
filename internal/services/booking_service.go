package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"skyharbor/dispatch/internal/common"
	"skyharbor/dispatch/internal/constants"
	"skyharbor/dispatch/internal/db/repositories"
	"skyharbor/dispatch/internal/logging"
	"skyharbor/dispatch/internal/metrics"
	"skyharbor/dispatch/internal/models/dtos"
	"skyharbor/dispatch/internal/models/entities"
)

// BookingService drives ticket purchase: start a draft against an active
// flight, pick seats, review, and confirm. Seat picks are advisory until the
// confirm transaction re-checks occupancy; any single conflict fails the
// whole order.
type BookingService struct {
	db      *sqlx.DB
	drafts  *common.DraftStore
	flights *repositories.FlightRepository
	planes  *repositories.PlaneRepository
	seats   *repositories.SeatRepository
	orders  *repositories.OrderRepository
	metrics *metrics.MetricsRegistry
}

func NewBookingService(db *sqlx.DB, drafts *common.DraftStore,
	flights *repositories.FlightRepository,
	planes *repositories.PlaneRepository,
	seats *repositories.SeatRepository,
	orders *repositories.OrderRepository,
	reg *metrics.MetricsRegistry) *BookingService {
	return &BookingService{
		db:      db,
		drafts:  drafts,
		flights: flights,
		planes:  planes,
		seats:   seats,
		orders:  orders,
		metrics: reg,
	}
}

const maxSeatsPerOrder = 9

// SearchFlights serves the public flight board. Buyers only ever see active
// flights; admins may filter by any status.
func (s *BookingService) SearchFlights(ctx context.Context, filter repositories.FlightSearchFilter) ([]dtos.FlightRow, error) {
	if filter.Status != "" && !constants.ValidFlightStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown flight status %q", ErrValidation, filter.Status)
	}
	rows, err := s.flights.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search flights: %w", err)
	}
	return rows, nil
}

// StartBooking opens a booking draft against an active flight. Guests are
// identified by email plus name; registered clients by the email of their
// session. Business class is only offered on planes that have business seats.
func (s *BookingService) StartBooking(ctx context.Context, req dtos.BookingStartReq, isGuest bool) (*entities.BookingDraft, error) {
	if req.Quantity < 1 || req.Quantity > maxSeatsPerOrder {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", ErrValidation, maxSeatsPerOrder)
	}
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if isGuest && (req.FirstName == "" || req.LastName == "") {
		return nil, fmt.Errorf("%w: guest name is required", ErrValidation)
	}

	class, err := normalizeClass(req.Class)
	if err != nil {
		return nil, err
	}

	flight, err := s.flights.GetFlight(ctx, req.FlightID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: flight %d", ErrNotFound, req.FlightID)
		}
		return nil, fmt.Errorf("load flight: %w", err)
	}
	if constants.FlightStatus(flight.Status) != constants.FlightActive {
		return nil, fmt.Errorf("%w: flight is %s", ErrValidation, flight.Status)
	}

	unitPrice := flight.EconomyPrice
	if class == constants.ClassBusiness {
		hasBusiness, err := s.planes.IsLarge(ctx, flight.PlaneID)
		if err != nil {
			return nil, fmt.Errorf("check plane class: %w", err)
		}
		if !hasBusiness {
			return nil, fmt.Errorf("%w: this flight has no business seats", ErrValidation)
		}
		unitPrice = flight.BusinessPrice
	}

	draft := &entities.BookingDraft{
		DraftID:   uuid.NewString(),
		Step:      entities.StepSeats,
		FlightID:  flight.FlightID,
		PlaneID:   flight.PlaneID,
		Quantity:  req.Quantity,
		Class:     string(class),
		UnitPrice: unitPrice,
		IsGuest:   isGuest,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: time.Now(),
	}

	if err := s.drafts.PutBookingDraft(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SeatMap renders the plane's layout for one class with current occupancy on
// this flight.
func (s *BookingService) SeatMap(ctx context.Context, flightID int, class string) (*dtos.SeatMap, error) {
	cls, err := normalizeClass(class)
	if err != nil {
		return nil, err
	}

	flight, err := s.flights.GetFlight(ctx, flightID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: flight %d", ErrNotFound, flightID)
		}
		return nil, fmt.Errorf("load flight: %w", err)
	}

	layout, err := s.seats.SeatsByClass(ctx, flight.PlaneID, string(cls))
	if err != nil {
		return nil, fmt.Errorf("load seats: %w", err)
	}
	occupied, err := s.seats.OccupiedSeats(ctx, flightID, flight.PlaneID)
	if err != nil {
		return nil, fmt.Errorf("load occupancy: %w", err)
	}

	taken := make(map[string]bool, len(occupied))
	for _, ref := range occupied {
		taken[ref.ID()] = true
	}

	out := &dtos.SeatMap{FlightID: flightID, Class: string(cls)}
	for _, seat := range layout {
		out.Seats = append(out.Seats, dtos.SeatInfo{
			SeatID:   seat.ID(),
			RowNum:   seat.RowNum,
			Column:   seat.ColumnNumber,
			Class:    seat.Class,
			Occupied: taken[seat.ID()],
		})
	}
	return out, nil
}

// SelectSeats applies the buyer's picks. The count must match the draft's
// quantity exactly, every seat must exist in the plane's layout with the
// draft's class, and none may be occupied right now. Occupancy is advisory
// here; ConfirmOrder decides for real.
func (s *BookingService) SelectSeats(ctx context.Context, draftID string, seatIDs []string) (*entities.BookingDraft, error) {
	draft, found := s.drafts.GetBookingDraft(draftID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgDraftMissing)
	}
	if draft.Step != entities.StepSeats && draft.Step != entities.StepReview {
		return nil, fmt.Errorf("%w: draft is not at seat selection", ErrValidation)
	}

	if len(seatIDs) != draft.Quantity {
		return nil, fmt.Errorf("%w: expected %d seats, got %d", ErrValidation, draft.Quantity, len(seatIDs))
	}

	refs := make([]entities.SeatRef, 0, len(seatIDs))
	seen := make(map[string]bool, len(seatIDs))
	for _, id := range seatIDs {
		ref, err := entities.ParseSeatID(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if seen[ref.ID()] {
			return nil, fmt.Errorf("%w: seat %s picked twice", ErrValidation, ref.ID())
		}
		seen[ref.ID()] = true
		refs = append(refs, ref)
	}

	occupied, err := s.seats.OccupiedSeats(ctx, draft.FlightID, draft.PlaneID)
	if err != nil {
		return nil, fmt.Errorf("load occupancy: %w", err)
	}
	taken := make(map[string]bool, len(occupied))
	for _, ref := range occupied {
		taken[ref.ID()] = true
	}

	for _, ref := range refs {
		seat, err := s.seats.SeatByRef(ctx, draft.PlaneID, ref)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: seat %s does not exist on this plane", ErrValidation, ref.ID())
			}
			return nil, fmt.Errorf("load seat %s: %w", ref.ID(), err)
		}
		if seat.Class != draft.Class {
			return nil, fmt.Errorf("%w: seat %s is %s, draft is %s", ErrValidation, ref.ID(), seat.Class, draft.Class)
		}
		if taken[ref.ID()] {
			return nil, fmt.Errorf("%w: seat %s is already taken", ErrBookingConflict, ref.ID())
		}
	}

	draft.Seats = refs
	draft.Step = entities.StepReview
	if err := s.drafts.PutBookingDraft(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Review returns the draft with its computed total.
func (s *BookingService) Review(draftID string) (*dtos.BookingReview, error) {
	draft, found := s.drafts.GetBookingDraft(draftID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgDraftMissing)
	}
	if draft.Step != entities.StepReview {
		return nil, fmt.Errorf("%w: draft is not ready for review", ErrValidation)
	}
	return &dtos.BookingReview{
		Draft: *draft,
		Total: draft.UnitPrice * float64(draft.Quantity),
	}, nil
}

// Abandon discards the in-progress booking draft.
func (s *BookingService) Abandon(draftID string) {
	s.drafts.DeleteBookingDraft(draftID)
}

// ConfirmOrder is the all-or-nothing commit: inside one transaction every
// seat's occupancy is re-checked, the order and its seats are written, and a
// guest row is upserted for unregistered buyers. A single taken seat rolls
// everything back with a booking conflict; the draft drops back to seat
// selection so the buyer can re-pick.
func (s *BookingService) ConfirmOrder(ctx context.Context, draftID string) (*dtos.OrderCommitted, error) {
	draft, found := s.drafts.GetBookingDraft(draftID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgDraftMissing)
	}
	if draft.Step != entities.StepReview {
		return nil, fmt.Errorf("%w: draft is not ready to commit", ErrValidation)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	flight, err := s.flights.GetFlightTx(ctx, tx, draft.FlightID)
	if err != nil {
		return nil, fmt.Errorf("re-read flight: %w", err)
	}
	if constants.FlightStatus(flight.Status) != constants.FlightActive {
		return nil, fmt.Errorf("%w: flight is %s", ErrValidation, flight.Status)
	}

	for _, ref := range draft.Seats {
		occupied, err := s.seats.SeatOccupiedTx(ctx, tx, draft.FlightID, draft.PlaneID, ref)
		if err != nil {
			return nil, fmt.Errorf("re-check seat %s: %w", ref.ID(), err)
		}
		if occupied {
			draft.Step = entities.StepSeats
			draft.Seats = nil
			_ = s.drafts.PutBookingDraft(draft)
			if s.metrics != nil {
				s.metrics.BookingConflictsTotal.Inc()
			}
			return nil, fmt.Errorf("%w: %s", ErrBookingConflict, constants.MsgSeatsTaken)
		}
	}

	if draft.IsGuest {
		guest := &entities.Guest{
			EmailAddress: draft.Email,
			FirstName:    draft.FirstName,
			LastName:     draft.LastName,
		}
		if err := s.orders.UpsertGuest(ctx, tx, guest); err != nil {
			return nil, fmt.Errorf("upsert guest: %w", err)
		}
	}

	orderID, err := s.orders.NextOrderID(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("allocate order id: %w", err)
	}

	total := draft.UnitPrice * float64(draft.Quantity)
	order := &entities.Order{
		OrderID:    orderID,
		FlightID:   draft.FlightID,
		Status:     string(constants.OrderActive),
		FinalTotal: total,
		Quantity:   draft.Quantity,
		CreatedAt:  time.Now(),
	}
	if draft.IsGuest {
		order.GuestEmail = &draft.Email
	} else {
		order.ClientEmail = &draft.Email
	}

	if err := s.orders.InsertOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	for _, ref := range draft.Seats {
		if err := s.orders.InsertSelectedSeat(ctx, tx, draft.PlaneID, orderID, ref); err != nil {
			return nil, fmt.Errorf("insert seat %s: %w", ref.ID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order tx: %w", err)
	}

	s.drafts.DeleteBookingDraft(draftID)
	if s.metrics != nil {
		s.metrics.OrdersCommittedTotal.Inc()
	}
	logging.Info("order confirmed", "order_id", orderID, "flight_id", draft.FlightID,
		"quantity", draft.Quantity, "total", total)

	return &dtos.OrderCommitted{OrderID: orderID, FinalTotal: total}, nil
}

func normalizeClass(class string) (constants.SeatClass, error) {
	switch strings.ToLower(strings.TrimSpace(class)) {
	case "economy", "":
		return constants.ClassEconomy, nil
	case "business":
		return constants.ClassBusiness, nil
	}
	return "", fmt.Errorf("%w: unknown seat class %q", ErrValidation, class)
}
