package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"skyharbor/dispatch/internal/constants"
	"skyharbor/dispatch/internal/db/repositories"
	"skyharbor/dispatch/internal/models/dtos"
	"skyharbor/dispatch/internal/models/entities"
)

func bookingFixture(t *testing.T) (*BookingService, *sqlx.DB) {
	t.Helper()

	db := newTestDB(t)
	seedAirports(t, db)
	seedRoute(t, db, 1, 2, "02:00:00")
	seedLargePlane(t, db, 1)
	seedSmallPlane(t, db, 2)

	departure := time.Now().Add(200 * time.Hour).UTC().Truncate(time.Second)
	seedFlight(t, db, 1001, 1, 1, 2, departure, "active") // large plane
	seedFlight(t, db, 1002, 2, 1, 2, departure, "active") // small plane
	seedFlight(t, db, 1003, 2, 2, 1, departure, "cancelled")

	svc := NewBookingService(db, newTestDraftStore(),
		repositories.NewFlightRepository(db),
		repositories.NewPlaneRepository(db),
		repositories.NewSeatRepository(db),
		repositories.NewOrderRepository(db),
		nil)
	return svc, db
}

func guestStart(flightID int, class string, quantity int) dtos.BookingStartReq {
	return dtos.BookingStartReq{
		FlightID:  flightID,
		Class:     class,
		Quantity:  quantity,
		Email:     "guest@example.com",
		FirstName: "Gia",
		LastName:  "Guest",
	}
}

func TestStartBooking(t *testing.T) {
	svc, _ := bookingFixture(t)
	ctx := context.Background()

	draft, err := svc.StartBooking(ctx, guestStart(1001, "business", 2), true)
	if err != nil {
		t.Fatalf("StartBooking error: %v", err)
	}
	if draft.Step != entities.StepSeats {
		t.Errorf("Step = %s, want %s", draft.Step, entities.StepSeats)
	}
	if draft.Class != string(constants.ClassBusiness) {
		t.Errorf("Class = %q, want Business", draft.Class)
	}
	if draft.UnitPrice != 250 {
		t.Errorf("UnitPrice = %v, want business price 250", draft.UnitPrice)
	}

	// empty class defaults to economy
	eco, err := svc.StartBooking(ctx, guestStart(1001, "", 1), true)
	if err != nil {
		t.Fatalf("StartBooking economy error: %v", err)
	}
	if eco.Class != string(constants.ClassEconomy) || eco.UnitPrice != 100 {
		t.Errorf("economy draft = %q @ %v", eco.Class, eco.UnitPrice)
	}
}

func TestStartBookingRejects(t *testing.T) {
	svc, _ := bookingFixture(t)
	ctx := context.Background()

	if _, err := svc.StartBooking(ctx, guestStart(1001, "economy", 0), true); !errors.Is(err, ErrValidation) {
		t.Errorf("zero quantity expected ErrValidation, got %v", err)
	}
	if _, err := svc.StartBooking(ctx, guestStart(4242, "economy", 1), true); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing flight expected ErrNotFound, got %v", err)
	}
	if _, err := svc.StartBooking(ctx, guestStart(1003, "economy", 1), true); !errors.Is(err, ErrValidation) {
		t.Errorf("cancelled flight expected ErrValidation, got %v", err)
	}
	// small planes sell no business seats
	if _, err := svc.StartBooking(ctx, guestStart(1002, "business", 1), true); !errors.Is(err, ErrValidation) {
		t.Errorf("business on small plane expected ErrValidation, got %v", err)
	}
	if _, err := svc.StartBooking(ctx, guestStart(1001, "first", 1), true); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown class expected ErrValidation, got %v", err)
	}
}

func TestSelectSeats(t *testing.T) {
	svc, _ := bookingFixture(t)
	ctx := context.Background()

	draft, err := svc.StartBooking(ctx, guestStart(1001, "economy", 2), true)
	if err != nil {
		t.Fatalf("StartBooking error: %v", err)
	}

	if _, err := svc.SelectSeats(ctx, draft.DraftID, []string{"2A"}); !errors.Is(err, ErrValidation) {
		t.Errorf("count mismatch expected ErrValidation, got %v", err)
	}
	if _, err := svc.SelectSeats(ctx, draft.DraftID, []string{"2A", "2A"}); !errors.Is(err, ErrValidation) {
		t.Errorf("duplicate seat expected ErrValidation, got %v", err)
	}
	if _, err := svc.SelectSeats(ctx, draft.DraftID, []string{"2A", "9Z"}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown seat expected ErrValidation, got %v", err)
	}
	// 1A is business, the draft is economy
	if _, err := svc.SelectSeats(ctx, draft.DraftID, []string{"2A", "1A"}); !errors.Is(err, ErrValidation) {
		t.Errorf("class mismatch expected ErrValidation, got %v", err)
	}

	updated, err := svc.SelectSeats(ctx, draft.DraftID, []string{"2A", "2B"})
	if err != nil {
		t.Fatalf("SelectSeats error: %v", err)
	}
	if updated.Step != entities.StepReview {
		t.Errorf("Step = %s, want %s", updated.Step, entities.StepReview)
	}

	review, err := svc.Review(draft.DraftID)
	if err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if review.Total != 200 {
		t.Errorf("Total = %v, want 200", review.Total)
	}
}

func TestConfirmOrder(t *testing.T) {
	svc, db := bookingFixture(t)
	ctx := context.Background()

	draft, err := svc.StartBooking(ctx, guestStart(1001, "business", 2), true)
	if err != nil {
		t.Fatalf("StartBooking error: %v", err)
	}
	if _, err := svc.SelectSeats(ctx, draft.DraftID, []string{"1A", "1B"}); err != nil {
		t.Fatalf("SelectSeats error: %v", err)
	}

	committed, err := svc.ConfirmOrder(ctx, draft.DraftID)
	if err != nil {
		t.Fatalf("ConfirmOrder error: %v", err)
	}
	if committed.OrderID != 9001 {
		t.Errorf("OrderID = %d, want 9001 (floor 9000, max+1)", committed.OrderID)
	}
	if committed.FinalTotal != 500 {
		t.Errorf("FinalTotal = %v, want 500", committed.FinalTotal)
	}

	var guestCount int
	db.Get(&guestCount, `SELECT COUNT(*) FROM guests WHERE email_address = 'guest@example.com'`)
	if guestCount != 1 {
		t.Errorf("guest rows = %d, want 1", guestCount)
	}

	var seatCount int
	db.Get(&seatCount, `SELECT COUNT(*) FROM selected_seats WHERE order_id = ? AND is_occupied = 1`, committed.OrderID)
	if seatCount != 2 {
		t.Errorf("occupied seats = %d, want 2", seatCount)
	}

	// the ticket class is inferred from the occupied seats
	class, err := repositories.NewOrderRepository(db).TicketClass(ctx, committed.OrderID)
	if err != nil {
		t.Fatalf("TicketClass error: %v", err)
	}
	if class != string(constants.ClassBusiness) {
		t.Errorf("TicketClass = %q, want Business", class)
	}

	// the draft is consumed
	if _, err := svc.ConfirmOrder(ctx, draft.DraftID); !errors.Is(err, ErrNotFound) {
		t.Errorf("re-confirm expected ErrNotFound, got %v", err)
	}
}

func TestConfirmOrderSeatConflict(t *testing.T) {
	svc, db := bookingFixture(t)
	ctx := context.Background()

	first, err := svc.StartBooking(ctx, guestStart(1001, "economy", 1), true)
	if err != nil {
		t.Fatalf("StartBooking error: %v", err)
	}
	second, err := svc.StartBooking(ctx, dtos.BookingStartReq{
		FlightID: 1001, Class: "economy", Quantity: 1,
		Email: "late@example.com", FirstName: "Lia", LastName: "Late",
	}, true)
	if err != nil {
		t.Fatalf("StartBooking error: %v", err)
	}

	// both buyers pick 2A while it is still free
	if _, err := svc.SelectSeats(ctx, first.DraftID, []string{"2A"}); err != nil {
		t.Fatalf("SelectSeats error: %v", err)
	}
	if _, err := svc.SelectSeats(ctx, second.DraftID, []string{"2A"}); err != nil {
		t.Fatalf("SelectSeats error: %v", err)
	}

	if _, err := svc.ConfirmOrder(ctx, first.DraftID); err != nil {
		t.Fatalf("first ConfirmOrder error: %v", err)
	}

	// the loser fails whole, nothing is written
	if _, err := svc.ConfirmOrder(ctx, second.DraftID); !errors.Is(err, ErrBookingConflict) {
		t.Fatalf("second confirm expected ErrBookingConflict, got %v", err)
	}
	var orders int
	db.Get(&orders, `SELECT COUNT(*) FROM orders`)
	if orders != 1 {
		t.Errorf("orders = %d, want 1", orders)
	}

	// the losing draft drops back to seat selection for a re-pick
	loser, err := svc.SelectSeats(ctx, second.DraftID, []string{"2B"})
	if err != nil {
		t.Fatalf("re-pick error: %v", err)
	}
	if loser.Step != entities.StepReview {
		t.Errorf("Step = %s, want %s", loser.Step, entities.StepReview)
	}
	if _, err := svc.ConfirmOrder(ctx, second.DraftID); err != nil {
		t.Fatalf("confirm after re-pick error: %v", err)
	}
}

func TestSeatMap(t *testing.T) {
	svc, db := bookingFixture(t)
	ctx := context.Background()

	seedOrder(t, db, 9001, 1001, "x@example.com", 100, 1)
	seedSelectedSeat(t, db, 1, 9001, 2, "A")

	seatMap, err := svc.SeatMap(ctx, 1001, "economy")
	if err != nil {
		t.Fatalf("SeatMap error: %v", err)
	}
	if len(seatMap.Seats) != 4 {
		t.Fatalf("economy seats = %d, want 4", len(seatMap.Seats))
	}

	occupied := map[string]bool{}
	for _, seat := range seatMap.Seats {
		if seat.Occupied {
			occupied[seat.SeatID] = true
		}
	}
	if !occupied["2A"] || len(occupied) != 1 {
		t.Errorf("occupied = %v, want only 2A", occupied)
	}
}

func TestSearchFlights(t *testing.T) {
	svc, _ := bookingFixture(t)
	ctx := context.Background()

	rows, err := svc.SearchFlights(ctx, repositories.FlightSearchFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("SearchFlights error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("active flights = %d, want 2", len(rows))
	}
	for _, row := range rows {
		if row.Status != string(constants.FlightActive) {
			t.Errorf("flight %d status = %q", row.FlightID, row.Status)
		}
	}

	byOrigin, err := svc.SearchFlights(ctx, repositories.FlightSearchFilter{ActiveOnly: true, OriginID: 1})
	if err != nil {
		t.Fatalf("SearchFlights error: %v", err)
	}
	if len(byOrigin) != 2 {
		t.Errorf("flights from airport 1 = %d, want 2", len(byOrigin))
	}

	if _, err := svc.SearchFlights(ctx, repositories.FlightSearchFilter{Status: "bogus"}); !errors.Is(err, ErrValidation) {
		t.Errorf("bogus status expected ErrValidation, got %v", err)
	}
}
