package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"skyharbor/dispatch/internal/constants"
)

func TestCancelOrderFee(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	seedFlight(t, f.db, 1001, 2, 1, 2, now.Add(40*time.Hour), "active")
	seedOrder(t, f.db, 9001, 1001, "a@example.com", 200, 2)
	seedSelectedSeat(t, f.db, 2, 9001, 1, "A")
	seedSelectedSeat(t, f.db, 2, 9001, 1, "B")

	actor := OrderActor{Email: "a@example.com"}
	result, err := f.orders.CancelOrder(ctx, actor, 9001, now)
	if err != nil {
		t.Fatalf("CancelOrder error: %v", err)
	}
	if result.FinalTotal != 10 {
		t.Errorf("fee = %v, want 10 (5%% of 200)", result.FinalTotal)
	}

	order, err := f.orders.GetOrder(ctx, actor, 9001)
	if err != nil {
		t.Fatalf("GetOrder error: %v", err)
	}
	if order.Status != string(constants.OrderCustomerCancelled) {
		t.Errorf("status = %q, want customercancellation", order.Status)
	}
	if order.FinalTotal != 10 {
		t.Errorf("frozen total = %v, want 10", order.FinalTotal)
	}

	var occupied int
	f.db.Get(&occupied, `SELECT COUNT(*) FROM selected_seats WHERE order_id = 9001 AND is_occupied = 1`)
	if occupied != 0 {
		t.Errorf("occupied seats = %d, want 0", occupied)
	}
}

func TestCancelOrderCutoff(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	actor := OrderActor{Email: "a@example.com"}

	seedFlight(t, f.db, 1001, 2, 1, 2, now.Add(35*time.Hour), "active")
	seedOrder(t, f.db, 9001, 1001, "a@example.com", 200, 1)

	if _, err := f.orders.CancelOrder(ctx, actor, 9001, now); !errors.Is(err, ErrCancellationDenied) {
		t.Errorf("35h expected ErrCancellationDenied, got %v", err)
	}

	// exactly 36 hours is allowed
	seedFlight(t, f.db, 1002, 3, 1, 2, now.Add(36*time.Hour), "active")
	seedOrder(t, f.db, 9002, 1002, "a@example.com", 100, 1)
	if _, err := f.orders.CancelOrder(ctx, actor, 9002, now); err != nil {
		t.Errorf("36h cancel error: %v", err)
	}
}

func TestCancelOrderTwice(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	actor := OrderActor{Email: "a@example.com"}

	seedFlight(t, f.db, 1001, 2, 1, 2, now.Add(40*time.Hour), "active")
	seedOrder(t, f.db, 9001, 1001, "a@example.com", 200, 1)

	if _, err := f.orders.CancelOrder(ctx, actor, 9001, now); err != nil {
		t.Fatalf("first cancel error: %v", err)
	}
	// a second cancel must not re-apply the fee
	if _, err := f.orders.CancelOrder(ctx, actor, 9001, now); !errors.Is(err, ErrCancellationDenied) {
		t.Errorf("second cancel expected ErrCancellationDenied, got %v", err)
	}
}

func TestOrderOwnership(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	seedFlight(t, f.db, 1001, 2, 1, 2, now.Add(40*time.Hour), "active")
	seedOrder(t, f.db, 9001, 1001, "owner@example.com", 200, 1)

	stranger := OrderActor{Email: "other@example.com"}
	if _, err := f.orders.GetOrder(ctx, stranger, 9001); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("stranger GetOrder expected ErrAccessDenied, got %v", err)
	}
	if _, err := f.orders.CancelOrder(ctx, stranger, 9001, now); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("stranger CancelOrder expected ErrAccessDenied, got %v", err)
	}

	// email match is case insensitive
	owner := OrderActor{Email: "Owner@Example.com"}
	if _, err := f.orders.GetOrder(ctx, owner, 9001); err != nil {
		t.Errorf("owner GetOrder error: %v", err)
	}

	admin := OrderActor{Email: "admin@example.com", IsAdmin: true}
	if _, err := f.orders.GetOrder(ctx, admin, 9001); err != nil {
		t.Errorf("admin GetOrder error: %v", err)
	}
}

func TestListOrders(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	actor := OrderActor{Email: "a@example.com", GuestOrderRef: 9001}

	// one future flight in the cancellation window, one past
	seedFlight(t, f.db, 1001, 2, 1, 2, now.Add(48*time.Hour), "active")
	seedOrder(t, f.db, 9001, 1001, "a@example.com", 200, 2)
	seedSelectedSeat(t, f.db, 2, 9001, 1, "A")
	seedSelectedSeat(t, f.db, 2, 9001, 1, "B")

	seedFlight(t, f.db, 1002, 2, 1, 2, now.Add(-48*time.Hour), "done")
	seedOrder(t, f.db, 9002, 1002, "a@example.com", 100, 1)

	future, err := f.orders.ListOrders(ctx, actor, true, now)
	if err != nil {
		t.Fatalf("ListOrders(future) error: %v", err)
	}
	if len(future) != 1 || future[0].OrderID != 9001 {
		t.Fatalf("future = %+v, want order 9001 only", future)
	}
	if !future[0].CanCancel {
		t.Error("order 48h out must be cancellable")
	}
	if future[0].DisplayTotal != 200 {
		t.Errorf("DisplayTotal = %v, want 200", future[0].DisplayTotal)
	}
	if future[0].TicketClass != string(constants.ClassEconomy) {
		t.Errorf("TicketClass = %q, want Economy", future[0].TicketClass)
	}

	past, err := f.orders.ListOrders(ctx, actor, false, now)
	if err != nil {
		t.Fatalf("ListOrders(past) error: %v", err)
	}
	if len(past) != 1 || past[0].OrderID != 9002 {
		t.Fatalf("past = %+v, want order 9002 only", past)
	}
	if past[0].CanCancel {
		t.Error("a departed order must not be cancellable")
	}
}

func TestListOrdersGuestAnchor(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	seedFlight(t, f.db, 1001, 2, 1, 2, now.Add(48*time.Hour), "active")
	seedOrder(t, f.db, 9001, 1001, "a@example.com", 200, 2)

	// email alone is not enough for a guest
	bare := OrderActor{Email: "a@example.com"}
	if _, err := f.orders.ListOrders(ctx, bare, true, now); !errors.Is(err, ErrValidation) {
		t.Errorf("guest without order ref expected ErrValidation, got %v", err)
	}

	// the named order must belong to the presented email
	mismatched := OrderActor{Email: "other@example.com", GuestOrderRef: 9001}
	if _, err := f.orders.ListOrders(ctx, mismatched, true, now); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("mismatched pair expected ErrAccessDenied, got %v", err)
	}

	unknown := OrderActor{Email: "a@example.com", GuestOrderRef: 9999}
	if _, err := f.orders.ListOrders(ctx, unknown, true, now); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown order ref expected ErrNotFound, got %v", err)
	}

	// registered clients list by their token identity alone
	registered := OrderActor{Email: "a@example.com", IsRegistered: true}
	rows, err := f.orders.ListOrders(ctx, registered, true, now)
	if err != nil {
		t.Fatalf("registered ListOrders error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("registered rows = %d, want 0 (order belongs to a guest)", len(rows))
	}
}
