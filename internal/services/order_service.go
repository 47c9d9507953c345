package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"skyharbor/dispatch/internal/constants"
	"skyharbor/dispatch/internal/db/repositories"
	"skyharbor/dispatch/internal/logging"
	"skyharbor/dispatch/internal/metrics"
	"skyharbor/dispatch/internal/models/dtos"
	"skyharbor/dispatch/internal/models/entities"
)

// OrderActor identifies who is acting on an order: the owner's email and
// whether they hold a registered account (guests match the guest column).
// Admins bypass ownership checks. Guests additionally carry GuestOrderRef,
// an order ID they must pair with their email before any history is shown.
type OrderActor struct {
	Email         string
	IsRegistered  bool
	IsAdmin       bool
	GuestOrderRef int
}

func (a OrderActor) owns(o *entities.Order) bool {
	if a.IsAdmin {
		return true
	}
	return strings.EqualFold(o.OwnerEmail(), a.Email)
}

// OrderService serves order history views and the customer cancellation rule:
// at least 36 hours before departure, with a 5% fee frozen as the final total.
type OrderService struct {
	db      *sqlx.DB
	orders  *repositories.OrderRepository
	flights *repositories.FlightRepository
	metrics *metrics.MetricsRegistry
}

func NewOrderService(db *sqlx.DB, orders *repositories.OrderRepository,
	flights *repositories.FlightRepository, reg *metrics.MetricsRegistry) *OrderService {
	return &OrderService{db: db, orders: orders, flights: flights, metrics: reg}
}

// GetOrder loads one order, visible only to its owner or an admin.
func (s *OrderService) GetOrder(ctx context.Context, actor OrderActor, orderID int) (*entities.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	if !actor.owns(order) {
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, constants.MsgAccessDenied)
	}
	return order, nil
}

// ListOrders returns the actor's upcoming or past orders with the display
// total resolved per status and the inferred ticket class. A guest proves
// ownership of the email first by naming one of its orders; email alone is
// not enough to read someone's history.
func (s *OrderService) ListOrders(ctx context.Context, actor OrderActor, future bool, now time.Time) ([]dtos.OrderRow, error) {
	if !actor.IsRegistered && !actor.IsAdmin {
		if actor.GuestOrderRef == 0 {
			return nil, fmt.Errorf("%w: guest history requires an order id", ErrValidation)
		}
		if _, err := s.GetOrder(ctx, actor, actor.GuestOrderRef); err != nil {
			return nil, err
		}
	}

	rows, err := s.orders.ListOrders(ctx, actor.Email, actor.IsRegistered, future, now)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	for i := range rows {
		order, err := s.orders.GetOrder(ctx, rows[i].OrderID)
		if err != nil {
			return nil, fmt.Errorf("load order %d: %w", rows[i].OrderID, err)
		}
		rows[i].DisplayTotal = order.FinalTotal

		class, err := s.orders.TicketClass(ctx, rows[i].OrderID)
		if err != nil {
			return nil, fmt.Errorf("classify order %d: %w", rows[i].OrderID, err)
		}
		rows[i].TicketClass = class

		rows[i].CanCancel = constants.OrderStatus(rows[i].Status) == constants.OrderActive &&
			rows[i].DepartureAt.Sub(now).Hours() >= constants.OrderCancelCutoffHours
	}

	return rows, nil
}

// CancelOrder cancels an active order at least 36 hours before departure.
// The 5% cancellation fee of the original total is frozen as the order's
// final total, and its seats are released in the same transaction.
func (s *OrderService) CancelOrder(ctx context.Context, actor OrderActor, orderID int, now time.Time) (*dtos.CancelOrderResult, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	if !actor.owns(order) {
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, constants.MsgAccessDenied)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin cancel tx: %w", err)
	}
	defer tx.Rollback()

	// Re-read under the transaction so a concurrent cancellation or a
	// flight-cascade cannot double-apply the fee.
	order, err = s.orders.GetOrderTx(ctx, tx, orderID)
	if err != nil {
		return nil, fmt.Errorf("re-read order: %w", err)
	}
	if constants.OrderStatus(order.Status) != constants.OrderActive {
		return nil, fmt.Errorf("%w: order is %s", ErrCancellationDenied, order.Status)
	}

	flight, err := s.flights.GetFlightTx(ctx, tx, order.FlightID)
	if err != nil {
		return nil, fmt.Errorf("load flight: %w", err)
	}
	if flight.HoursUntilDeparture(now) < constants.OrderCancelCutoffHours {
		return nil, fmt.Errorf("%w: %s", ErrCancellationDenied, constants.MsgOrderCutoff)
	}

	fee := order.FinalTotal * constants.CustomerCancelFeeRate
	if err := s.orders.MarkCancelled(ctx, tx, orderID, constants.OrderCustomerCancelled, fee); err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	if _, err := s.orders.ReleaseSeats(ctx, tx, orderID); err != nil {
		return nil, fmt.Errorf("release seats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cancel tx: %w", err)
	}

	if s.metrics != nil {
		s.metrics.CancellationsTotal.WithLabelValues("order").Inc()
	}
	logging.Info("order cancelled", "order_id", orderID, "fee", fee)

	return &dtos.CancelOrderResult{OrderID: orderID, FinalTotal: fee}, nil
}
