package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"skyharbor/dispatch/internal/constants"
	"skyharbor/dispatch/internal/models/dtos"
	"skyharbor/dispatch/internal/models/entities"
)

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db}
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID int) (*entities.Order, error) {
	query := r.db.Rebind(`
		SELECT order_id, flight_id, client_email, guest_email,
		       status, final_total, quantity, created_at
		FROM orders
		WHERE order_id = ?
	`)

	var o entities.Order
	if err := r.db.GetContext(ctx, &o, query, orderID); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderTx is the in-transaction re-read guarding concurrent cancellations.
func (r *OrderRepository) GetOrderTx(ctx context.Context, ext sqlx.ExtContext, orderID int) (*entities.Order, error) {
	query := ext.Rebind(`
		SELECT order_id, flight_id, client_email, guest_email,
		       status, final_total, quantity, created_at
		FROM orders
		WHERE order_id = ?
	`)

	var o entities.Order
	if err := sqlx.GetContext(ctx, ext, &o, query, orderID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) NextOrderID(ctx context.Context, ext sqlx.ExtContext) (int, error) {
	query := ext.Rebind(`SELECT COALESCE(MAX(order_id), ?) + 1 FROM orders`)

	var id int
	if err := sqlx.GetContext(ctx, ext, &id, query, constants.OrderIDFloor); err != nil {
		return 0, err
	}
	return id, nil
}

// InsertOrder writes the order row; exactly one of clientEmail/guestEmail is
// non-empty, matching the mutually exclusive owner columns.
func (r *OrderRepository) InsertOrder(ctx context.Context, ext sqlx.ExtContext, o *entities.Order) error {
	query := ext.Rebind(`
		INSERT INTO orders
		  (order_id, flight_id, client_email, guest_email, status, final_total, quantity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := ext.ExecContext(ctx, query,
		o.OrderID, o.FlightID, o.ClientEmail, o.GuestEmail,
		o.Status, o.FinalTotal, o.Quantity, o.CreatedAt)
	return err
}

func (r *OrderRepository) InsertSelectedSeat(ctx context.Context, ext sqlx.ExtContext, planeID, orderID int, ref entities.SeatRef) error {
	query := ext.Rebind(`
		INSERT INTO selected_seats (plane_id, order_id, row_num, column_number, is_occupied)
		VALUES (?, ?, ?, ?, 1)
	`)

	_, err := ext.ExecContext(ctx, query, planeID, orderID, ref.RowNum, ref.ColumnNumber)
	return err
}

// UpsertGuest records an unidentified guest the first time they order.
func (r *OrderRepository) UpsertGuest(ctx context.Context, ext sqlx.ExtContext, g *entities.Guest) error {
	var one int
	check := ext.Rebind(`SELECT 1 FROM guests WHERE email_address = ? LIMIT 1`)
	err := sqlx.GetContext(ctx, ext, &one, check, g.EmailAddress)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	insert := ext.Rebind(`
		INSERT INTO guests (email_address, first_name, last_name)
		VALUES (?, ?, ?)
	`)
	_, err = ext.ExecContext(ctx, insert, g.EmailAddress, g.FirstName, g.LastName)
	return err
}

// MarkCancelled freezes the order's final total and flips its status; the
// occupancy release is a separate statement so cascades can batch it.
func (r *OrderRepository) MarkCancelled(ctx context.Context, ext sqlx.ExtContext, orderID int, status constants.OrderStatus, finalTotal float64) error {
	query := ext.Rebind(`
		UPDATE orders SET status = ?, final_total = ? WHERE order_id = ?
	`)
	_, err := ext.ExecContext(ctx, query, string(status), finalTotal, orderID)
	return err
}

func (r *OrderRepository) ReleaseSeats(ctx context.Context, ext sqlx.ExtContext, orderID int) (int, error) {
	query := ext.Rebind(`UPDATE selected_seats SET is_occupied = 0 WHERE order_id = ?`)
	res, err := ext.ExecContext(ctx, query, orderID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ActiveOrderIDsForFlight lists the orders a flight cancellation cascades to.
func (r *OrderRepository) ActiveOrderIDsForFlight(ctx context.Context, ext sqlx.ExtContext, flightID int) ([]int, error) {
	query := ext.Rebind(`
		SELECT order_id FROM orders
		WHERE flight_id = ? AND status = 'active'
		ORDER BY order_id
	`)

	ids := []int{}
	if err := sqlx.SelectContext(ctx, ext, &ids, query, flightID); err != nil {
		return nil, err
	}
	return ids, nil
}

// TicketClass infers an order's class from its occupied seats, defaulting to
// Economy when none remain.
func (r *OrderRepository) TicketClass(ctx context.Context, orderID int) (string, error) {
	var class string
	err := r.db.GetContext(ctx, &class, r.db.Rebind(constants.OrderTicketClass), orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return string(constants.ClassEconomy), nil
	}
	if err != nil {
		return "", err
	}
	if class != string(constants.ClassEconomy) && class != string(constants.ClassBusiness) {
		return string(constants.ClassEconomy), nil
	}
	return class, nil
}

// ListOrders returns the owner's orders with flight context, future or past
// relative to now.
func (r *OrderRepository) ListOrders(ctx context.Context, ownerEmail string, isRegistered bool, future bool, now time.Time) ([]dtos.OrderRow, error) {
	ownerCol := "o.guest_email"
	if isRegistered {
		ownerCol = "o.client_email"
	}
	cmp := "<"
	if future {
		cmp = ">="
	}

	query := r.db.Rebind(`
		SELECT o.order_id, o.flight_id, o.status, o.quantity,
		       f.departure_at,
		       ao.airport_name AS origin_name,
		       ad.airport_name AS dest_name
		FROM orders o
		JOIN flights f ON f.flight_id = o.flight_id
		JOIN airports ao ON ao.airport_id = f.origin_airport
		JOIN airports ad ON ad.airport_id = f.destination_airport
		WHERE LOWER(` + ownerCol + `) = LOWER(?)
		  AND f.departure_at ` + cmp + ` ?
		ORDER BY f.departure_at
	`)

	rows := []dtos.OrderRow{}
	if err := r.db.SelectContext(ctx, &rows, query, ownerEmail, now); err != nil {
		return nil, err
	}
	return rows, nil
}
