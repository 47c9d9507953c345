package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"skyharbor/dispatch/internal/constants"
	"skyharbor/dispatch/internal/models/dtos"
	"skyharbor/dispatch/internal/models/entities"
)

type FlightRepository struct {
	db *sqlx.DB
}

func NewFlightRepository(db *sqlx.DB) *FlightRepository {
	return &FlightRepository{db}
}

func (r *FlightRepository) GetFlight(ctx context.Context, flightID int) (*entities.Flight, error) {
	query := r.db.Rebind(`
		SELECT flight_id, plane_id, origin_airport, destination_airport,
		       departure_at, economy_price, business_price, status
		FROM flights
		WHERE flight_id = ?
	`)

	var f entities.Flight
	if err := r.db.GetContext(ctx, &f, query, flightID); err != nil {
		return nil, err
	}
	return &f, nil
}

// GetFlightTx is the in-transaction re-read used by cancellation.
func (r *FlightRepository) GetFlightTx(ctx context.Context, ext sqlx.ExtContext, flightID int) (*entities.Flight, error) {
	query := ext.Rebind(`
		SELECT flight_id, plane_id, origin_airport, destination_airport,
		       departure_at, economy_price, business_price, status
		FROM flights
		WHERE flight_id = ?
	`)

	var f entities.Flight
	if err := sqlx.GetContext(ctx, ext, &f, query, flightID); err != nil {
		return nil, err
	}
	return &f, nil
}

// NextFlightID allocates max+1 with the configured floor, inside the commit
// transaction so two admins cannot mint the same ID.
func (r *FlightRepository) NextFlightID(ctx context.Context, ext sqlx.ExtContext) (int, error) {
	query := ext.Rebind(`SELECT COALESCE(MAX(flight_id), ?) + 1 FROM flights`)

	var id int
	if err := sqlx.GetContext(ctx, ext, &id, query, constants.FlightIDFloor); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *FlightRepository) InsertFlight(ctx context.Context, ext sqlx.ExtContext, f *entities.Flight) error {
	query := ext.Rebind(`
		INSERT INTO flights
		  (flight_id, plane_id, origin_airport, destination_airport,
		   departure_at, economy_price, business_price, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := ext.ExecContext(ctx, query,
		f.FlightID, f.PlaneID, f.OriginID, f.DestinationID,
		f.DepartureAt, f.EconomyPrice, f.BusinessPrice, f.Status)
	return err
}

func (r *FlightRepository) InsertPilotAssignment(ctx context.Context, ext sqlx.ExtContext, workerID, flightID int) error {
	query := ext.Rebind(`INSERT INTO flight_pilots (worker_id, flight_id) VALUES (?, ?)`)
	_, err := ext.ExecContext(ctx, query, workerID, flightID)
	return err
}

func (r *FlightRepository) InsertAttendantAssignment(ctx context.Context, ext sqlx.ExtContext, workerID, flightID int) error {
	query := ext.Rebind(`INSERT INTO flight_attendants (worker_id, flight_id) VALUES (?, ?)`)
	_, err := ext.ExecContext(ctx, query, workerID, flightID)
	return err
}

func (r *FlightRepository) UpdateStatus(ctx context.Context, ext sqlx.ExtContext, flightID int, status constants.FlightStatus) error {
	query := ext.Rebind(`UPDATE flights SET status = ? WHERE flight_id = ?`)
	_, err := ext.ExecContext(ctx, query, string(status), flightID)
	return err
}

// FlightSearchFilter narrows the searchable flight board.
type FlightSearchFilter struct {
	OriginID      int
	DestinationID int
	FromDate      time.Time
	ToDate        time.Time
	Status        string
	ActiveOnly    bool
}

func (r *FlightRepository) Search(ctx context.Context, filter FlightSearchFilter) ([]dtos.FlightRow, error) {
	query := `
		SELECT
		    f.flight_id, f.plane_id, f.departure_at,
		    f.economy_price, f.business_price, f.status,
		    ao.airport_name AS origin_name, ao.city AS origin_city,
		    ad.airport_name AS dest_name, ad.city AS dest_city,
		    CASE WHEN EXISTS (
		        SELECT 1 FROM seats s
		        WHERE s.plane_id = f.plane_id
		          AND LOWER(s.class) = 'business'
		    ) THEN 1 ELSE 0 END AS has_business
		FROM flights f
		JOIN airports ao ON ao.airport_id = f.origin_airport
		JOIN airports ad ON ad.airport_id = f.destination_airport
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.ActiveOnly {
		query += " AND f.status = 'active'"
	} else if filter.Status != "" {
		query += " AND LOWER(f.status) = ?"
		args = append(args, filter.Status)
	}
	if filter.OriginID != 0 {
		query += " AND f.origin_airport = ?"
		args = append(args, filter.OriginID)
	}
	if filter.DestinationID != 0 {
		query += " AND f.destination_airport = ?"
		args = append(args, filter.DestinationID)
	}
	if !filter.FromDate.IsZero() {
		query += " AND f.departure_at >= ?"
		args = append(args, filter.FromDate)
	}
	if !filter.ToDate.IsZero() {
		query += " AND f.departure_at < ?"
		args = append(args, filter.ToDate)
	}

	query += " ORDER BY f.departure_at"

	rows := []dtos.FlightRow{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return rows, nil
}
