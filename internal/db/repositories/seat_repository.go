package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"skyharbor/dispatch/internal/constants"
	"skyharbor/dispatch/internal/models/entities"
)

type SeatRepository struct {
	db *sqlx.DB
}

func NewSeatRepository(db *sqlx.DB) *SeatRepository {
	return &SeatRepository{db}
}

// SeatsByClass returns the plane's fixed layout filtered to one class.
func (r *SeatRepository) SeatsByClass(ctx context.Context, planeID int, class string) ([]entities.Seat, error) {
	query := r.db.Rebind(`
		SELECT plane_id, row_num, column_number, class
		FROM seats
		WHERE plane_id = ? AND class = ?
		ORDER BY row_num, column_number
	`)

	seats := []entities.Seat{}
	if err := r.db.SelectContext(ctx, &seats, query, planeID, class); err != nil {
		return nil, err
	}
	return seats, nil
}

// OccupiedSeats returns seats currently held by an active order on a flight.
func (r *SeatRepository) OccupiedSeats(ctx context.Context, flightID, planeID int) ([]entities.SeatRef, error) {
	refs := []entities.SeatRef{}
	err := r.db.SelectContext(ctx, &refs, r.db.Rebind(constants.OccupiedSeatsForFlight), flightID, planeID)
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// SeatByRef fetches one seat of the plane's layout, or sql.ErrNoRows.
func (r *SeatRepository) SeatByRef(ctx context.Context, planeID int, ref entities.SeatRef) (*entities.Seat, error) {
	query := r.db.Rebind(`
		SELECT plane_id, row_num, column_number, class
		FROM seats
		WHERE plane_id = ? AND row_num = ? AND column_number = ?
	`)

	var seat entities.Seat
	if err := r.db.GetContext(ctx, &seat, query, planeID, ref.RowNum, ref.ColumnNumber); err != nil {
		return nil, err
	}
	return &seat, nil
}

// SeatOccupiedTx re-checks one seat inside the order-commit transaction.
func (r *SeatRepository) SeatOccupiedTx(ctx context.Context, ext sqlx.ExtContext, flightID, planeID int, ref entities.SeatRef) (bool, error) {
	var one int
	err := sqlx.GetContext(ctx, ext, &one, ext.Rebind(constants.SeatOccupiedCheck),
		flightID, planeID, ref.RowNum, ref.ColumnNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
