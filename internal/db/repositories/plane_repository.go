package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"skyharbor/dispatch/internal/constants"
)

type PlaneRepository struct {
	db *sqlx.DB
}

func NewPlaneRepository(db *sqlx.DB) *PlaneRepository {
	return &PlaneRepository{db}
}

func (r *PlaneRepository) PlaneExists(ctx context.Context, planeID int) (bool, error) {
	query := r.db.Rebind(`SELECT 1 FROM planes WHERE plane_id = ? LIMIT 1`)

	var one int
	err := r.db.GetContext(ctx, &one, query, planeID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsLarge derives the plane's size from its seat inventory: large iff it owns
// at least one Business-class seat. This is the only size definition.
func (r *PlaneRepository) IsLarge(ctx context.Context, planeID int) (bool, error) {
	var one int
	err := r.db.GetContext(ctx, &one, r.db.Rebind(constants.PlaneHasBusinessSeat), planeID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
