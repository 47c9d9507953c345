package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"skyharbor/dispatch/internal/models/entities"
)

type RouteRepository struct {
	db *sqlx.DB
}

func NewRouteRepository(db *sqlx.DB) *RouteRepository {
	return &RouteRepository{db}
}

// FindRoute looks up the unique route for an ordered origin/destination pair.
// Routes are directional; the reverse pair is a different route.
func (r *RouteRepository) FindRoute(ctx context.Context, originID, destID int) (*entities.Route, error) {
	query := r.db.Rebind(`
		SELECT origin_airport, destination_airport, duration
		FROM routes
		WHERE origin_airport = ? AND destination_airport = ?
	`)

	var route entities.Route
	if err := r.db.GetContext(ctx, &route, query, originID, destID); err != nil {
		return nil, err
	}
	return &route, nil
}
