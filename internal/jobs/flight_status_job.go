package jobs

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"skyharbor/dispatch/internal/logging"
)

// FlightStatusJob sweeps the flight board and moves departed flights to
// "done", along with their active orders. Done flights drop out of every
// availability query, freeing their plane and crew for new windows.
type FlightStatusJob struct {
	db *sqlx.DB
}

func NewFlightStatusJob(db *sqlx.DB) *FlightStatusJob {
	return &FlightStatusJob{db: db}
}

// Run performs one sweep.
func (j *FlightStatusJob) Run(ctx context.Context) error {
	start := time.Now().UTC()

	flightQuery := j.db.Rebind(`
		UPDATE flights SET status = 'done'
		WHERE departure_at <= ? AND status IN ('active', 'full')
	`)
	res, err := j.db.ExecContext(ctx, flightQuery, start)
	if err != nil {
		logging.Error("flight status sweep failed", "error", err.Error())
		return err
	}
	flights, _ := res.RowsAffected()

	orderQuery := j.db.Rebind(`
		UPDATE orders SET status = 'done'
		WHERE status = 'active'
		  AND flight_id IN (SELECT flight_id FROM flights WHERE status = 'done')
	`)
	res, err = j.db.ExecContext(ctx, orderQuery)
	if err != nil {
		logging.Error("order status sweep failed", "error", err.Error())
		return err
	}
	orders, _ := res.RowsAffected()

	if flights > 0 || orders > 0 {
		logging.Info("flight status sweep completed",
			"flights_done", flights,
			"orders_done", orders,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return nil
}

// RunScheduled runs the sweep on a fixed interval until the context ends.
func (j *FlightStatusJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// one immediate sweep at startup
	if err := j.Run(ctx); err != nil {
		logging.Error("initial flight status sweep failed", "error", err.Error())
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				logging.Error("scheduled flight status sweep failed", "error", err.Error())
			}
		}
	}
}
