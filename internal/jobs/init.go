package jobs

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// InitializeJobs initializes and starts all background jobs.
func InitializeJobs(ctx context.Context, db *sqlx.DB) *FlightStatusJob {
	statusJob := NewFlightStatusJob(db)

	// Sweep departed flights every ten minutes
	go statusJob.RunScheduled(ctx, 10*time.Minute)

	return statusJob
}
