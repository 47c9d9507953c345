package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"skyharbor/dispatch/internal/constants"
	"skyharbor/dispatch/internal/models/entities"
)

// AvailabilityRepository surfaces the three resource pools and their current
// commitments. Overlap testing happens in the service layer so the predicate
// exists exactly once; these queries only fetch rows.
type AvailabilityRepository struct {
	db *sqlx.DB
}

func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db}
}

// ListPlanes returns every plane with its derived business-capability flag.
// When largeOnly is set, planes without a Business seat are filtered out.
func (r *AvailabilityRepository) ListPlanes(ctx context.Context, largeOnly bool) ([]entities.PlaneCandidate, error) {
	planes := []entities.PlaneCandidate{}
	if err := r.db.SelectContext(ctx, &planes, constants.ListPlanes); err != nil {
		return nil, err
	}
	if !largeOnly {
		return planes, nil
	}

	large := planes[:0]
	for _, p := range planes {
		if p.HasBusiness {
			large = append(large, p)
		}
	}
	return large, nil
}

func (r *AvailabilityRepository) ListPilots(ctx context.Context, qualifiedOnly bool) ([]entities.WorkerCandidate, error) {
	return r.listWorkers(ctx, constants.ListPilots, qualifiedOnly)
}

func (r *AvailabilityRepository) ListAttendants(ctx context.Context, qualifiedOnly bool) ([]entities.WorkerCandidate, error) {
	return r.listWorkers(ctx, constants.ListAttendants, qualifiedOnly)
}

func (r *AvailabilityRepository) listWorkers(ctx context.Context, query string, qualifiedOnly bool) ([]entities.WorkerCandidate, error) {
	flag := 0
	if qualifiedOnly {
		flag = 1
	}

	workers := []entities.WorkerCandidate{}
	if err := r.db.SelectContext(ctx, &workers, r.db.Rebind(query), flag); err != nil {
		return nil, err
	}
	return workers, nil
}

// PlaneCommitments returns every plane's active/full/done flight windows.
func (r *AvailabilityRepository) PlaneCommitments(ctx context.Context) ([]entities.ResourceCommitment, error) {
	return commitments(ctx, r.db, constants.PlaneCommitments)
}

func (r *AvailabilityRepository) PilotCommitments(ctx context.Context) ([]entities.ResourceCommitment, error) {
	return commitments(ctx, r.db, constants.PilotCommitments)
}

func (r *AvailabilityRepository) AttendantCommitments(ctx context.Context) ([]entities.ResourceCommitment, error) {
	return commitments(ctx, r.db, constants.AttendantCommitments)
}

// CommitmentsForPlane is the hard-check read: it runs against the commit
// transaction so the overlap decision sees current data.
func (r *AvailabilityRepository) CommitmentsForPlane(ctx context.Context, ext sqlx.ExtContext, planeID int) ([]entities.ResourceCommitment, error) {
	return commitments(ctx, ext, constants.PlaneCommitmentsByID, planeID)
}

func (r *AvailabilityRepository) CommitmentsForPilot(ctx context.Context, ext sqlx.ExtContext, workerID int) ([]entities.ResourceCommitment, error) {
	return commitments(ctx, ext, constants.PilotCommitmentsByID, workerID)
}

func (r *AvailabilityRepository) CommitmentsForAttendant(ctx context.Context, ext sqlx.ExtContext, workerID int) ([]entities.ResourceCommitment, error) {
	return commitments(ctx, ext, constants.AttendantCommitmentsByID, workerID)
}

func commitments(ctx context.Context, ext sqlx.ExtContext, query string, args ...interface{}) ([]entities.ResourceCommitment, error) {
	rows := []entities.ResourceCommitment{}
	if err := sqlx.SelectContext(ctx, ext, &rows, ext.Rebind(query), args...); err != nil {
		return nil, err
	}
	return rows, nil
}
