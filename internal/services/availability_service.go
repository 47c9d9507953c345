package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"skyharbor/dispatch/internal/db/repositories"
	"skyharbor/dispatch/internal/models/dtos"
	"skyharbor/dispatch/internal/models/entities"
)

// AvailabilityService computes which planes, pilots and attendants are free
// in a proposed window. All three pools share one commitment shape and one
// overlap predicate; the only per-pool difference is the capability filter.
type AvailabilityService struct {
	repo *repositories.AvailabilityRepository
}

func NewAvailabilityService(repo *repositories.AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

// FindAvailable runs the three pool queries concurrently and returns the
// candidates free in the window. This is the soft check: results are advisory
// and are re-validated before any write.
func (s *AvailabilityService) FindAvailable(ctx context.Context, window entities.Window, isLong bool) (*dtos.AvailabilitySet, error) {
	set := &dtos.AvailabilitySet{Window: window, IsLong: isLong}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		planes, err := s.AvailablePlanes(gctx, window, isLong)
		if err != nil {
			return err
		}
		set.Planes = planes
		return nil
	})
	g.Go(func() error {
		pilots, err := s.AvailablePilots(gctx, window, isLong)
		if err != nil {
			return err
		}
		set.Pilots = pilots
		return nil
	})
	g.Go(func() error {
		attendants, err := s.AvailableAttendants(gctx, window, isLong)
		if err != nil {
			return err
		}
		set.Attendants = attendants
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}

// AvailablePlanes returns planes with no overlapping commitment. Long flights
// restrict to large (business-capable) planes.
func (s *AvailabilityService) AvailablePlanes(ctx context.Context, window entities.Window, requiresLong bool) ([]entities.PlaneCandidate, error) {
	planes, err := s.repo.ListPlanes(ctx, requiresLong)
	if err != nil {
		return nil, fmt.Errorf("list planes: %w", err)
	}

	busy, err := busyResources(ctx, window, s.repo.PlaneCommitments)
	if err != nil {
		return nil, err
	}

	free := planes[:0]
	for _, p := range planes {
		if !busy[p.PlaneID] {
			free = append(free, p)
		}
	}
	return free, nil
}

// AvailablePilots returns pilots with no overlapping assignment. Long flights
// restrict to long-qualified pilots.
func (s *AvailabilityService) AvailablePilots(ctx context.Context, window entities.Window, requiresQualified bool) ([]entities.WorkerCandidate, error) {
	pilots, err := s.repo.ListPilots(ctx, requiresQualified)
	if err != nil {
		return nil, fmt.Errorf("list pilots: %w", err)
	}
	return filterFreeWorkers(ctx, pilots, window, s.repo.PilotCommitments)
}

// AvailableAttendants mirrors AvailablePilots for the attendant pool.
func (s *AvailabilityService) AvailableAttendants(ctx context.Context, window entities.Window, requiresQualified bool) ([]entities.WorkerCandidate, error) {
	attendants, err := s.repo.ListAttendants(ctx, requiresQualified)
	if err != nil {
		return nil, fmt.Errorf("list attendants: %w", err)
	}
	return filterFreeWorkers(ctx, attendants, window, s.repo.AttendantCommitments)
}

func filterFreeWorkers(ctx context.Context, workers []entities.WorkerCandidate, window entities.Window,
	fetch func(context.Context) ([]entities.ResourceCommitment, error)) ([]entities.WorkerCandidate, error) {

	busy, err := busyResources(ctx, window, fetch)
	if err != nil {
		return nil, err
	}

	free := workers[:0]
	for _, w := range workers {
		if !busy[w.WorkerID] {
			free = append(free, w)
		}
	}
	return free, nil
}

// busyResources resolves each commitment row to a window and collects the
// resource IDs that overlap the proposed one. Commitments whose duration
// cannot be parsed are treated as busy rather than silently free.
func busyResources(ctx context.Context, window entities.Window,
	fetch func(context.Context) ([]entities.ResourceCommitment, error)) (map[int]bool, error) {

	rows, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch commitments: %w", err)
	}

	busy := make(map[int]bool)
	for _, c := range rows {
		if CommitmentOverlaps(c, window) {
			busy[c.ResourceID] = true
		}
	}
	return busy, nil
}

// CommitmentOverlaps resolves one commitment row against a proposed window.
// This is the single overlap predicate every scheduling decision goes through.
func CommitmentOverlaps(c entities.ResourceCommitment, window entities.Window) bool {
	minutes, err := ParseDurationMinutes(c.Duration)
	if err != nil {
		// An unparseable schedule must block, not free, the resource.
		return true
	}
	return entities.NewWindow(c.DepartureAt, minutes).Overlaps(window)
}
