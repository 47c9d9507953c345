package api

import (
	"os"
	"time"

	"skyharbor/dispatch/internal/common"
	"skyharbor/dispatch/internal/db"
	"skyharbor/dispatch/internal/db/repositories"
	"skyharbor/dispatch/internal/logging"
	"skyharbor/dispatch/internal/metrics"
	"skyharbor/dispatch/internal/services"
)

type Repositories struct {
	Route        *repositories.RouteRepository
	Availability *repositories.AvailabilityRepository
	Plane        *repositories.PlaneRepository
	Flight       *repositories.FlightRepository
	Seat         *repositories.SeatRepository
	Order        *repositories.OrderRepository
	Registry     *repositories.RegistryRepositoryGORM
}

type Services struct {
	Cache        common.CacheInterface
	Drafts       *common.DraftStore
	Route        *services.RouteService
	Availability *services.AvailabilityService
	FlightDraft  *services.FlightDraftService
	Scheduling   *services.SchedulingService
	Booking      *services.BookingService
	Order        *services.OrderService
	Registry     *services.RegistryService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

const draftTTL = 30 * time.Minute

// InitDependencies wires repositories and services against the already
// initialized database handles. Redis backs the draft store when REDIS_HOST
// is set; otherwise drafts live in process memory.
func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Route:        repositories.NewRouteRepository(db.DB),
		Availability: repositories.NewAvailabilityRepository(db.DB),
		Plane:        repositories.NewPlaneRepository(db.DB),
		Flight:       repositories.NewFlightRepository(db.DB),
		Seat:         repositories.NewSeatRepository(db.DB),
		Order:        repositories.NewOrderRepository(db.DB),
		Registry:     repositories.NewRegistryRepositoryGORM(db.PgDB),
	}

	var cache common.CacheInterface
	if os.Getenv("REDIS_HOST") != "" {
		redisCache, err := common.NewRedisCacheService()
		if err != nil {
			return nil, err
		}
		cache = redisCache
		logging.Info("draft store backed by redis")
	} else {
		cache = common.NewCacheService(1800, 600)
		logging.Info("draft store backed by in-memory cache")
	}

	drafts := common.NewDraftStore(cache, draftTTL)

	routeSvc := services.NewRouteService(repos.Route)
	availabilitySvc := services.NewAvailabilityService(repos.Availability)

	svcs := &Services{
		Cache:        cache,
		Drafts:       drafts,
		Route:        routeSvc,
		Availability: availabilitySvc,
		FlightDraft:  services.NewFlightDraftService(drafts, routeSvc, availabilitySvc, repos.Plane),
		Scheduling:   services.NewSchedulingService(db.DB, drafts, repos.Availability, repos.Flight, repos.Order, metricsReg),
		Booking:      services.NewBookingService(db.DB, drafts, repos.Flight, repos.Plane, repos.Seat, repos.Order, metricsReg),
		Order:        services.NewOrderService(db.DB, repos.Order, repos.Flight, metricsReg),
		Registry:     services.NewRegistryService(repos.Registry),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
