package routes

import (
	"github.com/go-chi/chi/v5"

	"skyharbor/dispatch/internal/api"
	"skyharbor/dispatch/internal/metrics"
	"skyharbor/dispatch/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers.
// This keeps API route registration separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, deps *api.Dependencies) {
	svcs := deps.Services

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))

		// Public: flight board, seat maps, airports. A bearer token is
		// honored when present so registered clients are recognized.
		v1.Group(func(public chi.Router) {
			public.Use(middleware.OptionalAuthMiddleware)

			public.Get("/airports", api.ListAirportsHandler(svcs.Registry))
			public.Get("/flights", api.SearchFlightsHandler(svcs.Booking, false))
			public.Get("/flights/{flight_id}/seats", api.SeatMapHandler(svcs.Booking))

			// Booking flow: open to guests and registered clients alike.
			public.Post("/bookings/draft", api.StartBookingHandler(svcs.Booking))
			public.Post("/bookings/draft/seats", api.SelectSeatsHandler(svcs.Booking))
			public.Get("/bookings/draft", api.ReviewBookingHandler(svcs.Booking))
			public.Post("/bookings/draft/confirm", api.ConfirmBookingHandler(svcs.Booking))
			public.Delete("/bookings/draft", api.AbandonBookingHandler(svcs.Booking))

			// Orders: owner checks happen in the service layer; guests
			// identify themselves by order ID + email.
			public.Get("/orders", api.ListOrdersHandler(svcs.Order))
			public.Get("/orders/{order_id}", api.GetOrderHandler(svcs.Order))
			public.Post("/orders/{order_id}/cancel", api.CancelOrderHandler(svcs.Order))
		})

		// Admin-only group
		v1.Group(func(admin chi.Router) {
			admin.Use(middleware.AuthMiddleware())
			admin.Use(middleware.IsAdminMiddleware())

			admin.Get("/admin/availability", api.AvailabilityHandler(svcs.Availability))
			admin.Get("/admin/flights", api.SearchFlightsHandler(svcs.Booking, true))

			admin.Post("/admin/flights/draft", api.StartFlightDraftHandler(svcs.FlightDraft))
			admin.Get("/admin/flights/draft/candidates", api.DraftCandidatesHandler(svcs.FlightDraft))
			admin.Post("/admin/flights/draft/resources", api.SelectResourcesHandler(svcs.FlightDraft))
			admin.Get("/admin/flights/draft", api.ReviewFlightDraftHandler(svcs.FlightDraft))
			admin.Delete("/admin/flights/draft", api.AbandonFlightDraftHandler(svcs.FlightDraft))
			admin.Post("/admin/flights/draft/commit", api.CommitFlightHandler(svcs.Scheduling))

			admin.Post("/admin/flights/{flight_id}/cancel", api.CancelFlightHandler(svcs.Scheduling))

			admin.Post("/admin/staff", api.AddStaffHandler(svcs.Registry))
		})
	})
}
