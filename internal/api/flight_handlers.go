package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"skyharbor/dispatch/internal/common"
	"skyharbor/dispatch/internal/db/repositories"
	"skyharbor/dispatch/internal/services"
)

// SearchFlightsHandler handles GET /api/v1/flights.
// Query: origin_id, destination_id, from_date, to_date (YYYY-MM-DD), status.
// Unauthenticated callers only ever see active flights.
func SearchFlightsHandler(bookingSvc *services.BookingService, adminView bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		filter := repositories.FlightSearchFilter{ActiveOnly: !adminView}
		q := r.URL.Query()

		if v := q.Get("origin_id"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				common.RespondError(w, initTime, nil, "Invalid origin_id parameter", http.StatusBadRequest)
				return
			}
			filter.OriginID = id
		}
		if v := q.Get("destination_id"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				common.RespondError(w, initTime, nil, "Invalid destination_id parameter", http.StatusBadRequest)
				return
			}
			filter.DestinationID = id
		}
		if v := q.Get("from_date"); v != "" {
			from, err := time.Parse("2006-01-02", v)
			if err != nil {
				common.RespondError(w, initTime, nil, "Invalid from_date parameter", http.StatusBadRequest)
				return
			}
			filter.FromDate = from
		}
		if v := q.Get("to_date"); v != "" {
			to, err := time.Parse("2006-01-02", v)
			if err != nil {
				common.RespondError(w, initTime, nil, "Invalid to_date parameter", http.StatusBadRequest)
				return
			}
			// inclusive end date
			filter.ToDate = to.AddDate(0, 0, 1)
		}
		if adminView {
			filter.Status = q.Get("status")
		}

		rows, err := bookingSvc.SearchFlights(r.Context(), filter)
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Flights found", rows)
	}
}

// SeatMapHandler handles GET /api/v1/flights/{flight_id}/seats?class=
func SeatMapHandler(bookingSvc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		flightID, err := strconv.Atoi(chi.URLParam(r, "flight_id"))
		if err != nil {
			common.RespondError(w, initTime, nil, "Invalid flight id", http.StatusBadRequest)
			return
		}

		seatMap, err := bookingSvc.SeatMap(r.Context(), flightID, r.URL.Query().Get("class"))
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Seat map", seatMap)
	}
}

// ListAirportsHandler handles GET /api/v1/airports.
func ListAirportsHandler(registrySvc *services.RegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		airports, err := registrySvc.ListAirports(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Airports", airports)
	}
}
