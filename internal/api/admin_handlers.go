package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"skyharbor/dispatch/internal/auth"
	"skyharbor/dispatch/internal/common"
	"skyharbor/dispatch/internal/models/dtos"
	"skyharbor/dispatch/internal/models/entities"
	"skyharbor/dispatch/internal/services"
)

// AvailabilityHandler handles GET /api/v1/admin/availability.
// Query: departure_date, departure_time, duration_min. The long-haul flag is
// derived from the duration, never taken from the caller.
func AvailabilityHandler(availabilitySvc *services.AvailabilityService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		departure, err := services.CombineDateTime(
			r.URL.Query().Get("departure_date"),
			r.URL.Query().Get("departure_time"),
		)
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		durationMin, err := strconv.Atoi(r.URL.Query().Get("duration_min"))
		if err != nil || durationMin <= 0 {
			common.RespondError(w, initTime, nil, "Invalid duration_min parameter", http.StatusBadRequest)
			return
		}

		window := entities.NewWindow(departure, durationMin)
		set, err := availabilitySvc.FindAvailable(r.Context(), window, services.IsLongFlight(durationMin))
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Availability computed", set)
	}
}

// StartFlightDraftHandler handles POST /api/v1/admin/flights/draft.
func StartFlightDraftHandler(draftSvc *services.FlightDraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FlightDraftStartReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
			return
		}

		claims := auth.GetActorClaims(r.Context())
		draft, err := draftSvc.StartDraft(r.Context(), claims.WorkerID(), req)
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Draft started", draft, http.StatusCreated)
	}
}

// DraftCandidatesHandler handles GET /api/v1/admin/flights/draft/candidates.
func DraftCandidatesHandler(draftSvc *services.FlightDraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetActorClaims(r.Context())
		set, err := draftSvc.Candidates(r.Context(), claims.WorkerID())
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Candidates computed", set)
	}
}

// SelectResourcesHandler handles POST /api/v1/admin/flights/draft/resources.
func SelectResourcesHandler(draftSvc *services.FlightDraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FlightDraftResourcesReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
			return
		}

		claims := auth.GetActorClaims(r.Context())
		draft, err := draftSvc.SelectResources(r.Context(), claims.WorkerID(), req)
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Resources selected", draft)
	}
}

// ReviewFlightDraftHandler handles GET /api/v1/admin/flights/draft.
func ReviewFlightDraftHandler(draftSvc *services.FlightDraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetActorClaims(r.Context())
		draft, err := draftSvc.Review(claims.WorkerID())
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Draft ready", draft)
	}
}

// AbandonFlightDraftHandler handles DELETE /api/v1/admin/flights/draft.
func AbandonFlightDraftHandler(draftSvc *services.FlightDraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetActorClaims(r.Context())
		draftSvc.Abandon(claims.WorkerID())

		common.RespondSuccess(w, initTime, "Draft abandoned", nil)
	}
}

// CommitFlightHandler handles POST /api/v1/admin/flights/draft/commit.
func CommitFlightHandler(schedulingSvc *services.SchedulingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetActorClaims(r.Context())
		committed, err := schedulingSvc.CommitFlight(r.Context(), claims.WorkerID())
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Flight committed", committed, http.StatusCreated)
	}
}

// CancelFlightHandler handles POST /api/v1/admin/flights/{flight_id}/cancel.
func CancelFlightHandler(schedulingSvc *services.SchedulingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		flightID, err := strconv.Atoi(chi.URLParam(r, "flight_id"))
		if err != nil {
			common.RespondError(w, initTime, nil, "Invalid flight id", http.StatusBadRequest)
			return
		}

		summary, err := schedulingSvc.CancelFlight(r.Context(), flightID, time.Now())
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Flight cancelled", summary)
	}
}

// AddStaffHandler handles POST /api/v1/admin/staff.
func AddStaffHandler(registrySvc *services.RegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AddStaffReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := registrySvc.AddStaff(r.Context(), req); err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Staff added", nil, http.StatusCreated)
	}
}
