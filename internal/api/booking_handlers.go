package api

import (
	"encoding/json"
	"net/http"
	"time"

	"skyharbor/dispatch/internal/auth"
	"skyharbor/dispatch/internal/common"
	"skyharbor/dispatch/internal/models/dtos"
	"skyharbor/dispatch/internal/services"
)

// StartBookingHandler handles POST /api/v1/bookings/draft. The endpoint is
// public: registered clients carry a token and their session email wins over
// the body; everyone else books as a guest.
func StartBookingHandler(bookingSvc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.BookingStartReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
			return
		}

		isGuest := true
		if claims := auth.GetActorClaims(r.Context()); claims != nil && !claims.IsAdmin() {
			isGuest = false
			req.Email = claims.Email()
		}

		draft, err := bookingSvc.StartBooking(r.Context(), req, isGuest)
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Booking started", draft, http.StatusCreated)
	}
}

// SelectSeatsHandler handles POST /api/v1/bookings/draft/seats.
func SelectSeatsHandler(bookingSvc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SeatSelectionReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
			return
		}

		draft, err := bookingSvc.SelectSeats(r.Context(), req.DraftID, req.SeatIDs)
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Seats selected", draft)
	}
}

// ReviewBookingHandler handles GET /api/v1/bookings/draft?draft_id=
func ReviewBookingHandler(bookingSvc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		review, err := bookingSvc.Review(r.URL.Query().Get("draft_id"))
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Booking ready", review)
	}
}

// ConfirmBookingHandler handles POST /api/v1/bookings/draft/confirm.
func ConfirmBookingHandler(bookingSvc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SeatSelectionReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
			return
		}

		committed, err := bookingSvc.ConfirmOrder(r.Context(), req.DraftID)
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Order confirmed", committed, http.StatusCreated)
	}
}

// AbandonBookingHandler handles DELETE /api/v1/bookings/draft?draft_id=
func AbandonBookingHandler(bookingSvc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		bookingSvc.Abandon(r.URL.Query().Get("draft_id"))
		common.RespondSuccess(w, initTime, "Booking abandoned", nil)
	}
}
