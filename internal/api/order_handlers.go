package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"skyharbor/dispatch/internal/auth"
	"skyharbor/dispatch/internal/common"
	"skyharbor/dispatch/internal/services"
)

// orderActorFrom resolves who is acting: token claims when present, otherwise
// a guest identified by the email query parameter. A guest must present the
// exact email the order was placed under.
func orderActorFrom(r *http.Request) services.OrderActor {
	if claims := auth.GetActorClaims(r.Context()); claims != nil {
		return services.OrderActor{
			Email:        claims.Email(),
			IsRegistered: true,
			IsAdmin:      claims.IsAdmin(),
		}
	}
	return services.OrderActor{Email: r.URL.Query().Get("email")}
}

// GetOrderHandler handles GET /api/v1/orders/{order_id}.
func GetOrderHandler(orderSvc *services.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		orderID, err := strconv.Atoi(chi.URLParam(r, "order_id"))
		if err != nil {
			common.RespondError(w, initTime, nil, "Invalid order id", http.StatusBadRequest)
			return
		}

		order, err := orderSvc.GetOrder(r.Context(), orderActorFrom(r), orderID)
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Order", order)
	}
}

// ListOrdersHandler handles GET /api/v1/orders?scope=future|past.
// Guests must pair the email with one of their order IDs
// (?email=&order_id=); registered clients are identified by their token.
func ListOrdersHandler(orderSvc *services.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actor := orderActorFrom(r)
		if actor.Email == "" {
			common.RespondError(w, initTime, nil, "Missing email", http.StatusBadRequest)
			return
		}
		if !actor.IsRegistered {
			ref, err := strconv.Atoi(r.URL.Query().Get("order_id"))
			if err != nil {
				common.RespondError(w, initTime, nil, "Missing order id", http.StatusBadRequest)
				return
			}
			actor.GuestOrderRef = ref
		}

		scope := r.URL.Query().Get("scope")
		if scope == "" {
			scope = "future"
		}
		if scope != "future" && scope != "past" {
			common.RespondError(w, initTime, nil, "Invalid scope parameter", http.StatusBadRequest)
			return
		}

		rows, err := orderSvc.ListOrders(r.Context(), actor, scope == "future", time.Now())
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Orders", rows)
	}
}

// CancelOrderHandler handles POST /api/v1/orders/{order_id}/cancel.
func CancelOrderHandler(orderSvc *services.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		orderID, err := strconv.Atoi(chi.URLParam(r, "order_id"))
		if err != nil {
			common.RespondError(w, initTime, nil, "Invalid order id", http.StatusBadRequest)
			return
		}

		result, err := orderSvc.CancelOrder(r.Context(), orderActorFrom(r), orderID, time.Now())
		if err != nil {
			common.RespondError(w, initTime, err, "", httpStatusFor(err))
			return
		}

		common.RespondSuccess(w, initTime, "Order cancelled", result)
	}
}
