package api

import (
	"errors"
	"net/http"

	"skyharbor/dispatch/internal/services"
)

// httpStatusFor maps the service error taxonomy onto HTTP status codes.
// Conflict-class errors (seat races, resource races) are 409 so clients can
// distinguish "re-pick and retry" from plain bad requests.
func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrQuotaMismatch),
		errors.Is(err, services.ErrIncompatiblePlaneSize),
		errors.Is(err, services.ErrRouteNotFound):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, services.ErrResourceUnavailable),
		errors.Is(err, services.ErrBookingConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrCancellationDenied):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
