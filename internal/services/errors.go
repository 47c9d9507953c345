package services

import "errors"

// Scheduling and booking error taxonomy. All are recoverable: handlers map
// them to 4xx responses and the actor retries from the appropriate step.
var (
	// ErrRouteNotFound: no route exists for the ordered origin/destination pair.
	ErrRouteNotFound = errors.New("route not found")

	// ErrIncompatiblePlaneSize: a long flight was given a small plane.
	ErrIncompatiblePlaneSize = errors.New("long flight requires a large plane")

	// ErrQuotaMismatch: crew selection does not match the plane-size quota.
	ErrQuotaMismatch = errors.New("crew selection does not match quota")

	// ErrResourceUnavailable: a plane or crew member has an overlapping
	// commitment, detected at soft- or hard-check.
	ErrResourceUnavailable = errors.New("resource no longer available in this window")

	// ErrBookingConflict: a seat was taken between selection and confirmation.
	ErrBookingConflict = errors.New("seat taken while booking")

	// ErrCancellationDenied: outside the allowed time window or wrong status.
	ErrCancellationDenied = errors.New("cancellation not allowed")

	// ErrNotFound: the referenced flight/order/draft does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied: the actor does not own the referenced order.
	ErrAccessDenied = errors.New("access denied")

	// ErrValidation: malformed or missing request fields.
	ErrValidation = errors.New("invalid input")
)
