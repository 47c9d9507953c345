package entities

import (
	"time"

	"skyharbor/dispatch/internal/constants"
)

type Flight struct {
	FlightID      int       `db:"flight_id"`
	PlaneID       int       `db:"plane_id"`
	OriginID      int       `db:"origin_airport"`
	DestinationID int       `db:"destination_airport"`
	DepartureAt   time.Time `db:"departure_at"`
	EconomyPrice  float64   `db:"economy_price"`
	BusinessPrice float64   `db:"business_price"`
	Status        string    `db:"status"`
}

// Cancellable reports whether the flight is in a status an admin may cancel.
func (f *Flight) Cancellable() bool {
	s := constants.FlightStatus(f.Status)
	return s == constants.FlightActive || s == constants.FlightFull
}

// HoursUntilDeparture measures the remaining time before departure from now.
func (f *Flight) HoursUntilDeparture(now time.Time) float64 {
	return f.DepartureAt.Sub(now).Hours()
}

// ResourceCommitment is one row of the generic availability shape shared by
// planes, pilots and attendants: a resource tied to a flight's time window.
// Duration carries the route's raw "HH:MM:SS" value and is resolved to a
// Window by the availability layer.
type ResourceCommitment struct {
	ResourceID  int       `db:"resource_id"`
	DepartureAt time.Time `db:"departure_at"`
	Duration    string    `db:"duration"`
}
