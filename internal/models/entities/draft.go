package entities

import "time"

// DraftStep names the states of the two multi-step construction flows. Drafts
// live only in the cache layer; nothing is durable until the commit step.
type DraftStep string

const (
	StepRoute     DraftStep = "route"     // flight draft: route+window pending
	StepResources DraftStep = "resources" // flight draft: plane/crew pending
	StepSeats     DraftStep = "seats"     // booking draft: seat picks pending
	StepReview    DraftStep = "review"    // ready to commit
)

// FlightDraft is one admin's in-progress flight creation. It is a cache of
// intent, never a source of truth: availability is re-checked at every
// transition and once more inside the commit transaction.
type FlightDraft struct {
	AdminID       int       `json:"admin_id"`
	Step          DraftStep `json:"step"`
	OriginID      int       `json:"origin_id"`
	DestinationID int       `json:"destination_id"`
	DepartureAt   time.Time `json:"departure_at"`
	DurationMin   int       `json:"duration_min"`
	IsLong        bool      `json:"is_long"`
	Window        Window    `json:"window"`

	PlaneID       int     `json:"plane_id,omitempty"`
	PlaneSize     string  `json:"plane_size,omitempty"`
	EconomyPrice  float64 `json:"economy_price,omitempty"`
	BusinessPrice float64 `json:"business_price,omitempty"`
	PilotIDs      []int   `json:"pilot_ids,omitempty"`
	AttendantIDs  []int   `json:"attendant_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// BookingDraft is one buyer's in-progress order.
type BookingDraft struct {
	DraftID   string    `json:"draft_id"`
	Step      DraftStep `json:"step"`
	FlightID  int       `json:"flight_id"`
	PlaneID   int       `json:"plane_id"`
	Quantity  int       `json:"quantity"`
	Class     string    `json:"class"`
	UnitPrice float64   `json:"unit_price"`

	IsGuest   bool   `json:"is_guest"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Seats []SeatRef `json:"seats,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
