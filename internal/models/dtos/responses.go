package dtos

import (
	"time"

	"skyharbor/dispatch/internal/models/entities"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// AvailabilitySet is the soft-check result the admin picks resources from.
type AvailabilitySet struct {
	Window     entities.Window            `json:"window"`
	IsLong     bool                       `json:"is_long"`
	Planes     []entities.PlaneCandidate  `json:"planes"`
	Pilots     []entities.WorkerCandidate `json:"pilots"`
	Attendants []entities.WorkerCandidate `json:"attendants"`
}

type FlightCommitted struct {
	FlightID int `json:"flight_id"`
}

type OrderCommitted struct {
	OrderID    int     `json:"order_id"`
	FinalTotal float64 `json:"final_total"`
}

// CascadeSummary reports what a flight cancellation touched.
type CascadeSummary struct {
	FlightID        int `json:"flight_id"`
	OrdersCancelled int `json:"orders_cancelled"`
	SeatsReleased   int `json:"seats_released"`
}

type CancelOrderResult struct {
	OrderID    int     `json:"order_id"`
	FinalTotal float64 `json:"final_total"` // the frozen cancellation fee
}

// SeatMap lists every seat of the requested class with current occupancy.
type SeatMap struct {
	FlightID int        `json:"flight_id"`
	Class    string     `json:"class"`
	Seats    []SeatInfo `json:"seats"`
}

type SeatInfo struct {
	SeatID   string `json:"seat_id"`
	RowNum   int    `json:"row_num"`
	Column   string `json:"column"`
	Class    string `json:"class"`
	Occupied bool   `json:"occupied"`
}

type BookingReview struct {
	Draft entities.BookingDraft `json:"draft"`
	Total float64               `json:"total"`
}

// FlightRow is one searchable flight with joined airport names.
type FlightRow struct {
	FlightID      int       `db:"flight_id" json:"flight_id"`
	PlaneID       int       `db:"plane_id" json:"plane_id"`
	DepartureAt   time.Time `db:"departure_at" json:"departure_at"`
	EconomyPrice  float64   `db:"economy_price" json:"economy_price"`
	BusinessPrice float64   `db:"business_price" json:"business_price"`
	Status        string    `db:"status" json:"status"`
	OriginName    string    `db:"origin_name" json:"origin_name"`
	OriginCity    string    `db:"origin_city" json:"origin_city"`
	DestName      string    `db:"dest_name" json:"dest_name"`
	DestCity      string    `db:"dest_city" json:"dest_city"`
	HasBusiness   bool      `db:"has_business" json:"has_business"`
}

// OrderRow is one order in the owner's history views, with the display total
// already resolved per status (full refund, 5% fee, or original).
type OrderRow struct {
	OrderID      int       `db:"order_id" json:"order_id"`
	FlightID     int       `db:"flight_id" json:"flight_id"`
	Status       string    `db:"status" json:"status"`
	Quantity     int       `db:"quantity" json:"quantity"`
	DepartureAt  time.Time `db:"departure_at" json:"departure_at"`
	OriginName   string    `db:"origin_name" json:"origin_name"`
	DestName     string    `db:"dest_name" json:"dest_name"`
	TicketClass  string    `db:"-" json:"ticket_class"`
	DisplayTotal float64   `db:"-" json:"display_total"`
	CanCancel    bool      `db:"-" json:"can_cancel"`
}
