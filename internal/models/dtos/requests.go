package dtos

// FlightDraftStartReq begins a flight draft: route plus departure date/time.
// Departure arrives as separate date and time fields the way the booking desk
// submits them; time accepts "HH:MM" or "HH:MM:SS".
type FlightDraftStartReq struct {
	OriginID      int    `json:"origin_id"`
	DestinationID int    `json:"destination_id"`
	DepartureDate string `json:"departure_date"`
	DepartureTime string `json:"departure_time"`
}

// FlightDraftResourcesReq carries the admin's plane, crew and price picks.
type FlightDraftResourcesReq struct {
	PlaneID       int     `json:"plane_id"`
	EconomyPrice  float64 `json:"economy_price"`
	BusinessPrice float64 `json:"business_price"`
	PilotIDs      []int   `json:"pilot_ids"`
	AttendantIDs  []int   `json:"attendant_ids"`
}

type BookingStartReq struct {
	FlightID  int    `json:"flight_id"`
	Class     string `json:"class"`
	Quantity  int    `json:"quantity"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type SeatSelectionReq struct {
	DraftID string   `json:"draft_id"`
	SeatIDs []string `json:"seat_ids"`
}

type AddStaffReq struct {
	StaffType   string `json:"staff_type"` // pilot | attendant
	WorkerID    int    `json:"worker_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	Street      string `json:"street"`
	HouseNumber int    `json:"house_number"`
	StartDate   string `json:"start_date"`
	IsQualified bool   `json:"is_qualified"`
}
