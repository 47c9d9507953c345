package entities

import (
	"time"
)

// Order belongs to exactly one of a registered client or a guest; the two
// email columns are mutually exclusive.
type Order struct {
	OrderID     int       `db:"order_id"`
	FlightID    int       `db:"flight_id"`
	ClientEmail *string   `db:"client_email"`
	GuestEmail  *string   `db:"guest_email"`
	Status      string    `db:"status"`
	FinalTotal  float64   `db:"final_total"`
	Quantity    int       `db:"quantity"`
	CreatedAt   time.Time `db:"created_at"`
}

// OwnerEmail returns whichever owner column is set.
func (o *Order) OwnerEmail() string {
	if o.ClientEmail != nil && *o.ClientEmail != "" {
		return *o.ClientEmail
	}
	if o.GuestEmail != nil {
		return *o.GuestEmail
	}
	return ""
}

type Guest struct {
	EmailAddress string `db:"email_address"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
}
