package constants

type (
	FlightStatus string
	OrderStatus  string
	SeatClass    string
	ActorRole    string
	APIStatus    string
	CachePrefix  string
)

const (
	FlightActive    FlightStatus = "active"
	FlightCancelled FlightStatus = "cancelled"
	FlightDone      FlightStatus = "done"
	FlightFull      FlightStatus = "full"

	OrderActive             OrderStatus = "active"
	OrderDone               OrderStatus = "done"
	OrderSystemCancelled    OrderStatus = "systemcancellation"
	OrderCustomerCancelled  OrderStatus = "customercancellation"

	ClassEconomy  SeatClass = "Economy"
	ClassBusiness SeatClass = "Business"

	RoleAdmin  ActorRole = "admin"
	RoleClient ActorRole = "client"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixFlightDraft  CachePrefix = "FLIGHT_DRAFT_"
	CachePrefixBookingDraft CachePrefix = "BOOKING_DRAFT_"
)

// Scheduling rules. A flight longer than LongFlightMinutes needs a large
// plane and long-qualified crew.
const (
	LongFlightMinutes = 360

	LargePlanePilots     = 3
	LargePlaneAttendants = 6
	SmallPlanePilots     = 2
	SmallPlaneAttendants = 3

	FlightIDFloor = 1000
	OrderIDFloor  = 9000

	OrderCancelCutoffHours  = 36
	FlightCancelCutoffHours = 72

	CustomerCancelFeeRate = 0.05
)

// ValidFlightStatus reports whether s is one of the known flight statuses.
func ValidFlightStatus(s string) bool {
	switch FlightStatus(s) {
	case FlightActive, FlightCancelled, FlightDone, FlightFull:
		return true
	}
	return false
}

// CrewQuota returns the required pilot and attendant counts for a plane size.
func CrewQuota(large bool) (pilots, attendants int) {
	if large {
		return LargePlanePilots, LargePlaneAttendants
	}
	return SmallPlanePilots, SmallPlaneAttendants
}
