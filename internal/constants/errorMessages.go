package constants

const (
	MsgRouteNotFound       = "No route exists for this origin/destination pair"
	MsgSameAirports        = "Origin and destination must be different"
	MsgPlaneUnavailable    = "Selected plane is no longer available in this time window"
	MsgPilotUnavailable    = "One or more pilots are no longer available"
	MsgAttUnavailable      = "One or more attendants are no longer available"
	MsgLongNeedsLarge      = "Long flights require a large plane"
	MsgBusinessPriceNeeded = "Business price is required for large planes"
	MsgSeatsTaken          = "One or more seats were taken while you were booking"
	MsgOrderCutoff         = "Cancellation not available less than 36 hours before departure"
	MsgFlightCutoff        = "Cancellation not available less than 72 hours before departure"
	MsgDraftMissing        = "No draft in progress"
	MsgAccessDenied        = "Access denied"
)
