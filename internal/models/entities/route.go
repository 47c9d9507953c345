package entities

// Route is directional: A→B existing does not imply B→A exists.
// Duration is the schedule's raw "HH:MM:SS" (or "HH:MM") value.
type Route struct {
	OriginID      int    `db:"origin_airport"`
	DestinationID int    `db:"destination_airport"`
	Duration      string `db:"duration"`
}
