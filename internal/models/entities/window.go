package entities

import "time"

// Window is a half-open time interval [Start, End) representing a resource's
// commitment to one flight.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewWindow builds a window from a departure time and a duration in minutes.
func NewWindow(departure time.Time, durationMin int) Window {
	return Window{
		Start: departure,
		End:   departure.Add(time.Duration(durationMin) * time.Minute),
	}
}

// Overlaps reports whether two half-open windows intersect. A commitment
// ending exactly when another begins is not a conflict.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}
