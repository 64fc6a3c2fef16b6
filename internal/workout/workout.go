package workout

import "time"

// Workout is a locally recorded iFit session used as the matching query.
// Values are immutable once constructed.
type Workout struct {
	ID        string
	StartedAt time.Time
	Duration  float64 // seconds
	Notes     string
	TCXPath   string
}
