package matching

import (
	"math"
	"time"

	"stridesync/internal/services/strava"
	"stridesync/internal/workout"
)

const (
	// maxStartDelta and maxDurationDelta bound the fuzzy window: started
	// within 10 minutes of each other and duration no more than 30s apart.
	// Both comparisons are strict.
	maxStartDelta    = 10 * time.Minute
	maxDurationDelta = 30.0 // seconds

	// timeCutoff bounds how far the expanding search walks from the located
	// index before a direction gives up.
	timeCutoff = 24 * time.Hour

	// minSearchDistance guarantees at least one candidate is inspected on
	// each side of the located index, compensating for the one-slot sort
	// shift second-truncation can introduce.
	minSearchDistance = 1
)

// IsSimilar reports whether the workout and the activity plausibly record the
// same physical session. The activity's elapsed time (not moving time) is
// compared against the workout duration.
func IsSimilar(w workout.Workout, a strava.Activity) bool {
	return startDelta(w, a) < maxStartDelta && durationDelta(w, a) < maxDurationDelta
}

func startDelta(w workout.Workout, a strava.Activity) time.Duration {
	d := a.StartDate.Sub(w.StartedAt)
	if d < 0 {
		d = -d
	}
	return d
}

func durationDelta(w workout.Workout, a strava.Activity) float64 {
	return math.Abs(float64(a.ElapsedTime) - w.Duration)
}
