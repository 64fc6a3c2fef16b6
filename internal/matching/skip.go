package matching

import (
	"slices"
	"time"

	"stridesync/internal/workout"
)

// minWorkoutDuration filters out false starts and aborted sessions before any
// matching work is attempted.
const minWorkoutDuration = 3 * time.Minute

// ShouldSkip reports whether a workout is excluded from syncing outright:
// too short to be a real session, or explicitly listed by the user.
func ShouldSkip(w workout.Workout, skip []string) bool {
	if w.Duration < minWorkoutDuration.Seconds() {
		return true
	}
	return slices.Contains(skip, w.ID)
}
