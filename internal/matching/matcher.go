package matching

import (
	"errors"
	"fmt"
	"time"

	"stridesync/internal/services/strava"
	"stridesync/internal/workout"
)

var (
	// ErrNoActivities is returned when the remote activity list is empty.
	// The caller decides whether that means "nothing to match" (a first-ever
	// sync) or a failed fetch that should abort the run.
	ErrNoActivities = errors.New("matching: no remote activities to search")

	// ErrUnsortedActivities is returned when the activity list is not
	// ascending by start time. It signals a caller bug, not a transient
	// condition; the matcher never sorts or retries.
	ErrUnsortedActivities = errors.New("matching: remote activities are not sorted by start time")
)

// FindSimilarActivities returns the activities that plausibly record the same
// physical session as w, ascending by start time. Multiple results indicate
// duplicates already present in the remote log and are returned as-is.
//
// activities must be non-empty and ascending by start time; both
// preconditions are checked and violations are returned as typed errors.
func FindSimilarActivities(w workout.Workout, activities []strava.Activity, opts ...Option) ([]strava.Activity, error) {
	if len(activities) == 0 {
		return nil, ErrNoActivities
	}

	startTimes := make([]time.Time, len(activities))
	for i, a := range activities {
		startTimes[i] = a.StartDate
		if i > 0 && startTimes[i].Before(startTimes[i-1]) {
			return nil, fmt.Errorf("%w: activity %d starts before activity %d", ErrUnsortedActivities, i, i-1)
		}
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	index := locateStart(startTimes, w.StartedAt)
	if o.trace != nil {
		emitWindow(o.trace, activities, index)
	}
	return searchNear(w, activities, index, o.trace), nil
}
