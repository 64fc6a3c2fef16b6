package matching

import (
	"stridesync/internal/services/strava"
	"stridesync/internal/workout"
)

// searchNear expands outward from index in both directions, applying the
// fuzzy predicate to each candidate. The locator only gives an approximate
// position: because Strava truncates start times to whole seconds, the true
// match can sort one slot to either side, so both directions always inspect
// at least one candidate regardless of the time cutoff.
//
// The distance counter is shared between the directions and incremented once
// per round, not per side. One direction stopping early therefore does not
// extend the other's minimum-distance guarantee; this matches the tie-break
// behaviour callers depend on.
func searchNear(w workout.Workout, activities []strava.Activity, index int, trace TraceFunc) []strava.Activity {
	// The locator may return an index off either end when the workout sorts
	// before or after every activity.
	if index < 0 {
		index = 0
	}
	if index >= len(activities) {
		index = len(activities) - 1
	}

	leftIndex := index
	rightIndex := index + 1
	distance := 0

	shouldContinue := func(i int) bool {
		if i < 0 || i >= len(activities) {
			return false
		}
		return distance < minSearchDistance || startDelta(w, activities[i]) < timeCutoff
	}

	inspect := func(i int, direction Direction) bool {
		matched := IsSimilar(w, activities[i])
		if trace != nil {
			trace(TraceEvent{
				Direction: direction,
				Index:     i,
				Located:   index,
				Activity:  activities[i],
				Matched:   matched,
			})
		}
		return matched
	}

	// Left matches are collected in traversal order (descending start time)
	// and reversed once below, keeping the result chronological without
	// repeated prepends.
	var leftMatches, rightMatches []strava.Activity

	continueLeft := true
	continueRight := true
	for continueLeft || continueRight {
		continueLeft = shouldContinue(leftIndex)
		if continueLeft {
			if inspect(leftIndex, DirectionLeft) {
				leftMatches = append(leftMatches, activities[leftIndex])
			}
			leftIndex--
		}
		continueRight = shouldContinue(rightIndex)
		if continueRight {
			if inspect(rightIndex, DirectionRight) {
				rightMatches = append(rightMatches, activities[rightIndex])
			}
			rightIndex++
		}
		distance++
	}

	if len(leftMatches) == 0 && len(rightMatches) == 0 {
		return nil
	}
	matches := make([]strava.Activity, 0, len(leftMatches)+len(rightMatches))
	for i := len(leftMatches) - 1; i >= 0; i-- {
		matches = append(matches, leftMatches[i])
	}
	return append(matches, rightMatches...)
}
