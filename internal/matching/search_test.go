package matching

import (
	"testing"
	"time"

	"stridesync/internal/services/strava"
)

func TestSearchNearFindsRightNeighbor(t *testing.T) {
	start := time.Date(2020, 6, 1, 6, 36, 58, 0, time.UTC)
	w := testWorkout(start, 2613)
	// The activity sharing the workout's start has the wrong duration; the
	// real match sorts one slot later.
	activities := []strava.Activity{
		testActivity(1, start, 1200),
		testActivity(2, start.Add(30*time.Second), 2613),
	}

	matches, err := FindSimilarActivities(w, activities)
	if err != nil {
		t.Fatalf("FindSimilarActivities: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != 2 {
		t.Fatalf("expected right neighbor 2, got %+v", matches)
	}
}

func TestSearchNearWorkoutBeforeAllActivities(t *testing.T) {
	start := time.Date(2020, 6, 1, 6, 36, 58, 517_000_000, time.UTC)
	w := testWorkout(start, 2613)
	// Both activities sort after the workout; the locator returns index 0.
	activities := []strava.Activity{
		testActivity(1, start.Add(time.Second), 2613),
		testActivity(2, start.Add(48*time.Hour), 2613),
	}

	matches, err := FindSimilarActivities(w, activities)
	if err != nil {
		t.Fatalf("FindSimilarActivities: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != 1 {
		t.Fatalf("expected activity 1, got %+v", matches)
	}
}

func TestSearchNearStopsAtTimeCutoff(t *testing.T) {
	start := time.Date(2020, 6, 1, 6, 36, 58, 0, time.UTC)
	w := testWorkout(start, 2613)
	// A week of daily sessions; only the middle one is in range. The search
	// must terminate without walking the whole sequence once candidates are
	// a day or more away.
	var activities []strava.Activity
	for day := -3; day <= 3; day++ {
		activities = append(activities, testActivity(int64(day+4), start.Add(time.Duration(day)*24*time.Hour), 2613))
	}

	var inspected int
	matches, err := FindSimilarActivities(w, activities, WithTrace(func(ev TraceEvent) {
		if !ev.Window {
			inspected++
		}
	}))
	if err != nil {
		t.Fatalf("FindSimilarActivities: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != 4 {
		t.Fatalf("expected only the same-day activity, got %+v", matches)
	}
	if inspected >= len(activities) {
		t.Fatalf("expected cutoff to bound the search, inspected %d of %d", inspected, len(activities))
	}
}

func TestLocateStartLeftmostInsertion(t *testing.T) {
	base := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	times := []time.Time{
		base,
		base.Add(time.Hour),
		base.Add(time.Hour), // duplicate start
		base.Add(2 * time.Hour),
	}

	cases := []struct {
		t    time.Time
		want int
	}{
		{base.Add(-time.Minute), 0},
		{base, 0},
		{base.Add(time.Hour), 1}, // leftmost of the duplicates
		{base.Add(90 * time.Minute), 3},
		{base.Add(3 * time.Hour), 4}, // past the end
	}
	for _, tc := range cases {
		if got := locateStart(times, tc.t); got != tc.want {
			t.Errorf("locateStart(%v) = %d, want %d", tc.t, got, tc.want)
		}
	}
}
