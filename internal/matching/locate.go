package matching

import (
	"sort"
	"time"
)

// locateStart returns the leftmost index at which t could be inserted into
// times while preserving order. times must be non-decreasing. The result may
// equal len(times); callers clamp before indexing.
func locateStart(times []time.Time, t time.Time) int {
	return sort.Search(len(times), func(i int) bool {
		return !times[i].Before(t)
	})
}
