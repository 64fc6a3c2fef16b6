package matching

import "stridesync/internal/services/strava"

// Direction identifies which side of the located index a candidate sits on.
type Direction int

const (
	// DirectionAt marks window-snapshot events at or around the located index.
	DirectionAt Direction = iota
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "at"
	}
}

// TraceEvent describes one candidate the matcher looked at. Window events are
// emitted once after locating the insertion index; inspect events are emitted
// for every candidate the expanding search evaluates.
type TraceEvent struct {
	Window    bool
	Direction Direction
	Index     int
	Located   int
	Activity  strava.Activity
	Matched   bool
}

// TraceFunc observes matcher candidates. Tracing is diagnostic only and can
// never change the match result.
type TraceFunc func(TraceEvent)

type options struct {
	trace TraceFunc
}

// Option customises a matching run.
type Option func(*options)

// WithTrace registers an observer for the candidates the search inspects.
func WithTrace(fn TraceFunc) Option {
	return func(o *options) {
		o.trace = fn
	}
}

// windowRadius controls how many neighbors each side of the located index the
// window snapshot covers.
const windowRadius = 2

func emitWindow(trace TraceFunc, activities []strava.Activity, located int) {
	start := located - windowRadius
	if start < 0 {
		start = 0
	}
	end := located + 1 + windowRadius
	if end > len(activities) {
		end = len(activities)
	}
	for i := start; i < end; i++ {
		direction := DirectionAt
		if i < located {
			direction = DirectionLeft
		} else if i > located {
			direction = DirectionRight
		}
		trace(TraceEvent{
			Window:    true,
			Direction: direction,
			Index:     i,
			Located:   located,
			Activity:  activities[i],
		})
	}
}
