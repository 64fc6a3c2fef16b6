// Package matching decides whether a locally recorded workout already has a
// counterpart in the Strava activity log.
//
// iFit records start times with millisecond precision while Strava truncates
// to whole seconds, so exact-key comparisons are unreliable. The matcher
// instead locates where a workout's start time would sort in the time-ordered
// activity list and expands outward in both directions, applying a fuzzy
// start-time/duration predicate to each candidate.
package matching
