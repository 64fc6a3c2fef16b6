// Package syncer orchestrates the idempotent upload run: it loads cached
// workouts, fetches the athlete's existing Strava activities, matches each
// workout against them, and uploads only what is missing, recording results
// in the sync log.
package syncer
