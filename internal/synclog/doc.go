// Package synclog records which workouts have been uploaded to Strava in a
// local SQLite database, so repeated runs can report history without
// re-querying the API.
package synclog
