// Package main hosts the stridesync CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the full sync lifecycle: downloading
// workout TCX exports from ifit.com, authorizing with Strava, idempotently
// uploading missing workouts, and inspecting configuration and sync history.
// It centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
package main
