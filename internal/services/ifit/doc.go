// Package ifit downloads workout TCX exports from ifit.com.
//
// iFit has no public API, so the client authenticates by replaying browser
// session cookies loaded from a Mozilla-format cookies.txt file. Workout IDs
// are scraped from the paginated workout history, and each workout is fetched
// through the TCX export endpoint.
package ifit
