// Package workout models locally exported iFit sessions and parses the TCX
// files they are cached in.
package workout
