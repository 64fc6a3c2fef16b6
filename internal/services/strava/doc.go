// Package strava wraps the parts of the Strava v3 API stridesync needs:
// athlete lookup, paged activity listing, TCX uploads, and the OAuth token
// lifecycle (browser authorization plus refresh-token renewal).
package strava
