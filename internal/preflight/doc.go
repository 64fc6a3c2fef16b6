// Package preflight provides readiness checks for the filesystem paths and
// credentials that stridesync depends on.
//
// The CLI "stridesync status" command renders these results as a table, and
// the sync commands run them before touching the network so a missing cookie
// file or unwritable workout directory fails fast.
package preflight
