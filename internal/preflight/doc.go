// Package preflight provides readiness checks for the filesystem paths a
// build depends on.
//
// The CLI runs RunAll before build-json and clean-json. A failed check stops
// the command before any creator is scanned, so a typo in input_dir never
// produces a half-finished run.
package preflight
