// Package main hosts the cr4te CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration, applies per-run flag
// overrides to the media rules, runs preflight checks, and hands off to the
// pipeline package. Output is either a go-pretty table for people or indented
// JSON (--json) for scripts.
//
// Keep this package lean: pipeline behavior belongs in internal packages and
// is only surfaced here through commands and flags.
package main
