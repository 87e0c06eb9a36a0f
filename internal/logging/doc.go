// Package logging assembles structured slog loggers and formatting helpers used
// across cr4te.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes helpers so pipeline code tags log lines with the run,
// creator, and project being processed. Warnings go through WarnWithContext so
// every recoverable condition names its event type, a hint, and its impact.
// The package also provides a no-op logger for tests.
package logging
