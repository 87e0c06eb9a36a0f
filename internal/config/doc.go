// Package config loads, normalizes, and validates cr4te configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and applies CR4TE_* environment overrides on
// top of the file. The MediaRules section is the rule set the metadata
// pipeline consumes; the remaining sections only shape the CLI and logging.
//
// Always obtain settings through this package so downstream code receives
// trimmed values, canonical log formats, and clear validation errors.
package config
