// Package config loads, normalizes, and validates renamer configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), and
// reads TOML files from --config, ~/.config/renamer/config.toml, or
// ./renamer.toml in that order. Command-line flags override the loaded values
// in cmd/renamer; everything else should obtain settings through this package
// so downstream code receives sanitized paths and canonical enum values.
package config
