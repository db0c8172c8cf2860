// Package logging assembles structured slog loggers and formatting helpers used
// across renamer packages.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing. Diagnostics go to stderr by default so the dry-run report
// on stdout stays machine readable. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
