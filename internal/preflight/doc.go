// Package preflight provides readiness checks for the filesystem paths a
// rename run depends on.
//
// The doctor command reports these next to the external binary checks. A
// failed check does not block a dry run; it predicts where an applied
// batch or the journal would fail.
package preflight
