// Package apply turns a validated rename plan into output or filesystem
// changes.
//
// DryRun renders the plan as plain lines, a table, a unified diff of the
// before/after listing, or JSON. Apply performs the renames strictly in plan
// order using a rename that refuses to replace an existing target, stops at
// the first failure without rolling back, and hands every completed rename
// to an optional Recorder so the batch can be undone later.
package apply
