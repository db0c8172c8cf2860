// Package plan turns parsed actions and a candidate file list into an ordered,
// conflict-free rename plan.
//
// Build folds every action over each file name, substitutes keyword tokens
// using the original path, sorts the candidates by original path and then
// drops targets that are empty or path aliases, already exist on disk, or
// repeat an earlier target in the same batch. FilterByResult narrows a plan to
// targets matching a prefix-anchored pattern.
//
// Every dropped candidate is returned as a Skip so callers can report why;
// nothing in this package renames files.
package plan
