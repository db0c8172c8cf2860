// Package main hosts the renamer CLI entrypoint and command graph.
//
// The root command discovers files, builds a rename plan from -a rules or a
// rule file, and either prints the plan or applies it. Subcommands cover the
// supporting chores: listing keywords, checking external binaries, browsing
// and undoing journaled batches, and scaffolding configuration.
//
// Keep this package lean: the engine lives in internal/action, internal/plan
// and internal/apply; commands here only resolve flags and config and wire
// those packages together.
package main
