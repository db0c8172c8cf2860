// Package keyword substitutes metadata-derived values for trigger tokens in
// proposed file names.
//
// A Registry maps tokens such as "%res" to Resolvers. Registry.Replace scans a
// candidate name for every registered token and resolves each one present
// exactly once, probing the original file rather than the candidate name.
// When any resolver cannot produce a value the whole substitution fails with
// ErrNotApplicable and the caller drops the rename; tokens are never left in
// place.
//
// RegisterMedia installs the bundled ffprobe-backed resolvers.
package keyword
