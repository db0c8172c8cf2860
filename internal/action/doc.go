// Package action parses rename rules and applies them to file names.
//
// A rule is a short CLI string with a two-character prefix selecting the
// variant:
//
//	d:regex           remove every match of regex
//	r:regex:repl      replace every match of regex with repl
//	i:[pos:]text      insert text at rune offset pos (negative counts from the end)
//	a:text            add text before the last extension separator
//
// The ':' field separator can be embedded in a field as '\:'. Parse validates
// the whole payload up front (regexes are compiled, positions converted) so
// Apply never fails; it only reports whether the name changed.
//
// Actions are immutable values and never touch the filesystem.
package action
