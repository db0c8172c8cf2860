package action

import (
	"strings"
	"unicode/utf8"
)

// extensionSeparator marks the start of a file extension for Append.
const extensionSeparator = "."

// Apply runs a single action against name. The boolean is false when the
// action left the name unchanged and partial is false; callers must then
// abandon the whole rule chain for that name. Append always reports a change.
func Apply(a Action, name string, partial bool) (string, bool) {
	var result string
	switch a := a.(type) {
	case Remove:
		result = a.Pattern.ReplaceAllString(name, "")
	case Replace:
		result = a.Pattern.ReplaceAllString(name, a.Replacement)
	case Insert:
		result = insertAt(name, a.Position, a.Text)
	case Append:
		return appendText(name, a.Text), true
	default:
		return "", false
	}

	if !partial && result == name {
		return "", false
	}
	return result, true
}

// insertAt splices text into name using half-open slice semantics over runes.
// Offsets whose magnitude reaches the name length leave the name untouched.
// An invalid UTF-8 byte counts as one rune and is kept as is.
func insertAt(name string, position int, text string) string {
	length := utf8.RuneCountInString(name)
	if position > 0 && position >= length {
		return name
	}
	if position <= 0 && -position >= length {
		return name
	}

	offset := position
	if offset < 0 {
		offset += length
	}

	idx := 0
	for range offset {
		_, size := utf8.DecodeRuneInString(name[idx:])
		idx += size
	}
	return name[:idx] + text + name[idx:]
}

func appendText(name, text string) string {
	idx := strings.LastIndex(name, extensionSeparator)
	if idx < 0 {
		return name + text
	}
	return name[:idx] + text + name[idx:]
}
