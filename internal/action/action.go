package action

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies an action variant.
type Kind int

const (
	KindRemove Kind = iota
	KindReplace
	KindInsert
	KindAppend
)

func (k Kind) String() string {
	switch k {
	case KindRemove:
		return "remove"
	case KindReplace:
		return "replace"
	case KindInsert:
		return "insert"
	case KindAppend:
		return "append"
	default:
		return "unknown"
	}
}

// Action is one parsed rename rule. The set of implementations is closed:
// Remove, Replace, Insert and Append.
type Action interface {
	Kind() Kind
	// String renders the action back into rule syntax.
	String() string
	sealed()
}

// Remove deletes every match of Pattern.
type Remove struct {
	Pattern *regexp.Regexp
}

// Replace substitutes every match of Pattern with Replacement. Replacement
// is in regexp.Expand syntax; Parse produces it from \N and \g<name> group
// references and keeps '$' literal.
type Replace struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Insert splices Text into the name at rune offset Position.
type Insert struct {
	Position int
	Text     string
}

// Append places Text between the stem and the extension.
type Append struct {
	Text string
}

func (Remove) Kind() Kind  { return KindRemove }
func (Replace) Kind() Kind { return KindReplace }
func (Insert) Kind() Kind  { return KindInsert }
func (Append) Kind() Kind  { return KindAppend }

func (Remove) sealed()  {}
func (Replace) sealed() {}
func (Insert) sealed()  {}
func (Append) sealed()  {}

func (a Remove) String() string {
	return prefixRemove + a.Pattern.String()
}

func (a Replace) String() string {
	return prefixReplace + escapeField(a.Pattern.String()) + string(separator) + escapeField(a.Replacement)
}

func (a Insert) String() string {
	return prefixInsert + strconv.Itoa(a.Position) + string(separator) + escapeField(a.Text)
}

func (a Append) String() string {
	return prefixAppend + a.Text
}

func escapeField(value string) string {
	return strings.ReplaceAll(value, string(separator), escapedSeparator)
}
