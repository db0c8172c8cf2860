package action

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	prefixRemove  = "d:"
	prefixReplace = "r:"
	prefixInsert  = "i:"
	prefixAppend  = "a:"

	separator        = ':'
	escape           = '\\'
	escapedSeparator = `\:`
)

// groupRef matches the replacement escapes: \N, \g<name> and an escaped
// backslash.
var groupRef = regexp.MustCompile(`\\(?:\\|([0-9]{1,2})|g<([A-Za-z_][A-Za-z0-9_]*|[0-9]+)>)`)

// Parse converts a raw rule string into an Action.
func Parse(raw string) (Action, error) {
	if len(raw) < 2 {
		return nil, invalid(raw, "rule must start with d:, r:, i: or a:")
	}
	prefix, rest := raw[:2], raw[2:]

	switch prefix {
	case prefixRemove:
		pattern, err := compile(raw, rest)
		if err != nil {
			return nil, err
		}
		return Remove{Pattern: pattern}, nil

	case prefixReplace:
		fields := splitFields(rest)
		if len(fields) != 2 {
			return nil, malformed(raw, fmt.Sprintf("expected 2 ':' separated fields, got %d", len(fields)))
		}
		pattern, err := compile(raw, fields[0])
		if err != nil {
			return nil, err
		}
		return Replace{Pattern: pattern, Replacement: translateReplacement(fields[1])}, nil

	case prefixInsert:
		fields := splitFields(rest)
		switch len(fields) {
		case 1:
			return Insert{Position: 0, Text: fields[0]}, nil
		case 2:
			position, err := strconv.Atoi(strings.TrimSpace(fields[0]))
			if err != nil {
				return nil, malformed(raw, fmt.Sprintf("position %q must be a signed integer", fields[0]))
			}
			return Insert{Position: position, Text: fields[1]}, nil
		default:
			return nil, malformed(raw, fmt.Sprintf("expected at most 2 ':' separated fields, got %d", len(fields)))
		}

	case prefixAppend:
		return Append{Text: rest}, nil

	default:
		return nil, invalid(raw, fmt.Sprintf("unknown action code %q", prefix))
	}
}

// ParseAll parses every rule, stopping at the first failure.
func ParseAll(raws []string) ([]Action, error) {
	actions := make([]Action, 0, len(raws))
	for _, raw := range raws {
		a, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func compile(raw, expr string) (*regexp.Regexp, error) {
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, malformed(raw, fmt.Sprintf("compile pattern: %v", err))
	}
	return pattern, nil
}

// splitFields splits value on separators that are not preceded by the escape
// character, then unescapes the escaped separators in each field.
func splitFields(value string) []string {
	var fields []string
	start := 0
	for i := 0; i < len(value); i++ {
		if value[i] != separator {
			continue
		}
		if i > 0 && value[i-1] == escape {
			continue
		}
		fields = append(fields, value[start:i])
		start = i + 1
	}
	fields = append(fields, value[start:])

	for i, field := range fields {
		fields[i] = strings.ReplaceAll(field, escapedSeparator, string(separator))
	}
	return fields
}

// translateReplacement converts a rule replacement into regexp.Expand syntax.
// A '$' is literal text; groups are referenced only as \N or \g<name>.
func translateReplacement(replacement string) string {
	escaped := strings.ReplaceAll(replacement, "$", "$$")
	return groupRef.ReplaceAllStringFunc(escaped, func(ref string) string {
		if ref == `\\` {
			return `\`
		}
		groups := groupRef.FindStringSubmatch(ref)
		name := groups[1]
		if name == "" {
			name = groups[2]
		}
		return "${" + name + "}"
	})
}
