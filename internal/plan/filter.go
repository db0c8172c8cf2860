package plan

import (
	"fmt"
	"regexp"
)

// CompileResult compiles expr so that it only matches at the start of a name.
func CompileResult(expr string) (*regexp.Regexp, error) {
	pattern, err := regexp.Compile(`^(?:` + expr + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile result pattern %q: %w", expr, err)
	}
	return pattern, nil
}

// FilterByResult keeps entries whose proposed name matches pattern. A nil
// pattern keeps everything. Use CompileResult to get prefix-anchored
// semantics.
func FilterByResult(entries []Entry, pattern *regexp.Regexp) ([]Entry, []Skip) {
	if pattern == nil {
		return entries, nil
	}
	kept := make([]Entry, 0, len(entries))
	var dropped []Skip
	for _, entry := range entries {
		if pattern.MatchString(entry.Proposed) {
			kept = append(kept, entry)
			continue
		}
		dropped = append(dropped, Skip{Path: entry.Original, Target: entry.Proposed, Reason: ReasonResultMismatch})
	}
	return kept, dropped
}
