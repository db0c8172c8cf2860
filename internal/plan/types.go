package plan

import "fmt"

// Entry is one proposed rename.
type Entry struct {
	Original string `json:"original"`
	Proposed string `json:"proposed"`
}

func (e Entry) String() string {
	return fmt.Sprintf("%s -> %s", e.Original, e.Proposed)
}

// Reason classifies why a candidate was dropped.
type Reason string

const (
	// ReasonNoChange means an action left the name unchanged outside partial mode.
	ReasonNoChange Reason = "no-change"
	// ReasonKeywordUnavailable means a keyword resolver could not produce a value.
	ReasonKeywordUnavailable Reason = "keyword-unavailable"
	// ReasonInvalidTarget means the new name is empty or a path alias.
	ReasonInvalidTarget Reason = "invalid-target"
	// ReasonTargetExists means a filesystem entry already occupies the new name.
	ReasonTargetExists Reason = "target-exists"
	// ReasonDuplicateTarget means an earlier entry in the batch claims the same new name.
	ReasonDuplicateTarget Reason = "duplicate-target"
	// ReasonResultMismatch means the new name does not match the result pattern.
	ReasonResultMismatch Reason = "result-mismatch"
)

// Skip describes a candidate dropped from the plan.
type Skip struct {
	Path   string `json:"path"`
	Target string `json:"target,omitempty"`
	Reason Reason `json:"reason"`
	Err    error  `json:"-"`
}

func (s Skip) String() string {
	if s.Target == "" {
		return fmt.Sprintf("%s: %s", s.Path, s.Reason)
	}
	return fmt.Sprintf("%s -> %s: %s", s.Path, s.Target, s.Reason)
}

// Result is the outcome of Build.
type Result struct {
	Entries []Entry
	Skipped []Skip
}
