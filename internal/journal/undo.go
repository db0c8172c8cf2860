package journal

import "renamer/internal/plan"

// ReversePlan returns the entries that undo a batch: newest rename first,
// each mapping the new name back to the old one.
func ReversePlan(entries []plan.Entry) []plan.Entry {
	reversed := make([]plan.Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, plan.Entry{
			Original: entries[i].Proposed,
			Proposed: entries[i].Original,
		})
	}
	return reversed
}
