package apply

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	"renamer/internal/config"
	"renamer/internal/plan"
)

const diffContext = 3

// Render formats entries as a dry-run report. Plain and diff reports of an
// empty plan are empty strings.
func Render(format string, entries []plan.Entry, colorize bool) (string, error) {
	switch format {
	case config.OutputPlain, "":
		return renderPlain(entries, colorize), nil
	case config.OutputTable:
		return renderEntryTable(entries), nil
	case config.OutputDiff:
		return renderDiff(entries, colorize)
	case config.OutputJSON:
		return renderJSON(entries)
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func renderLine(entry plan.Entry, colorize bool) string {
	if !colorize {
		return entry.String()
	}
	return ansiRed + entry.Original + ansiReset + " -> " + ansiGreen + entry.Proposed + ansiReset
}

func renderPlain(entries []plan.Entry, colorize bool) string {
	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(renderLine(entry, colorize))
		b.WriteByte('\n')
	}
	return b.String()
}

func renderEntryTable(entries []plan.Entry) string {
	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, []string{strconv.Itoa(i + 1), entry.Original, entry.Proposed})
	}
	return RenderTable(
		[]string{"#", "Original", "Proposed"},
		rows,
		[]ColumnAlignment{AlignRight, AlignLeft, AlignLeft},
	) + "\n"
}

// renderDiff produces a unified diff between the listing of original names
// and the listing of proposed names, one line per entry.
func renderDiff(entries []plan.Entry, colorize bool) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}
	before := make([]string, 0, len(entries))
	after := make([]string, 0, len(entries))
	for _, entry := range entries {
		before = append(before, entry.Original+"\n")
		after = append(after, entry.Proposed+"\n")
	}
	body, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        before,
		B:        after,
		FromFile: "original",
		ToFile:   "renamed",
		Context:  diffContext,
	})
	if err != nil {
		return "", fmt.Errorf("render diff: %w", err)
	}
	if !colorize {
		return body, nil
	}

	lines := strings.SplitAfter(body, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		case strings.HasPrefix(line, "-"):
			lines[i] = ansiRed + strings.TrimSuffix(line, "\n") + ansiReset + "\n"
		case strings.HasPrefix(line, "+"):
			lines[i] = ansiGreen + strings.TrimSuffix(line, "\n") + ansiReset + "\n"
		case strings.HasPrefix(line, "@@"):
			lines[i] = ansiBlue + strings.TrimSuffix(line, "\n") + ansiReset + "\n"
		}
	}
	return strings.Join(lines, ""), nil
}

type jsonReport struct {
	Count   int          `json:"count"`
	Entries []plan.Entry `json:"entries"`
}

func renderJSON(entries []plan.Entry) (string, error) {
	if entries == nil {
		entries = []plan.Entry{}
	}
	data, err := json.MarshalIndent(jsonReport{Count: len(entries), Entries: entries}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return string(data) + "\n", nil
}
