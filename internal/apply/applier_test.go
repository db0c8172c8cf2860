package apply

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"renamer/internal/plan"
)

type memoryRecorder struct {
	entries []plan.Entry
	err     error
}

func (m *memoryRecorder) Record(_ context.Context, entry plan.Entry) error {
	m.entries = append(m.entries, entry)
	return m.err
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(filepath.Base(path)), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func TestApplyRenamesInOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a-file.file"))
	touch(t, filepath.Join(dir, "b-file.file"))
	entries := []plan.Entry{
		{Original: filepath.Join(dir, "a-file.file"), Proposed: filepath.Join(dir, "afile.file")},
		{Original: filepath.Join(dir, "b-file.file"), Proposed: filepath.Join(dir, "bfile.file")},
	}

	var out bytes.Buffer
	recorder := &memoryRecorder{}
	applier, err := New(Options{Out: &out, Verbose: true, Recorder: recorder})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	summary, err := applier.Apply(context.Background(), entries)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !reflect.DeepEqual(summary.Renamed, entries) {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if !reflect.DeepEqual(recorder.entries, entries) {
		t.Fatalf("unexpected recorded entries: %+v", recorder.entries)
	}
	for _, entry := range entries {
		if exists(entry.Original) || !exists(entry.Proposed) {
			t.Fatalf("rename %s not applied", entry)
		}
	}
	want := entries[0].String() + "\n" + entries[1].String() + "\n"
	if out.String() != want {
		t.Fatalf("unexpected verbose output: got %q want %q", out.String(), want)
	}
}

func TestApplyQuietWithoutVerbose(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a"))
	var out bytes.Buffer
	applier, err := New(Options{Out: &out})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := applier.Apply(context.Background(), []plan.Entry{{Original: filepath.Join(dir, "a"), Proposed: filepath.Join(dir, "b")}}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c", "taken"} {
		touch(t, filepath.Join(dir, name))
	}
	entries := []plan.Entry{
		{Original: filepath.Join(dir, "a"), Proposed: filepath.Join(dir, "a2")},
		{Original: filepath.Join(dir, "b"), Proposed: filepath.Join(dir, "taken")},
		{Original: filepath.Join(dir, "c"), Proposed: filepath.Join(dir, "c2")},
	}

	applier, err := New(Options{Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	summary, err := applier.Apply(context.Background(), entries)

	var renameErr *RenameError
	if !errors.As(err, &renameErr) {
		t.Fatalf("expected *RenameError, got %v", err)
	}
	if renameErr.Original != entries[1].Original || renameErr.Proposed != entries[1].Proposed {
		t.Fatalf("unexpected failing entry: %+v", renameErr)
	}
	if !errors.Is(err, ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists, got %v", err)
	}
	if len(summary.Renamed) != 1 || !exists(filepath.Join(dir, "a2")) {
		t.Fatalf("expected first rename to remain, got %+v", summary)
	}
	if !exists(filepath.Join(dir, "c")) || exists(filepath.Join(dir, "c2")) {
		t.Fatal("expected later renames to be skipped")
	}
	data, err := os.ReadFile(filepath.Join(dir, "taken"))
	if err != nil || string(data) != "taken" {
		t.Fatalf("existing target was overwritten: %q err=%v", data, err)
	}
}

func TestApplyReportsMissingSource(t *testing.T) {
	dir := t.TempDir()
	applier, err := New(Options{Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = applier.Apply(context.Background(), []plan.Entry{{Original: filepath.Join(dir, "gone"), Proposed: filepath.Join(dir, "new")}})
	var renameErr *RenameError
	if !errors.As(err, &renameErr) {
		t.Fatalf("expected *RenameError, got %v", err)
	}
}

func TestApplyKeepsGoingWhenRecorderFails(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a"))
	touch(t, filepath.Join(dir, "b"))
	recorder := &memoryRecorder{err: errors.New("disk full")}
	applier, err := New(Options{Out: &bytes.Buffer{}, Recorder: recorder})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	summary, err := applier.Apply(context.Background(), []plan.Entry{
		{Original: filepath.Join(dir, "a"), Proposed: filepath.Join(dir, "a2")},
		{Original: filepath.Join(dir, "b"), Proposed: filepath.Join(dir, "b2")},
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if len(summary.Renamed) != 2 || len(recorder.entries) != 2 {
		t.Fatalf("unexpected summary %+v recorded %+v", summary, recorder.entries)
	}
}

func TestApplyChecksCancellationBetweenRenames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls int
	applier, err := New(Options{Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	applier.rename = func(string, string) error {
		calls++
		cancel()
		return nil
	}
	summary, err := applier.Apply(ctx, []plan.Entry{{Original: "a", Proposed: "b"}, {Original: "c", Proposed: "d"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 || len(summary.Renamed) != 1 {
		t.Fatalf("expected one rename before cancellation, got calls=%d summary=%+v", calls, summary)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestDryRunFormats(t *testing.T) {
	entries := []plan.Entry{
		{Original: "a-file.file", Proposed: "afile.file"},
		{Original: "b-file.file", Proposed: "bfile.file"},
	}

	cases := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{
			format: "plain",
			check: func(t *testing.T, out string) {
				want := "a-file.file -> afile.file\nb-file.file -> bfile.file\n"
				if out != want {
					t.Fatalf("got %q want %q", out, want)
				}
			},
		},
		{
			format: "table",
			check: func(t *testing.T, out string) {
				for _, want := range []string{"Original", "Proposed", "a-file.file", "bfile.file"} {
					if !strings.Contains(out, want) {
						t.Fatalf("table missing %q:\n%s", want, out)
					}
				}
			},
		},
		{
			format: "diff",
			check: func(t *testing.T, out string) {
				for _, want := range []string{"--- original\n", "+++ renamed\n", "-a-file.file\n", "+bfile.file\n"} {
					if !strings.Contains(out, want) {
						t.Fatalf("diff missing %q:\n%s", want, out)
					}
				}
			},
		},
		{
			format: "json",
			check: func(t *testing.T, out string) {
				var decoded jsonReport
				if err := json.Unmarshal([]byte(out), &decoded); err != nil {
					t.Fatalf("decode json: %v", err)
				}
				if decoded.Count != 2 || !reflect.DeepEqual(decoded.Entries, entries) {
					t.Fatalf("unexpected json report: %+v", decoded)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			var out bytes.Buffer
			applier, err := New(Options{Format: tc.format, Out: &out})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			if err := applier.DryRun(entries); err != nil {
				t.Fatalf("DryRun returned error: %v", err)
			}
			tc.check(t, out.String())
		})
	}
}

func TestDryRunEmptyPlan(t *testing.T) {
	var out bytes.Buffer
	applier, err := New(Options{Out: &out})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := applier.DryRun(nil); err != nil {
		t.Fatalf("DryRun returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected empty output, got %q", out.String())
	}

	report, err := Render("json", nil, false)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(report, `"entries": []`) {
		t.Fatalf("expected empty entries array, got %s", report)
	}
}

func TestRenderPlainColor(t *testing.T) {
	out := renderPlain([]plan.Entry{{Original: "a", Proposed: "b"}}, true)
	if !strings.Contains(out, ansiRed+"a"+ansiReset) || !strings.Contains(out, ansiGreen+"b"+ansiReset) {
		t.Fatalf("expected coloured output, got %q", out)
	}
}

func TestShouldColorize(t *testing.T) {
	var buf bytes.Buffer
	if !ShouldColorize(&buf, "always") {
		t.Fatal("always should colour")
	}
	if ShouldColorize(&buf, "never") {
		t.Fatal("never should not colour")
	}
	if ShouldColorize(&buf, "auto") {
		t.Fatal("auto should not colour a buffer")
	}
	t.Setenv("NO_COLOR", "1")
	if ShouldColorize(os.Stdout, "auto") {
		t.Fatal("NO_COLOR should disable auto colour")
	}
}
