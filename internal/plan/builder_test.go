package plan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"renamer/internal/action"
	"renamer/internal/keyword"
)

func parseActions(t *testing.T, raws ...string) []action.Action {
	t.Helper()
	actions, err := action.ParseAll(raws)
	if err != nil {
		t.Fatalf("ParseAll(%v): %v", raws, err)
	}
	return actions
}

func createFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
}

func noneExist(string) (bool, error) { return false, nil }

func skipReasons(skips []Skip) map[string]Reason {
	out := make(map[string]Reason, len(skips))
	for _, skip := range skips {
		out[skip.Path] = skip.Reason
	}
	return out
}

func TestBuildRemoveDash(t *testing.T) {
	b := NewBuilder(parseActions(t, "d:-"), nil, Options{Exists: noneExist})
	result, err := b.Build(context.Background(), []string{"no dash.file", "a-file.file"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	want := []Entry{{Original: "a-file.file", Proposed: "afile.file"}}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Fatalf("unexpected entries: %+v", result.Entries)
	}
	if reasons := skipReasons(result.Skipped); reasons["no dash.file"] != ReasonNoChange {
		t.Fatalf("expected no-change skip, got %+v", result.Skipped)
	}
}

func TestBuildIsOrderSensitive(t *testing.T) {
	files := []string{"a-file.file", "b-file.file", "c file.file", "d file.file"}

	forward := NewBuilder(parseActions(t, "d:-", "d:af"), nil, Options{Exists: noneExist})
	result, err := forward.Build(context.Background(), files)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	want := []Entry{{Original: "a-file.file", Proposed: "ile.file"}}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Fatalf("unexpected forward entries: %+v", result.Entries)
	}

	reverse := NewBuilder(parseActions(t, "d:af", "d:-"), nil, Options{Exists: noneExist})
	result, err = reverse.Build(context.Background(), files)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Fatalf("expected reversed rules to produce nothing, got %+v", result.Entries)
	}
}

func TestBuildAbandonsIncompleteChain(t *testing.T) {
	b := NewBuilder(parseActions(t, "d:-", "d: "), nil, Options{Exists: noneExist})
	if _, skip := b.Rename(context.Background(), "a-file.file"); skip == nil || skip.Reason != ReasonNoChange {
		t.Fatalf("expected no-change skip, got %+v", skip)
	}

	partial := NewBuilder(parseActions(t, "d:-", "d: "), nil, Options{Partial: true, Exists: noneExist})
	entry, skip := partial.Rename(context.Background(), "a-file.file")
	if skip != nil || entry.Proposed != "afile.file" {
		t.Fatalf("expected partial chain to continue, got %+v %+v", entry, skip)
	}
}

func TestBuildSortsByOriginalPath(t *testing.T) {
	b := NewBuilder(parseActions(t, "a:_x"), nil, Options{Exists: noneExist})
	result, err := b.Build(context.Background(), []string{"c.txt", "a.txt", "b/z.txt", "B.txt"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	var originals []string
	for _, entry := range result.Entries {
		originals = append(originals, entry.Original)
	}
	want := []string{"B.txt", "a.txt", "b/z.txt", "c.txt"}
	if !reflect.DeepEqual(originals, want) {
		t.Fatalf("unexpected order: got %v want %v", originals, want)
	}
}

func TestBuildSkipsExistingTargets(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	createFiles(t, dir, "a-file.file", "b-file.file", "bfile.file")

	b := NewBuilder(parseActions(t, "d:-"), nil, Options{})
	result, err := b.Build(context.Background(), []string{"a-file.file", "b-file.file"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	want := []Entry{{Original: "a-file.file", Proposed: "afile.file"}}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Fatalf("unexpected entries: %+v", result.Entries)
	}
	if reasons := skipReasons(result.Skipped); reasons["b-file.file"] != ReasonTargetExists {
		t.Fatalf("expected target-exists skip, got %+v", result.Skipped)
	}
}

func TestBuildTreatsStatErrorsAsOccupied(t *testing.T) {
	statErr := errors.New("permission denied")
	b := NewBuilder(parseActions(t, "d:-"), nil, Options{Exists: func(string) (bool, error) { return false, statErr }})
	result, err := b.Build(context.Background(), []string{"a-file.file"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(result.Entries) != 0 || len(result.Skipped) != 1 || !errors.Is(result.Skipped[0].Err, statErr) {
		t.Fatalf("expected stat error to drop entry, got %+v", result)
	}
}

func TestBuildKeepsFirstOfDuplicateTargets(t *testing.T) {
	b := NewBuilder(parseActions(t, "r:[-_]:"), nil, Options{Exists: noneExist})
	result, err := b.Build(context.Background(), []string{"a_b.txt", "a-b.txt"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	want := []Entry{{Original: "a-b.txt", Proposed: "ab.txt"}}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Fatalf("unexpected entries: %+v", result.Entries)
	}
	if reasons := skipReasons(result.Skipped); reasons["a_b.txt"] != ReasonDuplicateTarget {
		t.Fatalf("expected duplicate-target skip, got %+v", result.Skipped)
	}
}

func TestBuildRejectsAliasTargets(t *testing.T) {
	for _, rule := range []string{"r:.*:", "r:.*:.", "r:.*:..", "r:.*:/"} {
		b := NewBuilder(parseActions(t, rule), nil, Options{Exists: noneExist})
		result, err := b.Build(context.Background(), []string{"abc"})
		if err != nil {
			t.Fatalf("Build returned error: %v", err)
		}
		if len(result.Entries) != 0 {
			t.Fatalf("%s: expected alias target to be dropped, got %+v", rule, result.Entries)
		}
		if result.Skipped[0].Reason != ReasonInvalidTarget {
			t.Fatalf("%s: unexpected skip: %+v", rule, result.Skipped)
		}
	}
}

func TestBuildBasename(t *testing.T) {
	b := NewBuilder(parseActions(t, "d:-", "i:0:X"), nil, Options{Basename: true, Exists: noneExist})
	result, err := b.Build(context.Background(), []string{filepath.Join("my-dir", "a-file.file")})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	want := []Entry{{Original: filepath.Join("my-dir", "a-file.file"), Proposed: filepath.Join("my-dir", "Xafile.file")}}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Fatalf("unexpected entries: %+v", result.Entries)
	}

	escape := NewBuilder(parseActions(t, "r:.*:.."), nil, Options{Basename: true, Exists: noneExist})
	if _, skip := escape.Rename(context.Background(), filepath.Join("dir", "file")); skip == nil || skip.Reason != ReasonInvalidTarget {
		t.Fatalf("expected basename alias to be rejected, got %+v", skip)
	}
}

func TestBuildKeywordSubstitution(t *testing.T) {
	reg := keyword.NewRegistry()
	if err := reg.Register("%res", "", keyword.ResolverFunc(func(ctx context.Context, path string) (string, error) {
		if path == "clip.mp4" {
			return "1280x720", nil
		}
		return "", keyword.ErrNotApplicable
	})); err != nil {
		t.Fatalf("Register: %v", err)
	}

	b := NewBuilder(parseActions(t, "a: (%res)"), reg, Options{Exists: noneExist})
	result, err := b.Build(context.Background(), []string{"clip.mp4", "notes.txt"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	want := []Entry{{Original: "clip.mp4", Proposed: "clip (1280x720).mp4"}}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Fatalf("unexpected entries: %+v", result.Entries)
	}
	if reasons := skipReasons(result.Skipped); reasons["notes.txt"] != ReasonKeywordUnavailable {
		t.Fatalf("expected keyword-unavailable skip, got %+v", result.Skipped)
	}
}

func TestBuildHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewBuilder(parseActions(t, "d:-"), nil, Options{Exists: noneExist})
	if _, err := b.Build(ctx, []string{"a-file.file"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLstatExistsSeesDanglingSymlinks(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "missing"), link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	exists, err := LstatExists(link)
	if err != nil || !exists {
		t.Fatalf("expected dangling symlink to count as existing, got %v err=%v", exists, err)
	}
	exists, err = LstatExists(filepath.Join(dir, "missing"))
	if err != nil || exists {
		t.Fatalf("expected missing path to be free, got %v err=%v", exists, err)
	}
}

func TestBuildAppliesResultFilter(t *testing.T) {
	pattern, err := CompileResult(`name E[0-9]{2}.file`)
	if err != nil {
		t.Fatalf("CompileResult returned error: %v", err)
	}
	b := NewBuilder(parseActions(t, `r:abc (name) (0[12]):\1 E\2`, "r:E02:02"), nil, Options{Partial: true, Result: pattern, Exists: noneExist})
	result, err := b.Build(context.Background(), []string{"abc name 02.file", "abc name 01.file"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	want := []Entry{{Original: "abc name 01.file", Proposed: "name E01.file"}}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Fatalf("unexpected entries: %+v", result.Entries)
	}
	if reasons := skipReasons(result.Skipped); reasons["abc name 02.file"] != ReasonResultMismatch {
		t.Fatalf("expected result-mismatch skip, got %+v", result.Skipped)
	}
}
