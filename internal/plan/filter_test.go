package plan

import (
	"reflect"
	"testing"
)

func TestFilterByResult(t *testing.T) {
	entries := []Entry{
		{Original: "abc name 01.file", Proposed: "name E01.file"},
		{Original: "abc name 02.file", Proposed: "name 02.file"},
	}
	pattern, err := CompileResult(`name E[0-9]{2}.file`)
	if err != nil {
		t.Fatalf("CompileResult returned error: %v", err)
	}

	kept, dropped := FilterByResult(entries, pattern)
	want := []Entry{{Original: "abc name 01.file", Proposed: "name E01.file"}}
	if !reflect.DeepEqual(kept, want) {
		t.Fatalf("unexpected kept entries: %+v", kept)
	}
	if len(dropped) != 1 || dropped[0].Reason != ReasonResultMismatch || dropped[0].Target != "name 02.file" {
		t.Fatalf("unexpected dropped entries: %+v", dropped)
	}
}

func TestFilterByResultIsPrefixAnchored(t *testing.T) {
	entries := []Entry{{Original: "x", Proposed: "name E01.file"}}

	notAtStart, err := CompileResult(`E01`)
	if err != nil {
		t.Fatalf("CompileResult returned error: %v", err)
	}
	if kept, _ := FilterByResult(entries, notAtStart); len(kept) != 0 {
		t.Fatalf("expected search-style match to be rejected, got %+v", kept)
	}

	prefix, err := CompileResult(`name|other`)
	if err != nil {
		t.Fatalf("CompileResult returned error: %v", err)
	}
	if kept, _ := FilterByResult(entries, prefix); len(kept) != 1 {
		t.Fatalf("expected prefix match to be kept")
	}

	alternation, _ := CompileResult(`other|E01`)
	if kept, _ := FilterByResult(entries, alternation); len(kept) != 0 {
		t.Fatalf("expected anchoring to cover every alternative, got %+v", kept)
	}
}

func TestFilterByResultNilPatternKeepsAll(t *testing.T) {
	entries := []Entry{{Original: "a", Proposed: "b"}}
	kept, dropped := FilterByResult(entries, nil)
	if len(kept) != 1 || dropped != nil {
		t.Fatalf("unexpected result: %+v %+v", kept, dropped)
	}
}

func TestCompileResultRejectsBadPattern(t *testing.T) {
	if _, err := CompileResult("("); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestValidatePreservesOrder(t *testing.T) {
	entries := []Entry{
		{Original: "z", Proposed: "b"},
		{Original: "a", Proposed: "c"},
		{Original: "m", Proposed: "b"},
	}
	kept, skipped := Validate(entries, noneExist)
	want := []Entry{{Original: "z", Proposed: "b"}, {Original: "a", Proposed: "c"}}
	if !reflect.DeepEqual(kept, want) {
		t.Fatalf("unexpected kept entries: %+v", kept)
	}
	if len(skipped) != 1 || skipped[0].Path != "m" || skipped[0].Reason != ReasonDuplicateTarget {
		t.Fatalf("unexpected skipped entries: %+v", skipped)
	}
}

func TestValidateTreatsEquivalentPathsAsDuplicates(t *testing.T) {
	entries := []Entry{
		{Original: "a", Proposed: "x"},
		{Original: "b", Proposed: "./x"},
		{Original: "c", Proposed: "dir/../x"},
		{Original: "d", Proposed: "dir//y"},
		{Original: "e", Proposed: "dir/y"},
	}
	kept, skipped := Validate(entries, noneExist)
	want := []Entry{{Original: "a", Proposed: "x"}, {Original: "d", Proposed: "dir//y"}}
	if !reflect.DeepEqual(kept, want) {
		t.Fatalf("unexpected kept entries: %+v", kept)
	}
	reasons := skipReasons(skipped)
	for _, path := range []string{"b", "c", "e"} {
		if reasons[path] != ReasonDuplicateTarget {
			t.Fatalf("expected %s dropped as duplicate, got %+v", path, skipped)
		}
	}
}
