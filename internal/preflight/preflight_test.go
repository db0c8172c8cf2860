package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"renamer/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCreatableDirectory_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "renamer")
	result := CheckCreatableDirectory("journal", path)
	if !result.Passed {
		t.Fatalf("expected pass for creatable dir, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "created on first apply") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckCreatableDirectory_UnderFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckCreatableDirectory("journal", filepath.Join(f, "state"))
	if result.Passed {
		t.Fatal("expected failure when ancestor is a file")
	}
}

func TestRunAll(t *testing.T) {
	cfg := config.Default()
	cfg.Journal.Enabled = true
	cfg.Journal.Path = filepath.Join(t.TempDir(), "state", "journal.db")

	results := RunAll(&cfg, t.TempDir())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, result := range results {
		if !result.Passed {
			t.Fatalf("%s failed: %s", result.Name, result.Detail)
		}
	}

	cfg.Journal.Enabled = false
	if got := RunAll(&cfg, t.TempDir()); len(got) != 1 {
		t.Fatalf("expected only working directory check, got %d", len(got))
	}
	if RunAll(nil, ".") != nil {
		t.Fatal("expected nil for nil config")
	}
}
