package preflight

import (
	"path/filepath"

	"renamer/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes the filesystem checks for the given config. workDir is
// the directory renames are resolved against.
func RunAll(cfg *config.Config, workDir string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("Working directory", workDir)}

	if cfg.Journal.Enabled && cfg.Journal.Path != "" {
		results = append(results, CheckCreatableDirectory("Journal directory", filepath.Dir(cfg.Journal.Path)))
	}

	return results
}
