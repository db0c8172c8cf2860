package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"renamer/internal/config"
)

// versionTimeout bounds each `<binary> -version` call.
const versionTimeout = 5 * time.Second

// Requirement is an external binary renamer can call.
type Requirement struct {
	Name        string
	Command     string
	Description string
	// Optional binaries only disable the features that need them.
	Optional bool
	// VersionArgs, when set, are passed to the binary to read its version.
	VersionArgs []string
}

// Status reports the availability of a Requirement.
type Status struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Path        string `json:"path,omitempty"`
	Version     string `json:"version,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// Requirements lists the binaries the configuration refers to.
func Requirements(cfg *config.Config) []Requirement {
	binary := config.Default().Keywords.FFprobeBinary
	if cfg != nil && strings.TrimSpace(cfg.Keywords.FFprobeBinary) != "" {
		binary = cfg.Keywords.FFprobeBinary
	}
	return []Requirement{
		{
			Name:        "ffprobe",
			Command:     binary,
			Description: "Reads media metadata for %res, %title and %Title",
			Optional:    true,
			VersionArgs: []string{"-version"},
		},
	}
}

// CheckBinaries resolves each requirement on PATH and, when asked, records the
// first line of its version output.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, checkBinary(ctx, req))
	}
	return results
}

func checkBinary(ctx context.Context, req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(cmd)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", cmd)
		return status
	}
	status.Available = true
	status.Path = path

	if len(req.VersionArgs) > 0 {
		version, err := readVersion(ctx, path, req.VersionArgs)
		if err != nil {
			status.Detail = fmt.Sprintf("version check failed: %v", err)
		} else {
			status.Version = version
		}
	}
	return status
}

func readVersion(ctx context.Context, path string, args []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, args...).Output()
	if err != nil {
		return "", err
	}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	return "", nil
}

// MissingRequired returns the unavailable, non-optional statuses.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
