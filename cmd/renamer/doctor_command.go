package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"renamer/internal/apply"
	"renamer/internal/deps"
	"renamer/internal/preflight"
)

type doctorReport struct {
	Dependencies []deps.Status      `json:"dependencies"`
	Filesystem   []preflight.Result `json:"filesystem"`
}

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check external binaries and journal access",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}
			statuses := deps.CheckBinaries(cmd.Context(), deps.Requirements(cfg))
			checks := preflight.RunAll(cfg, workDir)
			if jsonOutput {
				if err := writeJSON(cmd, doctorReport{Dependencies: statuses, Filesystem: checks}); err != nil {
					return err
				}
				return doctorFailure(statuses, checks)
			}

			out := cmd.OutOrStdout()
			colorize := apply.ShouldColorize(out, cfg.Output.Color)
			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, status := range statuses {
				kind := statusOK
				message := status.Path
				if status.Version != "" {
					message = status.Version
				}
				if !status.Available {
					kind = statusError
					if status.Optional {
						kind = statusWarn
					}
					message = status.Detail
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, message, colorize))
				if !status.Available && status.Description != "" {
					fmt.Fprintf(out, "%s%s\n", strings.Repeat(" ", statusLabelWidth+len(statusIndent)+1), status.Description)
				}
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Journal", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Enabled", statusInfo, yesNo(cfg.Journal.Enabled), colorize))
			fmt.Fprintln(out, renderStatusLine("Path", statusInfo, cfg.Journal.Path, colorize))

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Filesystem", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, check := range checks {
				kind := statusOK
				if !check.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(check.Name, kind, check.Detail, colorize))
			}

			return doctorFailure(statuses, checks)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func doctorFailure(statuses []deps.Status, checks []preflight.Result) error {
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		return fmt.Errorf("%d required dependencies missing", len(missing))
	}
	failed := 0
	for _, check := range checks {
		if !check.Passed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d filesystem checks failed", failed)
	}
	return nil
}
