package apply

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"renamer/internal/config"
	"renamer/internal/logging"
	"renamer/internal/plan"
)

// Recorder receives every rename that completed.
type Recorder interface {
	Record(ctx context.Context, entry plan.Entry) error
}

// Options configures an Applier.
type Options struct {
	// Format selects the dry-run report: plain, table, diff, or json.
	Format string
	// Color wraps report lines in ANSI colours.
	Color bool
	// Verbose prints each completed rename to Out.
	Verbose bool
	// Out receives reports and verbose lines. Defaults to os.Stdout.
	Out      io.Writer
	Logger   *slog.Logger
	Recorder Recorder
}

// Summary describes a finished Apply call.
type Summary struct {
	Renamed []plan.Entry
}

// Applier renders or executes rename plans.
type Applier struct {
	format   string
	color    bool
	verbose  bool
	out      io.Writer
	logger   *slog.Logger
	recorder Recorder
	rename   func(oldPath, newPath string) error
}

// New returns an Applier. An empty format means plain.
func New(opts Options) (*Applier, error) {
	format := opts.Format
	if format == "" {
		format = config.OutputPlain
	}
	if err := config.ValidateOutputFormat(format); err != nil {
		return nil, err
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Applier{
		format:   format,
		color:    opts.Color,
		verbose:  opts.Verbose,
		out:      out,
		logger:   logging.NewComponentLogger(opts.Logger, "apply"),
		recorder: opts.Recorder,
		rename:   renameNoReplace,
	}, nil
}

// DryRun writes the plan report without touching the filesystem.
func (a *Applier) DryRun(entries []plan.Entry) error {
	report, err := Render(a.format, entries, a.color)
	if err != nil {
		return err
	}
	if report == "" {
		return nil
	}
	if _, err := io.WriteString(a.out, report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Apply renames every entry in order. It stops at the first failure and
// returns a *RenameError; renames already done are kept and listed in the
// Summary. Cancellation is checked between renames.
func (a *Applier) Apply(ctx context.Context, entries []plan.Entry) (Summary, error) {
	var summary Summary
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := a.rename(entry.Original, entry.Proposed); err != nil {
			a.logger.Error("rename failed",
				logging.String("path", entry.Original),
				logging.String("target", entry.Proposed),
				logging.Error(err),
			)
			return summary, &RenameError{Original: entry.Original, Proposed: entry.Proposed, Err: err}
		}
		summary.Renamed = append(summary.Renamed, entry)

		a.logger.Debug("renamed",
			logging.String("path", entry.Original),
			logging.String("target", entry.Proposed),
		)
		if a.verbose {
			if _, err := fmt.Fprintln(a.out, renderLine(entry, a.color)); err != nil {
				return summary, fmt.Errorf("write output: %w", err)
			}
		}
		if a.recorder != nil {
			if err := a.recorder.Record(ctx, entry); err != nil {
				// The rename happened; losing the journal row only affects undo.
				a.logger.Warn("failed to record rename",
					logging.String("path", entry.Original),
					logging.Error(err),
				)
			}
		}
	}
	a.logger.Info("renames applied", logging.Int("count", len(summary.Renamed)))
	return summary, nil
}
