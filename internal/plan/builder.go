package plan

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"renamer/internal/action"
	"renamer/internal/keyword"
	"renamer/internal/logging"
)

// ExistsFunc reports whether a filesystem entry occupies path.
type ExistsFunc func(path string) (bool, error)

// Options configures a Builder.
type Options struct {
	// Partial keeps a rule chain going when an action leaves the name unchanged.
	Partial bool
	// Basename applies actions to the final path element only.
	Basename bool
	// Result, when set, drops entries whose new name does not match. Build it
	// with CompileResult.
	Result *regexp.Regexp
	Logger *slog.Logger
	// Exists defaults to an os.Lstat probe.
	Exists ExistsFunc
}

// Builder computes rename plans for a fixed list of actions.
type Builder struct {
	actions  []action.Action
	keywords *keyword.Registry
	partial  bool
	basename bool
	result   *regexp.Regexp
	exists   ExistsFunc
	logger   *slog.Logger
}

// NewBuilder returns a Builder. A nil registry disables keyword substitution.
func NewBuilder(actions []action.Action, keywords *keyword.Registry, opts Options) *Builder {
	exists := opts.Exists
	if exists == nil {
		exists = LstatExists
	}
	return &Builder{
		actions:  append([]action.Action(nil), actions...),
		keywords: keywords,
		partial:  opts.Partial,
		basename: opts.Basename,
		result:   opts.Result,
		exists:   exists,
		logger:   logging.NewComponentLogger(opts.Logger, "plan"),
	}
}

// Build computes the plan for files. Entries are sorted by original path and
// filtered by the result pattern before conflicts are resolved, so a dropped
// entry never claims a target. The only error is context cancellation;
// per-file problems become Skips.
func (b *Builder) Build(ctx context.Context, files []string) (Result, error) {
	var result Result
	candidates := make([]Entry, 0, len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		entry, skip := b.Rename(ctx, path)
		if skip != nil {
			reportSkip(b.logger, *skip)
			result.Skipped = append(result.Skipped, *skip)
			continue
		}
		candidates = append(candidates, entry)
	}

	SortEntries(candidates)

	candidates, mismatched := FilterByResult(candidates, b.result)
	ReportSkips(b.logger, mismatched)
	result.Skipped = append(result.Skipped, mismatched...)

	kept, skipped := Validate(candidates, b.exists)
	ReportSkips(b.logger, skipped)
	result.Entries = kept
	result.Skipped = append(result.Skipped, skipped...)

	b.logger.Debug("plan built",
		logging.Int("files", len(files)),
		logging.Int("entries", len(result.Entries)),
		logging.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// Rename runs the action chain and keyword substitution for a single path.
// It does not check the filesystem.
func (b *Builder) Rename(ctx context.Context, path string) (Entry, *Skip) {
	dir, name := "", path
	if b.basename {
		dir, name = filepath.Dir(path), filepath.Base(path)
	}

	for _, a := range b.actions {
		next, ok := action.Apply(a, name, b.partial)
		if !ok {
			return Entry{}, &Skip{Path: path, Reason: ReasonNoChange}
		}
		name = next
	}

	name, err := b.keywords.Replace(ctx, name, path)
	if err != nil {
		return Entry{}, &Skip{Path: path, Reason: ReasonKeywordUnavailable, Err: err}
	}

	proposed := name
	if b.basename {
		if invalidTarget(name) {
			return Entry{}, &Skip{Path: path, Target: name, Reason: ReasonInvalidTarget}
		}
		proposed = filepath.Join(dir, name)
	}
	return Entry{Original: path, Proposed: proposed}, nil
}

// SortEntries orders entries by original path.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Original < entries[j].Original
	})
}

// Validate drops entries with invalid targets, targets that already exist, and
// targets claimed by an earlier entry. Order is preserved.
func Validate(entries []Entry, exists ExistsFunc) ([]Entry, []Skip) {
	if exists == nil {
		exists = LstatExists
	}
	kept := make([]Entry, 0, len(entries))
	var skipped []Skip
	claimed := make(map[string]string, len(entries))

	for _, entry := range entries {
		if invalidTarget(entry.Proposed) {
			skipped = append(skipped, Skip{Path: entry.Original, Target: entry.Proposed, Reason: ReasonInvalidTarget})
			continue
		}
		key := filepath.Clean(entry.Proposed)
		if _, ok := claimed[key]; ok {
			skipped = append(skipped, Skip{Path: entry.Original, Target: entry.Proposed, Reason: ReasonDuplicateTarget})
			continue
		}
		occupied, err := exists(entry.Proposed)
		if err != nil || occupied {
			skipped = append(skipped, Skip{Path: entry.Original, Target: entry.Proposed, Reason: ReasonTargetExists, Err: err})
			continue
		}
		claimed[key] = entry.Original
		kept = append(kept, entry)
	}
	return kept, skipped
}

// LstatExists reports whether anything, including a dangling symlink, exists
// at path. Errors other than not-exist are returned so callers treat the
// target as occupied.
func LstatExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func invalidTarget(name string) bool {
	switch name {
	case "", ".", "..", "/":
		return true
	default:
		return false
	}
}

// ReportSkips logs each skip at a level matching its reason: no-change at
// debug, invalid and duplicate targets at warn, everything else at info.
func ReportSkips(logger *slog.Logger, skips []Skip) {
	if logger == nil {
		return
	}
	for _, skip := range skips {
		reportSkip(logger, skip)
	}
}

func reportSkip(logger *slog.Logger, skip Skip) {
	attrs := []logging.Attr{
		logging.String("path", skip.Path),
		logging.String(logging.FieldReason, string(skip.Reason)),
	}
	if skip.Target != "" {
		attrs = append(attrs, logging.String("target", skip.Target))
	}
	if skip.Err != nil {
		attrs = append(attrs, logging.Error(skip.Err))
	}

	switch skip.Reason {
	case ReasonNoChange:
		logger.Debug("skipping incomplete rename", logging.Args(attrs...)...)
	case ReasonInvalidTarget, ReasonDuplicateTarget:
		logger.Warn("dropping rename", logging.Args(attrs...)...)
	default:
		logger.Info("dropping rename", logging.Args(attrs...)...)
	}
}
