package discover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"renamer/internal/logging"
)

// CurrentDir is the root used when none is given. Its children are reported
// without a "./" prefix.
const CurrentDir = "."

// Options configures ListCandidateFiles.
type Options struct {
	// Filter keeps paths that match at the start. Nil keeps everything.
	Filter *regexp.Regexp
	// Recursive descends into subdirectories of directory roots.
	Recursive bool
	Logger    *slog.Logger
}

// CompileFilter compiles expr so that it only matches at the start of a path.
// An empty expression returns a nil pattern.
func CompileFilter(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	pattern, err := regexp.Compile(`^(?:` + expr + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expr, err)
	}
	return pattern, nil
}

// ListCandidateFiles expands roots into candidate file paths. The result is
// deduplicated and sorted. Only context cancellation is returned as an error.
func ListCandidateFiles(ctx context.Context, roots []string, opts Options) ([]string, error) {
	logger := logging.NewComponentLogger(opts.Logger, "discover")
	if len(roots) == 0 {
		roots = []string{CurrentDir}
	}

	w := walker{ctx: ctx, opts: opts, logger: logger, seen: make(map[string]struct{})}
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := w.visitRoot(root); err != nil {
			return nil, err
		}
	}

	sort.Strings(w.files)
	logger.Debug("discovery complete",
		logging.Int("roots", len(roots)),
		logging.Int("files", len(w.files)),
	)
	return w.files, nil
}

type walker struct {
	ctx    context.Context
	opts   Options
	logger *slog.Logger
	seen   map[string]struct{}
	files  []string
}

func (w *walker) visitRoot(root string) error {
	info, err := os.Lstat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			w.logger.Warn("path does not exist", logging.String("path", root))
		} else {
			w.logger.Warn("cannot inspect path", logging.String("path", root), logging.Error(err))
		}
		return nil
	}

	// A symlink root to a directory is walked like the directory itself.
	if info.Mode()&fs.ModeSymlink != 0 {
		if target, statErr := os.Stat(root); statErr == nil && target.IsDir() {
			return w.walkDir(root)
		}
		w.add(root)
		return nil
	}
	if info.IsDir() {
		return w.walkDir(root)
	}
	if info.Mode().IsRegular() {
		w.add(root)
		return nil
	}
	w.logger.Debug("not a file or directory", logging.String("path", root))
	return nil
}

func (w *walker) walkDir(dir string) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			w.logger.Warn("permission denied", logging.String("path", dir))
		} else {
			w.logger.Warn("cannot read directory", logging.String("path", dir), logging.Error(err))
		}
		return nil
	}

	for _, entry := range entries {
		path := entry.Name()
		if dir != CurrentDir {
			path = filepath.Join(dir, entry.Name())
		}
		switch mode := entry.Type(); {
		case mode.IsDir():
			if !w.opts.Recursive {
				continue
			}
			if err := w.walkDir(path); err != nil {
				return err
			}
		case mode.IsRegular(), mode&fs.ModeSymlink != 0:
			w.add(path)
		default:
			w.logger.Debug("not a file or directory", logging.String("path", path))
		}
	}
	return nil
}

func (w *walker) add(path string) {
	if w.opts.Filter != nil && !w.opts.Filter.MatchString(path) {
		w.logger.Debug("path does not match filter", logging.String("path", path))
		return
	}
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}
