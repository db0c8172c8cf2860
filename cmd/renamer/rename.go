package main

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/spf13/cobra"

	"renamer/internal/action"
	"renamer/internal/apply"
	"renamer/internal/config"
	"renamer/internal/discover"
	"renamer/internal/journal"
	"renamer/internal/keyword"
	"renamer/internal/logging"
	"renamer/internal/plan"
	"renamer/internal/rules"
)

type renameOptions struct {
	do        bool
	filter    string
	result    string
	actions   []string
	partial   bool
	recursive bool
	basename  bool
	rulesPath string
	savePath  string
	format    string
	color     string
	noJournal bool
}

// renameSettings is the merged view of config, rule file and flags. Later
// sources win.
type renameSettings struct {
	rules     []string
	filter    string
	result    string
	partial   bool
	recursive bool
	basename  bool
	format    string
	color     string
	journal   bool
}

func resolveSettings(cmd *cobra.Command, cfg *config.Config, opts *renameOptions) (renameSettings, error) {
	settings := renameSettings{
		partial:   cfg.Engine.Partial,
		recursive: cfg.Engine.Recursive,
		basename:  cfg.Engine.Basename,
		format:    cfg.Output.Format,
		color:     cfg.Output.Color,
		journal:   cfg.Journal.Enabled,
	}

	if opts.rulesPath != "" {
		file, err := rules.Load(opts.rulesPath)
		if err != nil {
			return renameSettings{}, err
		}
		settings.rules = append(settings.rules, file.Actions...)
		settings.filter = file.Filter
		settings.result = file.Result
		if file.Partial != nil {
			settings.partial = *file.Partial
		}
		if file.Recursive != nil {
			settings.recursive = *file.Recursive
		}
		if file.Basename != nil {
			settings.basename = *file.Basename
		}
	}

	flags := cmd.Flags()
	settings.rules = append(settings.rules, opts.actions...)
	if flags.Changed("filter") {
		settings.filter = opts.filter
	}
	if flags.Changed("result") {
		settings.result = opts.result
	}
	if flags.Changed("partial") {
		settings.partial = opts.partial
	}
	if flags.Changed("recursive") {
		settings.recursive = opts.recursive
	}
	if flags.Changed("basename") {
		settings.basename = opts.basename
	}
	if flags.Changed("format") {
		if err := config.ValidateOutputFormat(opts.format); err != nil {
			return renameSettings{}, fmt.Errorf("--format: %w", err)
		}
		settings.format = opts.format
	}
	if flags.Changed("color") {
		switch opts.color {
		case config.ColorAuto, config.ColorAlways, config.ColorNever:
			settings.color = opts.color
		default:
			return renameSettings{}, fmt.Errorf("--color: unsupported value %q (want auto, always, or never)", opts.color)
		}
	}
	if opts.noJournal {
		settings.journal = false
	}
	return settings, nil
}

// ruleFile captures the settings a rule file can carry.
func (s renameSettings) ruleFile() *rules.File {
	partial, recursive, basename := s.partial, s.recursive, s.basename
	return &rules.File{
		Actions:   s.rules,
		Filter:    s.filter,
		Result:    s.result,
		Partial:   &partial,
		Basename:  &basename,
		Recursive: &recursive,
	}
}

func runRename(cmd *cobra.Command, ctx *commandContext, opts *renameOptions, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cmd, cfg, opts)
	if err != nil {
		return err
	}

	// Rules are parsed before discovery so a typo never touches the disk.
	if len(settings.rules) == 0 {
		return apply.ErrNoActions
	}
	actions, err := action.ParseAll(settings.rules)
	if err != nil {
		return err
	}
	filter, err := discover.CompileFilter(settings.filter)
	if err != nil {
		return err
	}
	result, err := compileResult(settings.result)
	if err != nil {
		return err
	}
	if opts.savePath != "" {
		if err := rules.Save(opts.savePath, settings.ruleFile()); err != nil {
			return err
		}
		logger.Info("saved rules", logging.String("path", opts.savePath), logging.Int("actions", len(settings.rules)))
	}

	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}

	files, err := discover.ListCandidateFiles(runCtx, args, discover.Options{
		Filter:    filter,
		Recursive: settings.recursive,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return apply.ErrNoFiles
	}

	registry, err := newKeywordRegistry(cfg, logger)
	if err != nil {
		return err
	}
	builder := plan.NewBuilder(actions, registry, plan.Options{
		Partial:  settings.partial,
		Basename: settings.basename,
		Result:   result,
		Logger:   logger,
	})
	built, err := builder.Build(runCtx, files)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colorize := apply.ShouldColorize(out, settings.color)
	if !opts.do {
		applier, err := apply.New(apply.Options{
			Format: settings.format,
			Color:  colorize,
			Out:    out,
			Logger: logger,
		})
		if err != nil {
			return err
		}
		return applier.DryRun(built.Entries)
	}

	_, err = applyPlan(runCtx, cfg, logger, built.Entries, applyRequest{
		rules:    settings.rules,
		journal:  settings.journal,
		verbose:  ctx.verbose(),
		colorize: colorize,
		cmd:      cmd,
	})
	return err
}

type applyRequest struct {
	rules    []string
	undoOf   string
	journal  bool
	verbose  bool
	colorize bool
	cmd      *cobra.Command
}

// applyPlan performs entries under the apply lock and records them in the
// journal when enabled. It returns the journal batch ID, empty when nothing
// was recorded.
func applyPlan(ctx context.Context, cfg *config.Config, logger *slog.Logger, entries []plan.Entry, req applyRequest) (string, error) {
	lock, err := journal.AcquireLock(cfg.JournalLockPath())
	if err != nil {
		return "", err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release apply lock", logging.String("lock", lock.Path()), logging.Error(err))
		}
	}()

	var batch *journal.BatchRecorder
	var recorder apply.Recorder
	if req.journal {
		store, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return "", fmt.Errorf("open journal: %w", err)
		}
		defer store.Close()
		batch, err = store.Begin(journal.BatchInfo{Rules: req.rules, UndoOf: req.undoOf})
		if err != nil {
			return "", err
		}
		recorder = batch
	}

	applier, err := apply.New(apply.Options{
		Verbose:  req.verbose,
		Color:    req.colorize,
		Out:      req.cmd.OutOrStdout(),
		Logger:   logger,
		Recorder: recorder,
	})
	if err != nil {
		return "", err
	}

	_, applyErr := applier.Apply(ctx, entries)
	if batch == nil || batch.Count() == 0 {
		return "", applyErr
	}
	logger.Info("journal batch recorded",
		logging.String("batch", batch.ID()),
		logging.Int("renames", batch.Count()),
	)
	return batch.ID(), applyErr
}

func compileResult(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	return plan.CompileResult(expr)
}

func newKeywordRegistry(cfg *config.Config, logger *slog.Logger) (*keyword.Registry, error) {
	registry := keyword.NewRegistry()
	prober := keyword.NewProber(keyword.MediaOptions{
		Binary:  cfg.Keywords.FFprobeBinary,
		Timeout: cfg.ProbeTimeout(),
		Logger:  logger,
	})
	if err := keyword.RegisterMedia(registry, prober); err != nil {
		return nil, err
	}
	return registry, nil
}
