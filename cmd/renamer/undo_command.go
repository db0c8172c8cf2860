package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"renamer/internal/apply"
	"renamer/internal/journal"
	"renamer/internal/logging"
	"renamer/internal/plan"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	var doFlag bool

	cmd := &cobra.Command{
		Use:   "undo [batch-id]",
		Short: "Reverse a journaled batch (the latest by default)",
		Long: `Reverse the renames of a journaled batch, newest rename first.

Like the root command this is a dry run unless --do is given. Renames whose
original name is taken again are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return errors.New("the rename journal is disabled (journal.enabled = false)")
			}

			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			var batch *journal.Batch
			if len(args) == 1 {
				batch, err = store.Batch(cmd.Context(), args[0])
			} else {
				batch, err = store.LatestUndoable(cmd.Context())
			}
			if err != nil {
				return err
			}
			if batch.Undone() {
				return fmt.Errorf("%w: %s", journal.ErrAlreadyUndone, batch.ID)
			}
			recorded, err := store.Entries(cmd.Context(), batch.ID)
			if err != nil {
				return err
			}

			entries, skipped := plan.Validate(journal.ReversePlan(recorded), plan.LstatExists)
			plan.ReportSkips(logger, skipped)

			out := cmd.OutOrStdout()
			colorize := apply.ShouldColorize(out, cfg.Output.Color)
			if !doFlag {
				applier, err := apply.New(apply.Options{Format: cfg.Output.Format, Color: colorize, Out: out, Logger: logger})
				if err != nil {
					return err
				}
				return applier.DryRun(entries)
			}

			if _, err := applyPlan(cmd.Context(), cfg, logger, entries, applyRequest{
				undoOf:   batch.ID,
				journal:  true,
				verbose:  ctx.verbose(),
				colorize: colorize,
				cmd:      cmd,
			}); err != nil {
				return err
			}
			if err := store.MarkUndone(cmd.Context(), batch.ID); err != nil {
				return err
			}
			logger.Info("batch undone",
				logging.String("batch", batch.ID),
				logging.Int("renames", len(entries)),
				logging.Int("skipped", len(skipped)),
			)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&doFlag, "do", "d", false, "Actually rename files; the default is a dry run")
	return cmd
}
