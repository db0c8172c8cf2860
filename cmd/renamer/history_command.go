package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"renamer/internal/apply"
	"renamer/internal/journal"
	"renamer/internal/plan"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history [batch-id]",
		Short: "List journaled rename batches, or the renames of one batch",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
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

			if len(args) == 1 {
				batch, err := store.Batch(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				entries, err := store.Entries(cmd.Context(), batch.ID)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, struct {
						journal.Batch
						Entries []plan.Entry `json:"entries"`
					}{Batch: *batch, Entries: entries})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Batch %s (%s)\n", batch.ID, batch.CreatedAt.Local().Format(time.DateTime))
				if len(batch.Rules) > 0 {
					fmt.Fprintf(out, "Rules: %s\n", strings.Join(batch.Rules, " "))
				}
				report, err := apply.Render("plain", entries, false)
				if err != nil {
					return err
				}
				fmt.Fprint(out, report)
				return nil
			}

			batches, err := store.Batches(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if batches == nil {
					batches = []journal.Batch{}
				}
				return writeJSON(cmd, batches)
			}
			out := cmd.OutOrStdout()
			if len(batches) == 0 {
				fmt.Fprintln(out, "No batches recorded")
				return nil
			}
			fmt.Fprintln(out, apply.RenderTable(
				[]string{"ID", "When", "Renames", "State", "Rules"},
				historyRows(batches),
				[]apply.ColumnAlignment{apply.AlignLeft, apply.AlignLeft, apply.AlignRight, apply.AlignLeft, apply.AlignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of batches to list (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func historyRows(batches []journal.Batch) [][]string {
	rows := make([][]string, 0, len(batches))
	for _, batch := range batches {
		state := "applied"
		switch {
		case batch.UndoOf != "":
			state = "undo of " + shortID(batch.UndoOf)
		case batch.Undone():
			state = "undone"
		}
		rows = append(rows, []string{
			shortID(batch.ID),
			batch.CreatedAt.Local().Format(time.DateTime),
			strconv.Itoa(batch.Count),
			state,
			strings.Join(batch.Rules, " "),
		})
	}
	return rows
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
