package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verboseFlag bool
	opts := &renameOptions{}

	ctx := newCommandContext(&configFlag, &verboseFlag)

	rootCmd := &cobra.Command{
		Use:           "renamer [flags] [path...]",
		Short:         "Batch rename files with ordered regex rules",
		Long:          rootLongHelp,
		Example:       rootExample,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, ctx, opts, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug detail and print each rename as it happens")

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.do, "do", "d", false, "Actually rename files; the default is a dry run")
	flags.StringVarP(&opts.filter, "filter", "f", "", "Only consider paths matching this regex (anchored at the start)")
	flags.StringVarP(&opts.result, "result", "R", "", "Only keep renames whose new name matches this regex (anchored at the start)")
	flags.StringArrayVarP(&opts.actions, "action", "a", nil, "Add a rename rule; rules run in the order given (see Actions)")
	flags.BoolVarP(&opts.partial, "partial", "p", false, "Keep applying rules when one leaves the name unchanged")
	flags.BoolVarP(&opts.recursive, "recursive", "r", false, "Scan directories recursively")
	flags.BoolVar(&opts.basename, "basename", false, "Apply rules to the file name only, keeping the directory")
	flags.StringVar(&opts.rulesPath, "rules", "", "Load rules from a YAML rule file; -a rules run after them")
	flags.StringVar(&opts.savePath, "save-rules", "", "Write the effective rules of this run to a YAML rule file")
	flags.StringVar(&opts.format, "format", "", "Dry-run report format: plain, table, diff, or json")
	flags.StringVar(&opts.color, "color", "", "Colour output: auto, always, or never")
	flags.BoolVar(&opts.noJournal, "no-journal", false, "Do not record this run for undo")

	rootCmd.AddCommand(newKeywordsCommand())
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newUndoCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
