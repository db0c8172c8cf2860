package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"renamer/internal/keyword"
	"renamer/internal/logging"
)

func newKeywordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "keywords",
		Short:       "List the %keywords that rules may contain",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := keyword.NewRegistry()
			prober := keyword.NewProber(keyword.MediaOptions{Logger: logging.NewNop()})
			if err := keyword.RegisterMedia(registry, prober); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			width := 0
			triggers := registry.Triggers()
			for _, trigger := range triggers {
				width = max(width, len(trigger.Token))
			}
			fmt.Fprintln(out, "Keywords are replaced after all rules run. A file whose value cannot be")
			fmt.Fprintln(out, "determined is skipped.")
			fmt.Fprintln(out)
			for _, trigger := range triggers {
				fmt.Fprintf(out, "  %-*s  %s\n", width, trigger.Token, trigger.Description)
			}
			return nil
		},
	}
}
