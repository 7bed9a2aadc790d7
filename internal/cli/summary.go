package cli

import (
	"github.com/spf13/cobra"
)

func addSummary(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show progress and HSK breakdown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := a.trackerService(cmd)
			if err != nil {
				return err
			}
			s, err := tracker.Summary(a.ctx(cmd))
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), s)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
