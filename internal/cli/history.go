package cli

import (
	"github.com/spf13/cobra"
)

func addHistory(topLevel *cobra.Command, a *app) {
	ho := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent log events, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := a.trackerService(cmd)
			if err != nil {
				return err
			}
			events, err := tracker.Events(a.ctx(cmd), ho.Limit)
			if err != nil {
				return err
			}
			title(cmd.OutOrStdout(), "History", len(events))
			printEvents(cmd.OutOrStdout(), events)
			return nil
		},
	}

	AddHistoryArgs(cmd, ho)
	topLevel.AddCommand(cmd)
}
