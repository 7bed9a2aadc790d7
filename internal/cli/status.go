package cli

import (
	"go_5_wobushizi/internal/model"

	"github.com/spf13/cobra"
)

func addStatus(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:       "status [known|study]",
		Short:     "List tracked characters.",
		ValidArgs: []string{string(model.StatusKnown), string(model.StatusStudy)},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := a.trackerService(cmd)
			if err != nil {
				return err
			}
			var status model.CharacterStatus
			if len(args) == 1 {
				status = model.CharacterStatus(args[0])
			}

			states, err := tracker.ListStates(a.ctx(cmd), status)
			if err != nil {
				return err
			}
			label := "All"
			switch status {
			case model.StatusKnown:
				label = "Known"
			case model.StatusStudy:
				label = "Study"
			}
			title(cmd.OutOrStdout(), label, len(states))
			printStates(cmd.OutOrStdout(), states)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
