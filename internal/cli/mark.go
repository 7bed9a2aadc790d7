package cli

import (
	"fmt"

	"go_5_wobushizi/internal/model"

	"github.com/spf13/cobra"
)

func addMark(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "mark <char> <known|study>",
		Short: "Set the status of one character.",
		Example: `
wobushizi mark 貓 known
wobushizi mark 学 study
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := a.trackerService(cmd)
			if err != nil {
				return err
			}
			st, err := tracker.SetStatus(a.ctx(cmd), args[0], model.CharacterStatus(args[1]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", bold(st.Character), statusText(st.Status), faint(st.Pinyin))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
