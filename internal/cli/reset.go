package cli

import (
	"bufio"
	"fmt"
	"strings"

	"go_5_wobushizi/internal/model"

	"github.com/spf13/cobra"
)

func addReset(topLevel *cobra.Command, a *app) {
	ro := &ResetOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all statuses and log events of the device.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !ro.Yes {
				_, _ = fmt.Fprintf(out, "Delete all progress for device %q? [y/N]: ", a.opts.Device)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "y", "yes":
				default:
					_, _ = fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			tracker, err := a.trackerService(cmd)
			if err != nil {
				return err
			}
			if err := tracker.Reset(a.ctx(cmd), &model.ResetRequest{Confirm: true}); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, "All progress deleted.")
			return nil
		},
	}

	AddResetArgs(cmd, ro)
	topLevel.AddCommand(cmd)
}
