package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/store"
	"go_5_wobushizi/internal/textscan"

	"github.com/spf13/cobra"
)

// readInput は引数のファイル、なければ標準入力から読む。"-" も標準入力。
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var (
		b   []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", errors.New("input is empty")
	}
	return string(b), nil
}

func addLog(topLevel *cobra.Command, a *app) {
	lo := &LogOptions{}

	cmd := &cobra.Command{
		Use:   "log [file|-]",
		Short: "Log the characters of a text as known.",
		Long: `Every Chinese character in the text is logged as known,
except the ones passed with --study which are queued for study.`,
		Example: `
wobushizi log article.txt
echo "我爱猫" | wobushizi log --study 猫
wobushizi log --html page.html
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			tracker, err := a.trackerService(cmd)
			if err != nil {
				return err
			}
			ctx := a.ctx(cmd)

			req := &model.ReviewRequest{Text: input}
			if lo.HTML {
				req = &model.ReviewRequest{HTML: input}
			}
			review, err := tracker.Review(ctx, req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(review.UniqueChars) == 0 {
				_, _ = fmt.Fprintln(out, review.Message)
				return nil
			}

			study := store.NewSet(textscan.ExtractUniqueChars(lo.Study))
			logReq := &model.LogRequest{
				SourceText:  review.SourceText,
				UniqueChars: review.UniqueChars,
				Known:       []string{},
				Selected:    []string{},
			}
			for _, item := range review.Items {
				if item.Known {
					logReq.Known = append(logReq.Known, item.Glyph)
				}
				if study[item.Glyph] || study[item.Canonical] {
					continue
				}
				logReq.Selected = append(logReq.Selected, item.Glyph)
			}

			res, err := tracker.Log(ctx, logReq)
			if err != nil {
				return err
			}
			title(out, "Logged", len(review.UniqueChars))
			printLogResult(out, res)
			return nil
		},
	}

	AddLogArgs(cmd, lo)
	topLevel.AddCommand(cmd)
}
