package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/stats"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func statusText(st model.CharacterStatus) string {
	switch st {
	case model.StatusKnown:
		return green(string(st))
	case model.StatusStudy:
		return yellow(string(st))
	}
	return string(st)
}

func optInt(n *int) string {
	if n == nil {
		return faint("-")
	}
	return strconv.Itoa(*n)
}

func title(w io.Writer, text string, count int) {
	_, _ = fmt.Fprintf(w, "%s %s\n", color.New(color.Bold, color.Underline).Sprint(text), faint(fmt.Sprintf("- %d", count)))
}

func printStates(w io.Writer, states []model.EnrichedState) {
	if len(states) == 0 {
		_, _ = fmt.Fprintln(w, faint(" none"))
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.AddRow(bold("Char"), bold("Status"), bold("Pinyin"), bold("HSK"), bold("Freq"), bold("Definition"))
	for _, s := range states {
		tbl.AddRow(s.Character, statusText(s.Status), s.Pinyin, optInt(s.HskLevel), optInt(s.Frequency), s.Definition)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func joinChars(items []model.EnrichedCharacter) string {
	chars := make([]string, 0, len(items))
	for _, it := range items {
		chars = append(chars, it.Character)
	}
	return strings.Join(chars, " ")
}

func printLogResult(w io.Writer, res *model.LogResult) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("New known"), len(res.NewKnown), green(joinChars(res.NewKnown)))
	tbl.AddRow(bold("Queued study"), len(res.QueuedStudy), yellow(joinChars(res.QueuedStudy)))
	tbl.AddRow(bold("Already known"), len(res.Skipped), faint(joinChars(res.Skipped)))
	tbl.AddRow(bold("Known total"), res.KnownCount, "")
	_, _ = fmt.Fprintln(w, tbl)

	for _, m := range res.Milestones {
		_, _ = fmt.Fprintln(w, color.New(color.FgHiMagenta, color.Bold).Sprintf("🎉 %d characters known!", m))
	}
}

func printEvents(w io.Writer, events []model.LogEvent) {
	if len(events) == 0 {
		_, _ = fmt.Fprintln(w, faint(" none"))
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold("When"), bold("Known"), bold("Study"), bold("Skipped"), bold("Text"))
	for _, e := range events {
		counts := map[model.LogAction]int{}
		for _, it := range e.Items {
			counts[it.Action]++
		}
		tbl.AddRow(e.CreatedAt.Local().Format("2006-01-02 15:04"),
			counts[model.ActionLoggedKnown], counts[model.ActionQueuedStudy], counts[model.ActionSkipped],
			strings.Join(strings.Fields(e.SourceText), " "))
	}
	_, _ = fmt.Fprintln(w, tbl)
}

// hskOrder は 1〜6 のあとに unknown
func hskOrder(counts model.HskCounts) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == stats.UnknownBucket || keys[j] == stats.UnknownBucket {
			return keys[j] == stats.UnknownBucket && keys[i] != stats.UnknownBucket
		}
		return keys[i] < keys[j]
	})
	return keys
}

func printSummary(w io.Writer, s *model.SummaryResponse) {
	_, _ = fmt.Fprintf(w, "%s %d / %d (%.1f%%)\n", bold("Known:"), s.KnownCount, s.ProgressTarget, s.ProgressRatio*100)
	_, _ = fmt.Fprintf(w, "%s %d\n\n", bold("Study:"), s.StudyCount)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("HSK"), bold("Known"), bold("Tracked"), bold("Dataset"))
	for _, k := range hskOrder(s.DatasetByHsk) {
		tbl.AddRow(k, s.KnownByHsk[k], s.TrackedByHsk[k], s.DatasetByHsk[k])
	}
	_, _ = fmt.Fprintln(w, tbl)
}
