package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-mlb-hits/internal/classifier"
	"github.com/pable/go-mlb-hits/internal/model"
	"github.com/pable/go-mlb-hits/internal/pipeline"
	"github.com/pable/go-mlb-hits/internal/predictions"
	"github.com/pable/go-mlb-hits/internal/schedule"
)

var (
	cHeader = color.New(color.FgCyan, color.Bold)
	cMuted  = color.New(color.Faint)
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// Heading prints a section title.
func Heading(w io.Writer, title string) {
	fmt.Fprintln(w)
	cHeader.Fprintln(w, title)
}

// Table prints string rows under the given column names.
func Table(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	hdr := make([]any, len(cols))
	for i, c := range cols {
		hdr[i] = c
	}
	table.Header(hdr...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
}

// PrintStageCounts prints how many rows survived each pipeline stage.
func PrintStageCounts(w io.Writer, c pipeline.Counts) {
	Heading(w, "Pipeline stages")
	Table(w, []string{"STAGE", "ROWS"}, [][]string{
		{"events", strconv.Itoa(c.Events)},
		{"with batter id", strconv.Itoa(c.WithBatter)},
		{"id resolved", strconv.Itoa(c.Resolved)},
		{"joined to season stats", strconv.Itoa(c.Joined)},
		{"complete features", strconv.Itoa(c.Usable)},
	})
}

// PrintEvaluation prints the held-out classification report.
func PrintEvaluation(w io.Writer, ev classifier.Evaluation) {
	Heading(w, fmt.Sprintf("Held-out evaluation  |  accuracy %.3f  |  %d rows", ev.Accuracy, ev.Support))
	rows := make([][]string, 0, len(ev.Classes)+2)
	for _, c := range ev.Classes {
		rows = append(rows, metricRow(labelName(c.Label), c))
	}
	rows = append(rows, metricRow("macro avg", ev.Macro), metricRow("weighted avg", ev.Weighted))
	Table(w, []string{"CLASS", "PRECISION", "RECALL", "F1", "SUPPORT"}, rows)
}

func metricRow(name string, c classifier.ClassMetrics) []string {
	return []string{
		name,
		fmt.Sprintf("%.2f", c.Precision),
		fmt.Sprintf("%.2f", c.Recall),
		fmt.Sprintf("%.2f", c.F1),
		strconv.Itoa(c.Support),
	}
}

func labelName(l model.Label) string {
	if l == model.Hit {
		return "hit"
	}
	return "no hit"
}

// PrintPredictionSummary prints row totals and the count per predicted label.
func PrintPredictionSummary(w io.Writer, set *predictions.Set) {
	counts := set.LabelCounts()
	Heading(w, "Predictions")
	fmt.Fprintf(w, "Total rows: %d  |  predicted hit: %d  |  predicted no hit: %d\n",
		set.Len(), counts[model.Hit], counts[model.NoHit])
}

// PrintRows prints the chosen columns of set. Missing cells show as "—".
func PrintRows(w io.Writer, title string, set *predictions.Set, cols []string) {
	Heading(w, title)
	if set.Len() == 0 {
		cMuted.Fprintln(w, "(no rows)")
		return
	}
	rows := make([][]string, 0, set.Len())
	for i := 0; i < set.Len(); i++ {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = cell(set.Get(i, c))
		}
		rows = append(rows, row)
	}
	Table(w, cols, rows)
}

// PrintTeamCounts prints the per-team counts with a bar, at most limit rows
// (all when limit <= 0).
func PrintTeamCounts(w io.Writer, title string, counts []predictions.TeamCount, limit int) {
	Heading(w, title)
	if len(counts) == 0 {
		cMuted.Fprintln(w, "(no rows)")
		return
	}
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	maxCount := counts[0].Count
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Team, strconv.Itoa(c.Count), bar(c.Count, maxCount, 30)})
	}
	Table(w, []string{"TEAM", "HITS", ""}, rows)
}

// PrintBoard prints the filtered board: one row per predicted hit with the
// team's logo link.
func PrintBoard(w io.Writer, set *predictions.Set) {
	Heading(w, fmt.Sprintf("Filtered predictions (%d)", set.Len()))
	if set.Len() == 0 {
		cMuted.Fprintln(w, "(no rows match the filters)")
		return
	}
	rows := make([][]string, 0, set.Len())
	for i := 0; i < set.Len(); i++ {
		team := set.Get(i, model.ColTeam)
		rows = append(rows, []string{
			cell(set.Get(i, model.ColName)),
			cell(team),
			cell(set.Get(i, model.ColLaunchSpeed)),
			cell(set.Get(i, model.ColWRCPlus)),
			cell(predictions.TeamLogoURL(team)),
		})
	}
	Table(w, []string{"NAME", "TEAM", "LAUNCH_SPEED", "WRC+", "LOGO"}, rows)
}

// PrintSchedule prints the day's matchups.
func PrintSchedule(w io.Writer, games []schedule.Game) {
	Heading(w, fmt.Sprintf("Games (%d)", len(games)))
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{g.Date.Format(time.DateOnly), g.Away, "@", g.Home})
	}
	Table(w, []string{"DATE", "AWAY", "", "HOME"}, rows)
}

// PrintRuns prints the run ledger.
func PrintRuns(w io.Writer, runs []model.RunRecord) {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		acc := "—"
		if r.Accuracy != nil {
			acc = fmt.Sprintf("%.3f", *r.Accuracy)
		}
		rows = append(rows, []string{
			shortID(r.ID),
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Command,
			string(r.Status),
			strconv.Itoa(r.Events),
			strconv.Itoa(r.Usable),
			strconv.Itoa(r.PredictedHits),
			acc,
			r.Duration().Round(time.Millisecond).String(),
			r.Message,
		})
	}
	Table(w, []string{"ID", "STARTED", "CMD", "STATUS", "EVENTS", "USABLE", "HITS", "ACC", "TOOK", "NOTE"}, rows)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func cell(s string) string {
	if model.IsNull(s) {
		return "—"
	}
	return s
}

func bar(n, maxN, width int) string {
	if maxN <= 0 {
		return ""
	}
	k := n * width / maxN
	if k == 0 && n > 0 {
		k = 1
	}
	out := make([]rune, k)
	for i := range out {
		out[i] = '█'
	}
	return string(out)
}
