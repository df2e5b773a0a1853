package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/uelist/internal/model"
)

const sparkChars = " .:-=+*#%@"

// RowsPerRecord returns how many row renders a run spent per catalog record.
func RowsPerRecord(run model.Run) float64 {
	if run.Records <= 0 {
		return 0
	}
	return float64(run.Counts.RowRenders) / float64(run.Records)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderRuns prints one line per run, truncated to width.
func RenderRuns(w io.Writer, runs []model.Run, width int) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Runs"); err != nil {
		return err
	}
	headers := []string{"ID", "Variant", "Ended", "Duration", "Records", "Row renders", "Rows/record", "Filters", "Stats", "Forced", "Deleted"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", run.ID),
			string(run.Variant),
			run.EndedAt.Local().Format("2006-01-02 15:04"),
			run.EndedAt.Sub(run.StartedAt).Round(time.Second).String(),
			fmt.Sprintf("%d", run.Records),
			fmt.Sprintf("%d", run.Counts.RowRenders),
			fmt.Sprintf("%.2f", RowsPerRecord(run)),
			fmt.Sprintf("%d", run.Counts.FilterRuns),
			fmt.Sprintf("%d", run.Counts.StatsRuns),
			fmt.Sprintf("%d", run.Counts.ForcedRenders),
			fmt.Sprintf("%d", run.Counts.Deletions),
		})
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true, 10: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, truncateLine(line, width)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderSummary prints per-variant totals and a row render sparkline per variant.
func RenderSummary(w io.Writer, report Report, width int) error {
	if len(report.Summaries) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	headers := []string{"Variant", "Runs", "Row renders", "Avg rows/run", "Filters", "Stats", "Trend"}
	rows := make([][]string, 0, len(report.Summaries))
	for _, sum := range report.Summaries {
		avg := 0.0
		if sum.Runs > 0 {
			avg = float64(sum.RowRenders) / float64(sum.Runs)
		}
		rows = append(rows, []string{
			string(sum.Variant),
			fmt.Sprintf("%d", sum.Runs),
			fmt.Sprintf("%d", sum.RowRenders),
			fmt.Sprintf("%.1f", avg),
			fmt.Sprintf("%d", sum.FilterRuns),
			fmt.Sprintf("%d", sum.StatsRuns),
			Sparkline(rowRenderSeries(report.Runs, sum.Variant)),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, truncateLine(line, width)); err != nil {
			return err
		}
	}
	return nil
}

func rowRenderSeries(runs []model.Run, variant model.Variant) []float64 {
	var out []float64
	for _, run := range runs {
		if run.Variant == variant {
			out = append(out, float64(run.Counts.RowRenders))
		}
	}
	return out
}
