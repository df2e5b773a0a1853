package stats

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/uelist/internal/model"
)

// RenderDerivation prints the statistics of one filtered view and its
// department groups.
func RenderDerivation(w io.Writer, records int, criteria model.Criteria, s model.Stats, width int) error {
	query := criteria.Query
	if query == "" {
		query = "(none)"
	}
	lines := formatTable(
		[]string{"Metric", "Value"},
		[][]string{
			{"Records", humanize.Comma(int64(records))},
			{"Query", query},
			{"Min ECTS", fmt.Sprintf("%d", criteria.MinEcts)},
			{"Shown", humanize.Comma(int64(s.Total))},
			{"Selected", humanize.Comma(int64(s.Selected))},
			{"ECTS total", humanize.Comma(int64(s.TotalEcts))},
			{"ECTS mean", fmt.Sprintf("%.1f", s.AvgEcts)},
		},
		map[int]bool{1: true},
	)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, truncateLine(line, width)); err != nil {
			return err
		}
	}
	if len(s.ByDepartment) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	rows := make([][]string, 0, len(s.ByDepartment))
	for _, g := range s.ByDepartment {
		rows = append(rows, []string{g.Department, humanize.Comma(int64(g.Count))})
	}
	for _, line := range formatTable([]string{"Department", "Count"}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, truncateLine(line, width)); err != nil {
			return err
		}
	}
	return nil
}
