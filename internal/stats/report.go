// Package stats renders reports over recorded list view runs.
package stats

import (
	"context"
	"os"

	"golang.org/x/term"

	"github.com/verte-zerg/uelist/internal/model"
	"github.com/verte-zerg/uelist/internal/store"
)

const terminalWidthBackup = 80

// Report contains precomputed data for run rendering.
type Report struct {
	Runs      []model.Run
	Summaries []model.RunSummary
}

// BuildReport loads runs matching filter and the per-variant totals.
func BuildReport(ctx context.Context, st *store.Store, filter model.RunFilter) (Report, error) {
	runs, err := st.ListRuns(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	sums, err := st.SummarizeRuns(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{Runs: runs, Summaries: sums}, nil
}

// TerminalWidth returns the stdout width or a fallback when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
