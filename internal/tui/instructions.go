package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const instructionsMarkdown = `# Render cost of a large list

The catalog holds generated teaching units (UE). Both list tabs show the same
data with the same search, ECTS threshold, selection and delete controls. Only
the way they render differs.

## Naive

Filtering and statistics run on every frame. Every matching row is rendered
into a scrollable container, even the ones off screen. Row handlers are rebuilt
each frame, so no row can be reused.

## Optimized

Filtering reruns only when the catalog, the query or the threshold change.
Statistics rerun only when the filtered rows or the selected count change.
Only the rows inside the visible window plus a few overscan rows are realized,
and a row renders again only when its record, selection, cursor or width change.

## Things to try

- Press ` + "`r`" + ` on both tabs and compare the rows rendered last frame.
- Toggle a row with ` + "`space`" + ` and watch the stats counter.
- Type in the search box with ` + "`/`" + ` and watch the filter counter.
- Tail the trace file to read one line per rendered row.

Switching tabs unmounts the list and records its counters as a run.
Use ` + "`uelist runs`" + ` afterward to compare variants.
`

func newInstructions(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.SetContent(renderInstructions(width))
	return vp
}

// renderInstructions renders the markdown for width cells, falling back to
// the raw text.
func renderInstructions(width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	style := "notty"
	if term.IsTerminal(int(os.Stdout.Fd())) {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(maxInt(20, width-4)),
	)
	if err != nil {
		return instructionsMarkdown
	}
	out, err := r.Render(instructionsMarkdown)
	if err != nil {
		return instructionsMarkdown
	}
	return strings.TrimRight(out, "\n")
}
