package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/verte-zerg/uelist/internal/trace"
)

// naiveRows renders every filtered row into a scrollable viewport on each
// frame and hands out fresh handlers every time.
type naiveRows struct {
	list     *listView
	tracer   *trace.Tracer
	viewport viewport.Model
}

func newNaiveRows(l *listView, tracer *trace.Tracer) *naiveRows {
	return &naiveRows{
		list:     l,
		tracer:   tracer,
		viewport: viewport.New(defaultWidth, 1),
	}
}

func (n *naiveRows) handlers() Handlers {
	return &listHandlers{list: n.list}
}

func (n *naiveRows) render(f frame) string {
	lines := make([]string, 0, len(f.rows))
	for i, ue := range f.rows {
		row := Row{Props: RowProps{
			Ue:       ue,
			Selected: f.sel.Has(ue.ID),
			Cursor:   i == f.scroller.Cursor,
			Width:    f.width,
			Handlers: f.handlers,
		}}
		lines = append(lines, row.Render())
		n.tracer.RowRendered(ue)
	}
	n.viewport.Width = f.width
	n.viewport.Height = f.height
	n.viewport.SetContent(strings.Join(lines, "\n"))
	n.viewport.SetYOffset(f.scroller.Offset)
	return n.viewport.View()
}
