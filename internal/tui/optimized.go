package tui

import (
	"strings"

	"github.com/verte-zerg/uelist/internal/trace"
)

type cachedRow struct {
	props RowProps
	line  string
}

// optimizedRows realizes only the rows of the scroll window and reuses a
// cached line while its props stay equal.
type optimizedRows struct {
	tracer   *trace.Tracer
	overscan int
	stable   Handlers
	cache    map[int]cachedRow
}

func newOptimizedRows(l *listView, tracer *trace.Tracer, overscan int) *optimizedRows {
	if overscan < 0 {
		overscan = 0
	}
	return &optimizedRows{
		tracer:   tracer,
		overscan: overscan,
		stable:   &listHandlers{list: l},
		cache:    map[int]cachedRow{},
	}
}

func (o *optimizedRows) handlers() Handlers {
	return o.stable
}

func (o *optimizedRows) render(f frame) string {
	realized := f.scroller.Window(o.overscan)
	visible := f.scroller.Visible()

	next := make(map[int]cachedRow, realized.Len())
	lines := make([]string, 0, visible.Len())
	for i := realized.Start; i < realized.End; i++ {
		ue := f.rows[i]
		props := RowProps{
			Ue:       ue,
			Selected: f.sel.Has(ue.ID),
			Cursor:   i == f.scroller.Cursor,
			Width:    f.width,
			Handlers: f.handlers,
		}
		entry, ok := o.cache[ue.ID]
		if !ok || entry.props != props {
			entry = cachedRow{props: props, line: Row{Props: props}.Render()}
			o.tracer.RowRendered(ue)
		}
		next[ue.ID] = entry
		if visible.Contains(i) {
			lines = append(lines, entry.line)
		}
	}
	// Rows that left the window are unmounted.
	o.cache = next
	return strings.Join(lines, "\n")
}
