package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/uelist/internal/catalog"
	"github.com/verte-zerg/uelist/internal/derive"
	"github.com/verte-zerg/uelist/internal/generator"
	"github.com/verte-zerg/uelist/internal/model"
	"github.com/verte-zerg/uelist/internal/trace"
	"github.com/verte-zerg/uelist/internal/window"
)

// chromeLines is the height of everything above the rows.
const chromeLines = 6

var thresholds = []int{0, 1, 3, 5}

type catalogLoadedMsg struct {
	mountID int
	records []model.Ue
}

// frame is the input of one rows pass.
type frame struct {
	rows     []model.Ue
	sel      *catalog.Selection
	scroller *window.Scroller
	width    int
	height   int
	handlers Handlers
}

type rowsRenderer interface {
	handlers() Handlers
	render(f frame) string
}

type listOptions struct {
	variant  model.Variant
	mountID  int
	count    int
	overscan int
	logger   *zap.Logger
	now      func() time.Time
}

// listView is one mounted list tab. It lives from mount to unmount.
type listView struct {
	variant  model.Variant
	mountID  int
	runID    string
	count    int
	tracer   *trace.Tracer
	deriver  derive.Deriver
	renderer rowsRenderer

	catalog      *catalog.Catalog
	loaded       int
	selection    *catalog.Selection
	criteria     model.Criteria
	thresholdIdx int
	search       textinput.Model
	searching    bool
	scroller     window.Scroller

	// view and handlers belong to the last frame; interactions read them.
	view     derive.View
	handlers Handlers

	confirmID int
	width     int
	height    int
	startedAt time.Time
}

func newListView(opts listOptions) *listView {
	if opts.now == nil {
		opts.now = time.Now
	}
	if opts.logger == nil {
		opts.logger = zap.NewNop()
	}
	runID := uuid.NewString()
	tracer := trace.New(opts.logger.With(zap.String("mount", runID)), opts.variant)
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "title or code"
	search.Width = 28
	search.Cursor.SetMode(cursor.CursorStatic)

	l := &listView{
		variant:   opts.variant,
		mountID:   opts.mountID,
		runID:     runID,
		count:     opts.count,
		tracer:    tracer,
		selection: catalog.NewSelection(),
		search:    search,
		startedAt: opts.now(),
	}
	switch opts.variant {
	case model.VariantOptimized:
		l.deriver = derive.NewMemoized(tracer)
		l.renderer = newOptimizedRows(l, tracer, opts.overscan)
	default:
		l.deriver = derive.NewNaive(tracer)
		l.renderer = newNaiveRows(l, tracer)
	}
	return l
}

// Init starts the asynchronous catalog load.
func (l *listView) Init() tea.Cmd {
	mountID, count := l.mountID, l.count
	return func() tea.Msg {
		return catalogLoadedMsg{mountID: mountID, records: generator.Generate(count)}
	}
}

func (l *listView) resize(width, height int) {
	l.width = width
	l.height = height
}

// capturing reports whether the view consumes every key.
func (l *listView) capturing() bool {
	return l.searching || l.confirmID != 0
}

func (l *listView) isLoaded() bool {
	return l.catalog != nil
}

func (l *listView) run(endedAt time.Time) model.Run {
	return model.Run{
		MountID:   l.runID,
		Variant:   l.variant,
		StartedAt: l.startedAt,
		EndedAt:   endedAt,
		Records:   l.loaded,
		Counts:    l.tracer.Counts(),
	}
}

// Update applies one message to the list state.
func (l *listView) Update(msg tea.Msg, keys keyMap) tea.Cmd {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		if msg.mountID != l.mountID {
			return nil
		}
		l.catalog = catalog.New(msg.records)
		l.loaded = len(msg.records)
		l.tracer.CatalogGenerated(l.loaded)
		return nil
	case tea.KeyMsg:
		return l.handleKey(msg, keys)
	default:
		return nil
	}
}

func (l *listView) handleKey(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	if l.confirmID != 0 {
		switch {
		case key.Matches(msg, keys.Confirm):
			id := l.confirmID
			l.confirmID = 0
			if catalog.DeleteRecord(l.catalog, l.selection, id) {
				l.tracer.Deleted(id)
			}
		case key.Matches(msg, keys.Cancel):
			l.confirmID = 0
		}
		return nil
	}
	if l.searching {
		if key.Matches(msg, keys.Leave) {
			l.searching = false
			l.search.Blur()
			return nil
		}
		var cmd tea.Cmd
		l.search, cmd = l.search.Update(msg)
		if q := l.search.Value(); q != l.criteria.Query {
			l.criteria.Query = q
			l.scroller.Home()
		}
		return cmd
	}

	switch {
	case key.Matches(msg, keys.Search):
		l.searching = true
		return l.search.Focus()
	case key.Matches(msg, keys.Threshold):
		l.thresholdIdx = (l.thresholdIdx + 1) % len(thresholds)
		l.criteria.MinEcts = thresholds[l.thresholdIdx]
		l.scroller.Home()
	case key.Matches(msg, keys.Toggle):
		l.interact(ActionToggle)
	case key.Matches(msg, keys.Delete):
		l.interact(ActionDelete)
	case key.Matches(msg, keys.SelectAll):
		l.selection.SelectAllVisible(derive.IDs(l.view.Filtered))
	case key.Matches(msg, keys.Rerender):
		l.tracer.ForcedRender()
	case key.Matches(msg, keys.Up):
		l.scroller.Move(-1)
	case key.Matches(msg, keys.Down):
		l.scroller.Move(1)
	case key.Matches(msg, keys.PageUp):
		l.scroller.Page(-1)
	case key.Matches(msg, keys.PageDown):
		l.scroller.Page(1)
	case key.Matches(msg, keys.Home):
		l.scroller.Home()
	case key.Matches(msg, keys.End):
		l.scroller.End()
	}
	return nil
}

// interact dispatches action to the row under the cursor through the
// handlers of the last frame.
func (l *listView) interact(action Action) {
	idx := l.scroller.Cursor
	if idx < 0 || idx >= len(l.view.Filtered) {
		return
	}
	Row{Props: RowProps{Ue: l.view.Filtered[idx], Handlers: l.handlers}}.Interact(action)
}

func (l *listView) rowsHeight() int {
	return maxInt(1, l.height-chromeLines)
}

func (l *listView) rowWidth() int {
	if l.width <= 0 {
		return defaultWidth
	}
	return l.width
}

// View renders one frame. The confirmation modal suspends list rendering.
func (l *listView) View() string {
	if l.confirmID != 0 {
		return l.renderConfirm()
	}

	l.tracer.BeginFrame()
	l.view = l.deriver.Derive(l.catalog, l.criteria, l.selection.Len())
	l.scroller.Clamp(len(l.view.Filtered))
	l.scroller.Resize(l.rowsHeight())
	l.handlers = l.renderer.handlers()
	body := l.renderer.render(frame{
		rows:     l.view.Filtered,
		sel:      l.selection,
		scroller: &l.scroller,
		width:    l.rowWidth(),
		height:   l.rowsHeight(),
		handlers: l.handlers,
	})
	l.tracer.EndFrame()

	switch {
	case l.catalog == nil:
		body = mutedStyle.Render("Loading...")
	case len(l.view.Filtered) == 0:
		body = mutedStyle.Render("No UE found")
	}
	return strings.Join(append(l.renderChrome(), body), "\n")
}

func (l *listView) renderChrome() []string {
	width := l.rowWidth()

	title := naiveStyle.Render("Naive list")
	about := "recomputes and renders every row on each frame"
	if l.variant == model.VariantOptimized {
		title = optimStyle.Render("Optimized list")
		about = "memoized derivation, cached rows, windowed rendering"
	}

	c := l.tracer.Counts()
	debug := debugStyle.Render(fmt.Sprintf(
		"rows last frame %s · row renders %s · filters %d · stats %d · forced %d",
		humanize.Comma(int64(c.LastFrameRows)),
		humanize.Comma(int64(c.RowRenders)),
		c.FilterRuns, c.StatsRuns, c.ForcedRenders,
	))

	s := l.view.Stats
	filterLine := strings.Join([]string{
		l.search.View(),
		statLabel.Render("ECTS ") + statValue.Render(thresholdLabel(l.criteria.MinEcts)),
		statLabel.Render("[a] ") + statValue.Render(selectAllLabel(s)),
	}, "   ")

	statsLine := strings.Join([]string{
		statLabel.Render("Shown ") + statValue.Render(humanize.Comma(int64(s.Total))),
		statLabel.Render("Selected ") + statValue.Render(humanize.Comma(int64(s.Selected))),
		statLabel.Render("ECTS ") + statValue.Render(humanize.Comma(int64(s.TotalEcts))),
		statLabel.Render("Mean ") + statValue.Render(fmt.Sprintf("%.1f", s.AvgEcts)),
	}, "  ")

	return []string{
		titleStyle.Render(title) + "  " + headerStyle.Render(about),
		debug,
		filterLine,
		statsLine,
		departmentLine(s.ByDepartment),
		headerStyle.Render(strings.Repeat("─", width)),
	}
}

func (l *listView) renderConfirm() string {
	code := ""
	for _, ue := range l.view.Filtered {
		if ue.ID == l.confirmID {
			code = " (" + ue.Code + ")"
			break
		}
	}
	text := fmt.Sprintf("Delete UE %d%s?\n\n[y] yes   [n] no", l.confirmID, code)
	box := modalStyle.Width(modalWidth(l.width)).Render(text)
	if l.width <= 0 || l.height <= 0 {
		return box
	}
	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, box)
}

func thresholdLabel(minEcts int) string {
	if minEcts <= 0 {
		return "All ECTS"
	}
	return fmt.Sprintf("≥ %d ECTS", minEcts)
}

func selectAllLabel(s model.Stats) string {
	if s.Selected == s.Total {
		return "Clear selection"
	}
	return "Select all"
}

func departmentLine(groups []model.DepartmentCount) string {
	if len(groups) > 5 {
		groups = groups[:5]
	}
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, statLabel.Render(g.Department+" ")+statValue.Render(humanize.Comma(int64(g.Count))))
	}
	return strings.Join(parts, "  ")
}

// listHandlers wires row interactions back into the list state.
type listHandlers struct {
	list *listView
}

func (h *listHandlers) OnSelect(id int) {
	h.list.selection.Toggle(id)
}

func (h *listHandlers) OnDelete(id int) {
	h.list.confirmID = id
}
