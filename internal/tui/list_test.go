package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/uelist/internal/model"
)

const (
	testRows     = 10
	testOverscan = 5
)

func newTestList(variant model.Variant, count int) *listView {
	l := newListView(listOptions{variant: variant, mountID: 1, count: count, overscan: testOverscan})
	l.resize(80, chromeLines+testRows)
	return l
}

func loadedList(t *testing.T, variant model.Variant, count int) *listView {
	t.Helper()
	l := newTestList(variant, count)
	msg := l.Init()()
	if _, ok := msg.(catalogLoadedMsg); !ok {
		t.Fatalf("expected catalogLoadedMsg, got %T", msg)
	}
	l.Update(msg, defaultKeyMap())
	if !l.isLoaded() {
		t.Fatal("catalog not loaded")
	}
	return l
}

func press(l *listView, keys ...string) {
	km := defaultKeyMap()
	for _, k := range keys {
		l.Update(keyMsg(k), km)
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func typeText(l *listView, text string) {
	for _, r := range text {
		press(l, string(r))
	}
}

func TestLoadingState(t *testing.T) {
	l := newTestList(model.VariantNaive, 10)
	if out := l.View(); !strings.Contains(out, "Loading...") {
		t.Fatalf("expected loading state, got:\n%s", out)
	}
	l.Update(catalogLoadedMsg{mountID: 99, records: nil}, defaultKeyMap())
	if l.isLoaded() {
		t.Fatal("stale load must be ignored")
	}
}

func TestNaiveRendersEveryRowEachFrame(t *testing.T) {
	l := loadedList(t, model.VariantNaive, 50)
	l.View()
	if got := l.tracer.Counts().LastFrameRows; got != 50 {
		t.Fatalf("expected 50 rows, got %d", got)
	}

	press(l, " ")
	l.View()
	c := l.tracer.Counts()
	if c.LastFrameRows != 50 {
		t.Fatalf("toggle frame: expected 50 rows, got %d", c.LastFrameRows)
	}
	if c.RowRenders != 100 {
		t.Fatalf("expected 100 total row renders, got %d", c.RowRenders)
	}
	if c.FilterRuns != 2 || c.StatsRuns != 2 {
		t.Fatalf("naive must recompute each frame, got filters=%d stats=%d", c.FilterRuns, c.StatsRuns)
	}
	if l.view.Stats.Selected != 1 {
		t.Fatalf("expected 1 selected, got %d", l.view.Stats.Selected)
	}

	press(l, "r")
	l.View()
	if got := l.tracer.Counts().LastFrameRows; got != 50 {
		t.Fatalf("forced frame: expected 50 rows, got %d", got)
	}
}

func TestNaiveHandlersChangeEveryFrame(t *testing.T) {
	l := loadedList(t, model.VariantNaive, 5)
	l.View()
	first := l.handlers
	l.View()
	if first == l.handlers {
		t.Fatal("naive handlers must be rebuilt per frame")
	}
}

func TestOptimizedFirstFrameIsWindow(t *testing.T) {
	l := loadedList(t, model.VariantOptimized, 1000)
	l.View()
	c := l.tracer.Counts()
	if c.LastFrameRows != testRows+testOverscan {
		t.Fatalf("expected %d rows, got %d", testRows+testOverscan, c.LastFrameRows)
	}
	if c.FilterRuns != 1 || c.StatsRuns != 1 {
		t.Fatalf("expected one computation each, got filters=%d stats=%d", c.FilterRuns, c.StatsRuns)
	}
	if l.view.Stats.Total != 1000 {
		t.Fatalf("expected total 1000, got %d", l.view.Stats.Total)
	}
}

func TestOptimizedToggleRendersOneRow(t *testing.T) {
	l := loadedList(t, model.VariantOptimized, 1000)
	l.View()
	before := l.tracer.Counts()
	first := l.handlers

	press(l, " ")
	l.View()
	c := l.tracer.Counts()
	if c.LastFrameRows != 1 {
		t.Fatalf("expected 1 row re-rendered, got %d", c.LastFrameRows)
	}
	if c.FilterRuns != before.FilterRuns {
		t.Fatalf("toggle must not refilter, got %d -> %d", before.FilterRuns, c.FilterRuns)
	}
	if c.StatsRuns != before.StatsRuns+1 {
		t.Fatalf("toggle must recompute stats once, got %d -> %d", before.StatsRuns, c.StatsRuns)
	}
	if l.handlers != first {
		t.Fatal("optimized handlers must be stable")
	}
}

func TestOptimizedForcedRenderIsFree(t *testing.T) {
	l := loadedList(t, model.VariantOptimized, 1000)
	l.View()
	before := l.tracer.Counts()

	press(l, "r")
	l.View()
	c := l.tracer.Counts()
	if c.LastFrameRows != 0 {
		t.Fatalf("expected 0 rows, got %d", c.LastFrameRows)
	}
	if c.FilterRuns != before.FilterRuns || c.StatsRuns != before.StatsRuns {
		t.Fatalf("forced render must not recompute, got %+v", c)
	}
	if c.ForcedRenders != 1 {
		t.Fatalf("expected 1 forced render, got %d", c.ForcedRenders)
	}
}

func TestOptimizedCursorMoveRendersTwoRows(t *testing.T) {
	l := loadedList(t, model.VariantOptimized, 1000)
	l.View()
	press(l, "down")
	l.View()
	if got := l.tracer.Counts().LastFrameRows; got != 2 {
		t.Fatalf("expected 2 rows, got %d", got)
	}
}

func TestSearchFiltersRows(t *testing.T) {
	l := loadedList(t, model.VariantOptimized, 1000)
	l.View()
	press(l, "/")
	if !l.capturing() {
		t.Fatal("search must capture keys")
	}
	typeText(l, "UE00001")
	press(l, "enter")
	if l.capturing() {
		t.Fatal("enter must leave search")
	}
	out := l.View()
	if len(l.view.Filtered) != 1 || l.view.Filtered[0].Code != "UE00001" {
		t.Fatalf("unexpected filtered rows: %+v", l.view.Filtered)
	}
	if !strings.Contains(out, "UE00001") {
		t.Fatalf("row missing from view:\n%s", out)
	}

	press(l, "/")
	typeText(l, "zzz")
	press(l, "esc")
	if out := l.View(); !strings.Contains(out, "No UE found") {
		t.Fatalf("expected empty state, got:\n%s", out)
	}
}

func TestThresholdCycles(t *testing.T) {
	l := loadedList(t, model.VariantNaive, 120)
	want := []string{"≥ 1 ECTS", "≥ 3 ECTS", "≥ 5 ECTS", "All ECTS"}
	for _, label := range want {
		press(l, "e")
		out := l.View()
		if !strings.Contains(out, label) {
			t.Fatalf("expected %q in:\n%s", label, out)
		}
	}
	press(l, "e", "e", "e")
	l.View()
	if l.criteria.MinEcts != 5 || len(l.view.Filtered) != 40 {
		t.Fatalf("threshold 5: got min=%d rows=%d", l.criteria.MinEcts, len(l.view.Filtered))
	}
}

func TestSelectAllLabel(t *testing.T) {
	l := loadedList(t, model.VariantOptimized, 20)
	if out := l.View(); !strings.Contains(out, "Select all") {
		t.Fatalf("expected select all label:\n%s", out)
	}
	press(l, "a")
	out := l.View()
	if l.view.Stats.Selected != 20 || !strings.Contains(out, "Clear selection") {
		t.Fatalf("expected all selected, got %d:\n%s", l.view.Stats.Selected, out)
	}
	press(l, "a")
	l.View()
	if l.view.Stats.Selected != 0 {
		t.Fatalf("second select-all must clear, got %d", l.view.Stats.Selected)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	for _, variant := range []model.Variant{model.VariantNaive, model.VariantOptimized} {
		l := loadedList(t, variant, 30)
		l.View()
		press(l, " ")
		l.View()
		before := l.tracer.Counts()

		press(l, "d")
		out := l.View()
		if !strings.Contains(out, "Delete UE 1 (UE00001)?") {
			t.Fatalf("%s: expected confirmation, got:\n%s", variant, out)
		}
		if l.tracer.Counts() != before {
			t.Fatalf("%s: modal frame must not render rows", variant)
		}

		press(l, "x", "r", "n")
		l.View()
		if l.catalog.Len() != 30 || l.selection.Len() != 1 {
			t.Fatalf("%s: cancel must keep state, got len=%d selected=%d", variant, l.catalog.Len(), l.selection.Len())
		}
		if l.tracer.Counts().ForcedRenders != 0 {
			t.Fatalf("%s: keys behind the modal must be ignored", variant)
		}

		press(l, "d", "y")
		l.View()
		if l.catalog.Len() != 29 || l.selection.Len() != 0 {
			t.Fatalf("%s: confirm must delete, got len=%d selected=%d", variant, l.catalog.Len(), l.selection.Len())
		}
		if l.catalog.Contains(1) {
			t.Fatalf("%s: record 1 still present", variant)
		}
		if l.tracer.Counts().Deletions != 1 {
			t.Fatalf("%s: expected one deletion", variant)
		}
	}
}

func TestStatsPanel(t *testing.T) {
	l := loadedList(t, model.VariantOptimized, 1000)
	out := l.View()
	for _, needle := range []string{"Shown 1,000", "ECTS 3,496", "Mean 3.5", "Informatique 200", "Biologie 200"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("missing %q in:\n%s", needle, out)
		}
	}
}
