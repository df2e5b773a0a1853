package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/verte-zerg/uelist/internal/model"
)

type fakeRecorder struct {
	runs []model.Run
	err  error
}

func (r *fakeRecorder) InsertRun(_ context.Context, run model.Run) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.runs = append(r.runs, run)
	return int64(len(r.runs)), nil
}

func newTestModel(tab string, rec RunRecorder) *Model {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewModel(Options{
		Config:   model.Config{Count: 100, Overscan: 2, Tab: tab, RecordRuns: true},
		Recorder: rec,
		Now:      func() time.Time { return now },
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// runCmd delivers the message of cmd back to the model.
func runCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m.Update(cmd())
}

func TestTabIndex(t *testing.T) {
	cases := []struct {
		name string
		want int
		ok   bool
	}{
		{"", tabInstructions, true},
		{"instructions", tabInstructions, true},
		{"Naive", tabNaive, true},
		{" optimized ", tabOptimized, true},
		{"other", 0, false},
	}
	for _, tc := range cases {
		got, ok := TabIndex(tc.name)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("TabIndex(%q) = %d, %v", tc.name, got, ok)
		}
	}
}

func TestInstructionsTabHasNoList(t *testing.T) {
	m := newTestModel("instructions", nil)
	if cmd := m.Init(); cmd != nil {
		t.Fatal("instructions tab must not load a catalog")
	}
	out := m.View()
	if !strings.Contains(out, "Render cost of a large list") {
		t.Fatalf("instructions missing:\n%s", out)
	}
	if lines := strings.Count(out, "\n") + 1; lines != 30 {
		t.Fatalf("expected 30 lines, got %d", lines)
	}
}

func TestSwitchTabRecordsRun(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel("naive", rec)
	runCmd(t, m, m.Init())
	m.View()

	_, cmd := m.Update(keyMsg("3"))
	if len(rec.runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(rec.runs))
	}
	run := rec.runs[0]
	if run.Variant != model.VariantNaive || run.Records != 100 || run.Counts.RowRenders != 100 {
		t.Fatalf("unexpected run: %+v", run)
	}
	if _, err := uuid.Parse(run.MountID); err != nil {
		t.Fatalf("expected uuid mount id, got %q", run.MountID)
	}

	runCmd(t, m, cmd)
	if out := m.View(); !strings.Contains(out, "Optimized list") {
		t.Fatalf("expected optimized tab:\n%s", out)
	}

	_, cmd = m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	if len(rec.runs) != 2 || rec.runs[1].Variant != model.VariantOptimized {
		t.Fatalf("expected optimized run on quit, got %+v", rec.runs)
	}
	if err := m.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnloadedListIsNotRecorded(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel("naive", rec)
	m.Init()
	m.Update(keyMsg("1"))
	if len(rec.runs) != 0 {
		t.Fatalf("expected no run, got %d", len(rec.runs))
	}
}

func TestStaleLoadAfterSwitchIsIgnored(t *testing.T) {
	m := newTestModel("naive", nil)
	stale := m.Init()
	_, cmd := m.Update(keyMsg("right"))
	m.Update(stale())
	if m.list.isLoaded() {
		t.Fatal("load of an unmounted view must be ignored")
	}
	runCmd(t, m, cmd)
	if !m.list.isLoaded() || m.list.variant != model.VariantOptimized {
		t.Fatal("expected fresh optimized view to load")
	}
}

func TestSearchCapturesTabKeys(t *testing.T) {
	m := newTestModel("optimized", nil)
	runCmd(t, m, m.Init())
	m.View()
	m.Update(keyMsg("/"))
	m.Update(keyMsg("1"))
	if m.active != tabOptimized {
		t.Fatal("tab keys must go to the search input")
	}
	if m.list.search.Value() != "1" {
		t.Fatalf("expected query \"1\", got %q", m.list.search.Value())
	}
}

func TestRecorderFailureIsCollected(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	m := newTestModel("optimized", rec)
	runCmd(t, m, m.Init())
	m.Update(keyMsg("q"))
	err := m.Err()
	if err == nil || !strings.Contains(err.Error(), "failed to record optimized run") {
		t.Fatalf("unexpected error: %v", err)
	}
}
