// Package tui provides the Bubble Tea page with the instructions and the two
// list variants.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/uelist/internal/model"
)

// RunRecorder persists the counters of an unmounted list view.
type RunRecorder interface {
	InsertRun(ctx context.Context, run model.Run) (int64, error)
}

// Options configures the page.
type Options struct {
	Config   model.Config
	Logger   *zap.Logger
	Recorder RunRecorder
	Now      func() time.Time
}

const (
	tabInstructions = iota
	tabNaive
	tabOptimized
)

var tabNames = []string{"Instructions", "Naive", "Optimized"}

// navLines is the height of the bordered tab bar.
const navLines = 3

// TabIndex maps a configured tab name to its index.
func TabIndex(name string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "instructions":
		return tabInstructions, true
	case "naive":
		return tabNaive, true
	case "optimized":
		return tabOptimized, true
	default:
		return 0, false
	}
}

func tabVariant(tab int) (model.Variant, bool) {
	switch tab {
	case tabNaive:
		return model.VariantNaive, true
	case tabOptimized:
		return model.VariantOptimized, true
	default:
		return "", false
	}
}

// Model implements the tabbed page.
type Model struct {
	opts         Options
	keys         keyMap
	help         help.Model
	active       int
	instructions viewport.Model
	list         *listView
	mounts       int
	width        int
	height       int
	errs         []error
}

// NewModel constructs the page with the configured tab active.
func NewModel(opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	active, ok := TabIndex(opts.Config.Tab)
	if !ok {
		active = tabInstructions
	}
	return &Model{
		opts:         opts,
		keys:         defaultKeyMap(),
		help:         help.New(),
		active:       active,
		instructions: newInstructions(defaultWidth, 20),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.mount()
}

// Err returns the errors collected while the page ran.
func (m *Model) Err() error {
	return errors.Join(m.errs...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.instructions.Width = msg.Width
		m.instructions.Height = m.contentHeight()
		m.instructions.SetContent(renderInstructions(msg.Width))
		if m.list != nil {
			m.list.resize(msg.Width, m.contentHeight())
		}
		return m, nil
	case catalogLoadedMsg:
		if m.list != nil {
			return m, m.list.Update(msg, m.keys)
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.list != nil && m.list.capturing() {
		if msg.Type == tea.KeyCtrlC {
			m.unmount()
			return tea.Quit
		}
		return m.list.Update(msg, m.keys)
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.unmount()
		return tea.Quit
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.active + len(tabNames) - 1) % len(tabNames))
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.active + 1) % len(tabNames))
	case key.Matches(msg, m.keys.Tab1):
		return m.switchTab(tabInstructions)
	case key.Matches(msg, m.keys.Tab2):
		return m.switchTab(tabNaive)
	case key.Matches(msg, m.keys.Tab3):
		return m.switchTab(tabOptimized)
	}
	if m.list != nil {
		return m.list.Update(msg, m.keys)
	}
	var cmd tea.Cmd
	m.instructions, cmd = m.instructions.Update(msg)
	return cmd
}

func (m *Model) switchTab(tab int) tea.Cmd {
	if tab == m.active {
		return nil
	}
	m.unmount()
	m.active = tab
	return m.mount()
}

func (m *Model) mount() tea.Cmd {
	variant, ok := tabVariant(m.active)
	if !ok {
		return nil
	}
	m.mounts++
	m.list = newListView(listOptions{
		variant:  variant,
		mountID:  m.mounts,
		count:    m.opts.Config.Count,
		overscan: m.opts.Config.Overscan,
		logger:   m.opts.Logger,
		now:      m.opts.Now,
	})
	m.list.resize(m.width, m.contentHeight())
	return m.list.Init()
}

func (m *Model) unmount() {
	if m.list == nil {
		return
	}
	list := m.list
	m.list = nil
	if !list.isLoaded() || !m.opts.Config.RecordRuns || m.opts.Recorder == nil {
		return
	}
	if _, err := m.opts.Recorder.InsertRun(context.Background(), list.run(m.opts.Now())); err != nil {
		m.errs = append(m.errs, fmt.Errorf("failed to record %s run: %w", list.variant, err))
	}
}

func (m *Model) contentHeight() int {
	return maxInt(1, m.height-navLines-1)
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	if m.list != nil {
		content = m.list.View()
	} else {
		content = m.instructions.View()
	}
	if m.width > 0 && m.height > 0 {
		content = fitLines(content, m.width, m.contentHeight())
	}
	return m.renderNav() + "\n" + content + "\n" + m.renderFooter()
}

func (m *Model) renderNav() string {
	items := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == m.active {
			items = append(items, activeNavStyle.Render(label))
		} else {
			items = append(items, inactiveNavStyle.Render(label))
		}
	}
	nav := lipgloss.JoinHorizontal(lipgloss.Top, items...)
	return padLines(nav, m.width)
}

func (m *Model) renderFooter() string {
	if len(m.errs) > 0 {
		return errorStyle.Render(m.errs[len(m.errs)-1].Error())
	}
	return m.help.View(m.keys)
}
