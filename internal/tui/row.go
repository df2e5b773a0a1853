package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/uelist/internal/model"
)

// Handlers receives row interactions. Its identity is part of RowProps, so a
// list that builds a new value per frame defeats row caching.
type Handlers interface {
	OnSelect(id int)
	OnDelete(id int)
}

// Action is a user interaction on one row.
type Action int

// Row actions.
const (
	ActionToggle Action = iota
	ActionDelete
)

// RowProps are every input of a rendered row. Two equal props render the
// same line.
type RowProps struct {
	Ue       model.Ue
	Selected bool
	Cursor   bool
	Width    int
	Handlers Handlers
}

// Row renders one record and dispatches its interactions.
type Row struct {
	Props RowProps
}

// Interact invokes the handler matching action with the record id.
func (r Row) Interact(action Action) {
	if r.Props.Handlers == nil {
		return
	}
	switch action {
	case ActionToggle:
		r.Props.Handlers.OnSelect(r.Props.Ue.ID)
	case ActionDelete:
		r.Props.Handlers.OnDelete(r.Props.Ue.ID)
	}
}

const (
	codeWidth  = 7
	ectsWidth  = 6
	deptWidth  = 13
	minTitle   = 10
	rowPadding = 1 + 1 + 3 + 1 + codeWidth + 2 + 2 + ectsWidth + 2 + deptWidth + 2 + 1
)

// Render returns the row as a single terminal line of Props.Width cells.
func (r Row) Render() string {
	p := r.Props
	width := p.Width
	if width <= 0 {
		width = defaultWidth
	}
	titleWidth := maxInt(minTitle, width-rowPadding)

	marker := " "
	if p.Cursor {
		marker = ">"
	}
	check := "[ ]"
	if p.Selected {
		check = "[x]"
	}
	var b strings.Builder
	b.WriteString(marker)
	b.WriteString(" ")
	b.WriteString(check)
	b.WriteString(" ")
	b.WriteString(runewidth.FillRight(p.Ue.Code, codeWidth))
	b.WriteString("  ")
	b.WriteString(runewidth.FillRight(runewidth.Truncate(p.Ue.Title, titleWidth, "..."), titleWidth))
	b.WriteString("  ")
	b.WriteString(runewidth.FillLeft(fmt.Sprintf("%d ECTS", p.Ue.Ects), ectsWidth))
	b.WriteString("  ")
	b.WriteString(runewidth.FillRight(runewidth.Truncate(p.Ue.Department, deptWidth, "..."), deptWidth))
	b.WriteString("  ")
	b.WriteString("x")
	line := b.String()

	switch {
	case p.Cursor && p.Selected:
		return cursorSelRow.Render(line)
	case p.Cursor:
		return cursorRow.Render(line)
	case p.Selected:
		return selectedRow.Render(line)
	default:
		return rowStyle.Render(line)
	}
}
