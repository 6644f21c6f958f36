package overlay

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/ui/board"
)

// PanelAction is a request from the record panel to the board
type PanelAction int

const (
	PanelClose PanelAction = iota
	PanelCloseAndRefresh
	PanelEdit
	PanelNewWindow
)

// PanelActionMsg is sent when a panel key asks for a board operation
type PanelActionMsg struct {
	Action PanelAction
}

// RecordPanel shows the open record beside the board. It scrolls but
// performs no operations itself; keys become PanelActionMsg.
type RecordPanel struct {
	record  domain.Record
	fields  []board.Field
	lane    string
	scrollY int
	styles  *Styles
}

// NewRecordPanel creates a panel for rec, listing fields first
func NewRecordPanel(rec domain.Record, fields []board.Field, lane string) *RecordPanel {
	return &RecordPanel{
		record: rec,
		fields: fields,
		lane:   lane,
		styles: New(),
	}
}

// RecordID returns the id of the record shown
func (p *RecordPanel) RecordID() string {
	return p.record.ID
}

// Update handles key presses
func (p *RecordPanel) Update(msg tea.Msg) (*RecordPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch keyMsg.String() {
	case "esc", "q":
		return p, panelCmd(PanelClose)
	case "r":
		return p, panelCmd(PanelCloseAndRefresh)
	case "e":
		return p, panelCmd(PanelEdit)
	case "o":
		return p, panelCmd(PanelNewWindow)
	case "j", "down":
		p.scrollY++
	case "k", "up":
		if p.scrollY > 0 {
			p.scrollY--
		}
	case "g":
		p.scrollY = 0
	}
	return p, nil
}

func panelCmd(a PanelAction) tea.Cmd {
	return func() tea.Msg { return PanelActionMsg{Action: a} }
}

// Render draws the panel into a width x height box
func (p *RecordPanel) Render(width, height int) string {
	inner := max(width-4, 10)
	lines := p.lines(inner)

	// Title, blank line and border take four rows
	view := max(height-4, 1)
	p.scrollY = min(p.scrollY, max(len(lines)-view, 0))
	visible := lines[p.scrollY:min(p.scrollY+view, len(lines))]

	title := p.styles.PanelTitle.Render(ansi.Truncate(p.record.Name, inner, "…"))
	body := title + "\n\n" + strings.Join(visible, "\n")
	return p.styles.Panel.Width(max(width-2, 1)).Height(max(height-2, 1)).MaxHeight(height).Render(body)
}

func (p *RecordPanel) lines(width int) []string {
	var out []string
	row := func(label, value string) {
		l := p.styles.Label.Render(label + ":")
		out = append(out, ansi.Truncate(l+" "+p.styles.MenuItem.Render(value), width, "…"))
	}

	row("Entity", p.record.EntityType)
	row("Id", p.record.ID)
	if p.lane != "" {
		row("Lane", p.lane)
	}

	shown := map[string]bool{}
	if len(p.fields) > 0 {
		out = append(out, "", p.styles.Section.Render("Card"))
		for _, f := range p.fields {
			shown[f.Name] = true
			value := p.record.Display(f.Name)
			if value == "" {
				value = "-"
			}
			row(f.Label, value)
		}
	}

	var rest []string
	for k := range p.record.Values {
		if !shown[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	if len(rest) > 0 {
		out = append(out, "", p.styles.Section.Render(fmt.Sprintf("All values (%d)", len(rest))))
		for _, k := range rest {
			if v := p.record.Display(k); v != "" {
				row(k, v)
			}
		}
	}
	return out
}
