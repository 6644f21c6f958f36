package overlay

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Item is one choice in a picker
type Item struct {
	ID     string
	Label  string
	Detail string // Optional: dimmed text after the label
}

// ClearSelection is the SelectionMsg value sent when a toggle picker is reset
type ClearSelection struct{}

// Picker is a list menu. A single picker sends the chosen item's ID and
// closes. A toggle picker stays open and sends the ID of every toggled item.
type Picker struct {
	key     string
	title   string
	items   []Item
	cursor  int
	current string          // Single: the active item
	checked map[string]bool // Toggle: the checked items
	multi   bool
	styles  *Styles
}

// NewPicker creates a single-choice picker with the cursor on current
func NewPicker(key, title string, items []Item, current string) *Picker {
	p := &Picker{
		key:     key,
		title:   title,
		items:   items,
		current: current,
		styles:  New(),
	}
	for i, it := range items {
		if it.ID == current {
			p.cursor = i
		}
	}
	return p
}

// NewTogglePicker creates a multi-choice picker with the given items checked
func NewTogglePicker(key, title string, items []Item, checked []string) *Picker {
	p := &Picker{
		key:     key,
		title:   title,
		items:   items,
		checked: make(map[string]bool, len(checked)),
		multi:   true,
		styles:  New(),
	}
	for _, id := range checked {
		p.checked[id] = true
	}
	return p
}

// Key returns the menu key sent with selections
func (p *Picker) Key() string {
	return p.key
}

// Cursor returns the highlighted item index
func (p *Picker) Cursor() int {
	return p.cursor
}

// Init initializes the picker
func (p *Picker) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key := keyMsg.String(); key {
	case "esc", "q":
		return p, closeCmd
	case "j", "down":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		}
	case "g", "home":
		p.cursor = 0
	case "G", "end":
		p.cursor = max(len(p.items)-1, 0)
	case "enter", " ":
		return p, p.choose()
	case "x":
		if p.multi {
			p.checked = make(map[string]bool)
			return p, p.send(ClearSelection{})
		}
	default:
		// 1-9 jump to and choose the nth item
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(p.items) {
			p.cursor = n - 1
			return p, p.choose()
		}
	}
	return p, nil
}

func (p *Picker) choose() tea.Cmd {
	if len(p.items) == 0 {
		return nil
	}
	id := p.items[p.cursor].ID
	if p.multi {
		if p.checked[id] {
			delete(p.checked, id)
		} else {
			p.checked[id] = true
		}
		return p.send(id)
	}
	p.current = id
	return tea.Batch(p.send(id), closeCmd)
}

func (p *Picker) send(value any) tea.Cmd {
	key := p.key
	return func() tea.Msg {
		return SelectionMsg{Key: key, Value: value}
	}
}

func closeCmd() tea.Msg {
	return CloseOverlayMsg{}
}

// View renders the picker
func (p *Picker) View() string {
	if len(p.items) == 0 {
		return p.styles.MenuItemDisabled.Render("nothing to choose from")
	}

	width, _ := p.Size()
	var b strings.Builder
	for i, it := range p.items {
		marker := "  "
		if i == p.cursor {
			marker = "▶ "
		}

		var check string
		if p.multi {
			check = "[ ] "
			if p.checked[it.ID] {
				check = p.styles.Checked.Render("[x]") + " "
			}
		} else if it.ID == p.current {
			check = p.styles.Checked.Render("●") + " "
		} else {
			check = "  "
		}

		labelStyle := p.styles.MenuItem
		if i == p.cursor {
			labelStyle = p.styles.MenuItemActive
		}

		line := marker
		if i < 9 {
			line += p.styles.MenuKey.Render(strconv.Itoa(i+1)) + " "
		} else {
			line += "  "
		}
		line += check + labelStyle.Render(it.Label)
		if it.Detail != "" {
			line += " " + p.styles.MenuItemDisabled.Render(it.Detail)
		}
		b.WriteString(ansi.Truncate(line, width-6, "…"))
		b.WriteString("\n")
	}

	footer := "enter: select  esc: close"
	if p.multi {
		footer = "enter: toggle  x: clear  esc: close"
	}
	b.WriteString(p.styles.Footer.Render(footer))
	return b.String()
}

// Title returns the overlay title
func (p *Picker) Title() string {
	return p.title
}

// Size returns the overlay dimensions
func (p *Picker) Size() (width, height int) {
	width = 36
	for _, it := range p.items {
		width = max(width, ansi.StringWidth(it.Label)+ansi.StringWidth(it.Detail)+16)
	}
	return min(width, 80), len(p.items) + 7
}
