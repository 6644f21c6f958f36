package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	helpWidth      = 56
	helpHeight     = 26
	helpViewHeight = 20
)

// KeyBinding is one key and what it does
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory groups related bindings under a heading
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// HelpCaps lists the optional actions the help screen describes
type HelpCaps struct {
	StateFilter bool
	Create      bool
}

// HelpOverlay lists the key bindings of the board
type HelpOverlay struct {
	categories []KeyCategory
	styles     *Styles
	scroll     int
	maxScroll  int
	viewHeight int
}

// NewHelpOverlay creates the help screen for a board with caps
func NewHelpOverlay(caps HelpCaps) *HelpOverlay {
	return &HelpOverlay{
		categories: helpCategories(caps),
		styles:     New(),
		viewHeight: helpViewHeight,
	}
}

func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch key.String() {
	case "esc", "q", "?":
		return h, func() tea.Msg { return CloseOverlayMsg{} }
	case "j", "down":
		h.scroll = min(h.scroll+1, h.maxScroll)
	case "k", "up":
		h.scroll = max(h.scroll-1, 0)
	case "g":
		h.scroll = 0
	case "G":
		h.scroll = h.maxScroll
	}
	return h, nil
}

func (h *HelpOverlay) View() string {
	lines := h.lines()
	h.maxScroll = max(len(lines)-h.viewHeight, 0)
	h.scroll = min(h.scroll, h.maxScroll)

	visible := lines[h.scroll:min(h.scroll+h.viewHeight, len(lines))]
	out := strings.Join(visible, "\n")
	if h.maxScroll > 0 {
		out += "\n\n" + h.styles.Footer.Render("["+h.styles.MenuKey.Render("j/k")+" to scroll, "+h.styles.MenuKey.Render("g/G")+" to jump]")
	}
	return out
}

func (h *HelpOverlay) lines() []string {
	var lines []string
	for i, cat := range h.categories {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, h.styles.Section.Render(cat.Name+":"))
		for _, b := range cat.Bindings {
			lines = append(lines, "  "+h.styles.MenuKey.Width(6).Render(b.Key)+h.styles.MenuItem.Render(b.Description))
		}
	}
	return lines
}

func (h *HelpOverlay) Title() string {
	return "Help"
}

func (h *HelpOverlay) Size() (width, height int) {
	return helpWidth, helpHeight
}

func helpCategories(caps HelpCaps) []KeyCategory {
	board := []KeyBinding{
		{"enter", "Open record beside the board"},
		{"v", "Choose view"},
		{"f", "Choose card form"},
	}
	if caps.StateFilter {
		board = append(board, KeyBinding{"s", "Filter by state"})
	}
	if caps.Create {
		board = append(board, KeyBinding{"c", "Create record"})
	}
	board = append(board, KeyBinding{"R", "Refresh board"})

	return []KeyCategory{
		{Name: "Navigation", Bindings: []KeyBinding{
			{"h/l", "Move between lanes"},
			{"j/k", "Move up/down in lane"},
			{"g/G", "Jump to first/last record"},
			{"^d/^u", "Half page down/up"},
		}},
		{Name: "Board", Bindings: board},
		{Name: "Record panel", Bindings: []KeyBinding{
			{"e", "Edit in place"},
			{"o", "Open in new window"},
			{"r", "Close and refresh"},
			{"esc", "Close"},
		}},
		{Name: "Other", Bindings: []KeyBinding{
			{"?", "Help (this screen)"},
			{"q", "Quit"},
		}},
	}
}
