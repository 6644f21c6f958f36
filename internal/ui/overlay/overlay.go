// Package overlay holds the modal menus drawn over the board and the
// side-by-side record panel.
package overlay

import (
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"
)

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// SelectionMsg is sent when an item is chosen. Key names the menu, Value
// carries the chosen item id.
type SelectionMsg struct {
	Key   string
	Value any
}

// Frame draws the overlay with its title inside the overlay border, centred in
// a width x height area. The overlay's preferred size is clamped to the area.
func Frame(o Overlay, s *Styles, width, height int) string {
	w, h := o.Size()
	w = min(w, width)
	h = min(h, height)

	body := lipgloss.JoinVertical(lipgloss.Left, s.Title.Render(o.Title()), o.View())
	box := s.Overlay.Width(max(w-2, 1)).MaxHeight(h).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
