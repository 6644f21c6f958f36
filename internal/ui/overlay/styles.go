package overlay

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/laneboard/internal/ui/styles"
)

// Styles holds all overlay-specific styles
type Styles struct {
	// Overlay is the base overlay container style
	Overlay lipgloss.Style
	// Title is the overlay title style
	Title lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemActive   lipgloss.Style
	MenuItemDisabled lipgloss.Style
	MenuKey          lipgloss.Style
	// Checked marks toggled picker items
	Checked lipgloss.Style
	// Footer is the style for overlay footer text
	Footer lipgloss.Style
	// Section is the style for help and panel section headers
	Section lipgloss.Style
	// Label is the right-aligned field label in the record panel
	Label lipgloss.Style
	// Panel frames the side-by-side record panel
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
}

// New derives the overlay styles from the shared theme
func New() *Styles {
	base := styles.New()
	return &Styles{
		Overlay:          base.Overlay,
		Title:            base.OverlayTitle,
		MenuItem:         base.MenuItem,
		MenuItemActive:   base.MenuItemActive,
		MenuItemDisabled: base.MenuItemDisabled,
		MenuKey:          base.MenuKey,

		Checked: lipgloss.NewStyle().
			Foreground(styles.Green).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(styles.Subtext0).
			MarginTop(1),

		Section: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(styles.Teal),

		Panel:      base.Panel,
		PanelTitle: base.PanelTitle,
	}
}
