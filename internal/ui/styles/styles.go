package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds all the UI styles
type Styles struct {
	// Board
	Board              lipgloss.Style
	Lane               lipgloss.Style
	LaneHeader         lipgloss.Style
	LaneHeaderActive   lipgloss.Style
	LaneHeaderFallback lipgloss.Style
	LaneCount          lipgloss.Style
	EmptyLane          lipgloss.Style

	// Cards
	Card       lipgloss.Style
	CardActive lipgloss.Style
	CardOpen   lipgloss.Style
	CardTitle  lipgloss.Style
	FieldLabel lipgloss.Style
	FieldValue lipgloss.Style

	// Status bar
	StatusBar      lipgloss.Style
	StatusMode     lipgloss.Style
	StatusHint     lipgloss.Style
	StatusInfo     lipgloss.Style
	StatusProgress lipgloss.Style
	StatusFailure  lipgloss.Style

	// Overlays
	Overlay          lipgloss.Style
	OverlayTitle     lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemActive   lipgloss.Style
	MenuItemDisabled lipgloss.Style
	MenuKey          lipgloss.Style
	Separator        lipgloss.Style

	// Side panel
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style

	// Full-screen failure
	Fatal     lipgloss.Style
	FatalHint lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	header := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	return &Styles{
		Board: lipgloss.NewStyle().
			Background(Base),

		Lane: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		LaneHeader:         header.Foreground(Subtext0),
		LaneHeaderActive:   header.Foreground(Blue),
		LaneHeaderFallback: header.Foreground(Overlay0).Italic(true),

		LaneCount: lipgloss.NewStyle().
			Foreground(Overlay1),

		EmptyLane: lipgloss.NewStyle().
			Foreground(Overlay0).
			Italic(true),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		CardActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Lavender).
			Padding(0, 1),

		CardOpen: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Mauve).
			Padding(0, 1),

		CardTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true),

		FieldLabel: lipgloss.NewStyle().
			Foreground(Overlay1),

		FieldValue: lipgloss.NewStyle().
			Foreground(Subtext1),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		StatusProgress: lipgloss.NewStyle().
			Foreground(Yellow),

		StatusFailure: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuItemDisabled: lipgloss.NewStyle().
			Foreground(Overlay0),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Mauve).
			Padding(0, 1),

		PanelTitle: lipgloss.NewStyle().
			Foreground(Mauve).
			Bold(true),

		Fatal: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(1, 3),

		FatalHint: lipgloss.NewStyle().
			Foreground(Subtext0),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}

// LaneHeaderStyle returns the header style for the lane at index i
func (s *Styles) LaneHeaderStyle(i int, active, fallback bool) lipgloss.Style {
	switch {
	case active:
		return s.LaneHeaderActive
	case fallback:
		return s.LaneHeaderFallback
	default:
		return s.LaneHeader.Foreground(LaneColor(i, false))
	}
}
