package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/laneboard/internal/types"
	"github.com/riordanpawley/laneboard/internal/ui/styles"
)

// Info is the board context shown in the status bar
type Info struct {
	View     string
	Form     string
	Filter   string // Empty when state filtering is not offered
	Records  int
	Progress string // Current operation, empty when idle
	Spinner  string // Spinner frame drawn before Progress
	Failure  string // Last failure message
	Notice   string // Informational message, shown when nothing failed
	Offline  bool
}

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	info   Info
	caps   Caps
	width  int
	styles *styles.Styles
}

// New creates a new StatusBar
func New(mode types.Mode, info Info, caps Caps, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		info:   info,
		caps:   caps,
		width:  width,
		styles: styles,
	}
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	separator := sb.styles.StatusHint.Render(" │ ")
	parts := []string{sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")}
	if sb.info.Offline {
		parts = append(parts, sb.styles.StatusFailure.Render("OFFLINE"))
	}

	switch {
	case sb.info.Progress != "":
		parts = append(parts, sb.styles.StatusProgress.Render(strings.TrimSpace(sb.info.Spinner+" "+sb.info.Progress)))
	case sb.info.Failure != "":
		parts = append(parts, sb.styles.StatusFailure.Render(sb.info.Failure))
	case sb.info.Notice != "":
		parts = append(parts, sb.styles.StatusInfo.Render(sb.info.Notice))
	}

	if ctx := sb.context(); ctx != "" {
		parts = append(parts, sb.styles.StatusInfo.Render(ctx))
	}

	if hints := GetHints(sb.mode, sb.caps); hints != "" {
		parts = append(parts, sb.styles.StatusHint.Render(hints))
	}

	content := parts[0]
	for _, p := range parts[1:] {
		content = lipgloss.JoinHorizontal(lipgloss.Left, content, separator, p)
	}

	// Status bar padding takes two cells
	if sb.width > 2 {
		content = ansi.Truncate(content, sb.width-2, "…")
	}
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}

func (sb StatusBar) context() string {
	var fields []string
	if sb.info.View != "" {
		fields = append(fields, "view: "+sb.info.View)
	}
	if sb.info.Form != "" {
		fields = append(fields, "form: "+sb.info.Form)
	}
	if sb.info.Filter != "" {
		fields = append(fields, "state: "+sb.info.Filter)
	}
	if sb.info.View != "" {
		fields = append(fields, fmt.Sprintf("%d records", sb.info.Records))
	}
	return strings.Join(fields, "  ")
}
