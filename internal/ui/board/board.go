// Package board renders the lanes of the board side by side.
package board

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/laneboard/internal/ui/styles"
)

// Render renders the board. When the lanes do not fit at MinLaneWidth, a
// window of lanes around the cursor lane is drawn.
func Render(p Props, s *styles.Styles) string {
	if len(p.Lanes) == 0 || p.Width <= 0 {
		return ""
	}

	first, last := LaneWindow(len(p.Lanes), p.Cursor.Lane, p.Width)
	laneWidth := p.Width / (last - first)

	var laneStrings []string
	for i := first; i < last; i++ {
		isActive := i == p.Cursor.Lane
		cursorRecord := 0
		if isActive {
			cursorRecord = p.Cursor.Record
		}

		laneStr := renderLane(i, p.Lanes[i], cursorRecord, isActive, p, laneWidth, s)

		// Force consistent width using lipgloss Width
		sized := lipgloss.NewStyle().Width(laneWidth).MaxHeight(p.Height).Render(laneStr)
		laneStrings = append(laneStrings, sized)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, laneStrings...)
}

// LaneWindow returns the half-open range of lane indexes drawn for the given
// width, always containing the cursor lane.
func LaneWindow(lanes, cursor, width int) (first, last int) {
	if lanes == 0 {
		return 0, 0
	}
	fit := max(width/MinLaneWidth, 1)
	if fit >= lanes {
		return 0, lanes
	}
	cursor = min(max(cursor, 0), lanes-1)
	first = max(cursor-fit/2, 0)
	last = first + fit
	if last > lanes {
		last = lanes
		first = lanes - fit
	}
	return first, last
}
