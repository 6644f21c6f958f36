package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/ui/styles"
)

// renderLane renders a lane with header and record cards. Cards scroll so the
// cursor card stays in view.
func renderLane(
	index int,
	lane domain.BoardLane,
	cursorRecord int,
	isActive bool,
	p Props,
	width int,
	s *styles.Styles,
) string {
	headerStyle := s.LaneHeaderStyle(index, isActive, lane.IsFallback())

	// "─ Title (3) ─────"
	count := s.LaneCount.Render(fmt.Sprintf("(%d)", len(lane.Records)))
	headerText := "─ " + ansi.Truncate(lane.Title(), max(width-12, 4), "…") + " "
	header := headerStyle.Render(headerText) + count
	if remaining := width - ansi.StringWidth(header) - 1; remaining > 0 {
		header += " " + s.Separator.Render(strings.Repeat("─", remaining))
	}

	// Account for header line and lane border
	bodyHeight := max(p.Height-3, 1)
	cardWidth := max(width-4, 8)

	var cards []string
	for i, rec := range lane.Records {
		isCursor := isActive && i == cursorRecord
		cards = append(cards, renderCard(rec, p.Fields, isCursor, rec.ID == p.OpenRecordID, cardWidth, s))
	}

	content := s.EmptyLane.Render("no records")
	if len(cards) > 0 {
		lines := strings.Split(strings.Join(visibleCards(cards, cursorRecord, bodyHeight), "\n"), "\n")
		content = strings.Join(lines[:min(len(lines), bodyHeight)], "\n")
	}

	laneStyle := s.Lane.Width(width - 2).Height(bodyHeight)
	return lipgloss.JoinVertical(lipgloss.Left, header, laneStyle.Render(content))
}

// visibleCards drops leading cards until the cursor card fits in height
func visibleCards(cards []string, cursor, height int) []string {
	if cursor < 0 || cursor >= len(cards) {
		cursor = 0
	}
	start := 0
	for start < cursor && stackHeight(cards[start:cursor+1]) > height {
		start++
	}
	return cards[start:]
}

func stackHeight(cards []string) int {
	h := 0
	for _, c := range cards {
		h += lipgloss.Height(c)
	}
	return h
}
