package board

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/ui/styles"
)

// maxCardFields caps the field lines drawn under the card title
const maxCardFields = 4

// renderCard renders a record card
func renderCard(rec domain.Record, fields []Field, isCursor, isOpen bool, width int, s *styles.Styles) string {
	cardStyle := s.Card
	if isOpen {
		cardStyle = s.CardOpen
	} else if isCursor {
		cardStyle = s.CardActive
	}
	// Width excludes the border
	cardStyle = cardStyle.Width(max(width-2, 1))

	// Account for padding (2) and border (2)
	inner := max(width-4, 1)

	title := rec.Name
	if isCursor {
		title = "▶" + title
	}
	lines := []string{s.CardTitle.Render(ansi.Truncate(title, inner, "…"))}

	shown := 0
	for _, f := range fields {
		if shown == maxCardFields {
			break
		}
		value := rec.Display(f.Name)
		if value == "" {
			continue
		}
		label := f.Label + ": "
		line := s.FieldLabel.Render(label) + s.FieldValue.Render(ansi.Truncate(value, max(inner-ansi.StringWidth(label), 1), "…"))
		lines = append(lines, line)
		shown++
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderCard is the exported version for testing
func RenderCard(rec domain.Record, fields []Field, isCursor, isOpen bool, width int, s *styles.Styles) string {
	return renderCard(rec, fields, isCursor, isOpen, width, s)
}
