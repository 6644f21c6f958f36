package board

import "github.com/riordanpawley/laneboard/internal/domain"

// Cursor represents the current cursor position
type Cursor struct {
	Lane   int // Lane index into the visible lanes
	Record int // Record index within the lane
}

// Field is one card line: an attribute and the label shown for it
type Field struct {
	Name  string
	Label string
}

// Props is everything needed to draw the board
type Props struct {
	Lanes        []domain.BoardLane
	Cursor       Cursor
	Fields       []Field
	OpenRecordID string // Record shown in the side panel, drawn highlighted
	Width        int
	Height       int
}

// MinLaneWidth is the narrowest a lane is drawn before lanes scroll horizontally
const MinLaneWidth = 24

// FieldsFor builds card fields from form field names, labelled by the entity
// metadata display names where available. The primary name attribute is
// skipped since it titles the card.
func FieldsFor(names []string, meta *domain.EntityMetadata) []Field {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		label := name
		if meta != nil {
			if name == meta.PrimaryNameAttribute {
				continue
			}
			if attr, ok := meta.Attribute(name); ok && attr.DisplayName != "" {
				label = attr.DisplayName
			}
		}
		fields = append(fields, Field{Name: name, Label: label})
	}
	return fields
}
