// Package types contains shared types used across the application.
package types

// Mode is what currently receives key presses
type Mode int

const (
	ModeBoard Mode = iota
	ModePanel      // Side-by-side record panel is open
	ModeMenu       // A picker or help overlay is open
	ModeCreate     // A create form is open and the board waits for its save
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeBoard:
		return "BOARD"
	case ModePanel:
		return "RECORD"
	case ModeMenu:
		return "MENU"
	case ModeCreate:
		return "CREATE"
	default:
		return "UNKNOWN"
	}
}
