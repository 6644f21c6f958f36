package statusbar

import (
	"strings"

	"github.com/riordanpawley/laneboard/internal/types"
)

// Caps lists the optional board actions currently offered
type Caps struct {
	StateFilter bool
	Create      bool
	Retry       bool
}

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode, caps Caps) string {
	switch mode {
	case types.ModeBoard:
		if caps.Retry {
			return "r: retry  q: quit"
		}
		hints := []string{"h/l: lanes", "j/k: records", "enter: open", "v: view", "f: form"}
		if caps.StateFilter {
			hints = append(hints, "s: state")
		}
		if caps.Create {
			hints = append(hints, "c: create")
		}
		hints = append(hints, "R: refresh", "?: help", "q: quit")
		return strings.Join(hints, "  ")
	case types.ModePanel:
		return "e: edit  o: new window  r: close+refresh  esc: close"
	case types.ModeMenu:
		return "j/k: move  enter: select  esc: close"
	case types.ModeCreate:
		return "enter: refresh after save  esc: skip refresh  q: quit"
	default:
		return ""
	}
}
