package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpOverlay_Basics(t *testing.T) {
	help := NewHelpOverlay(HelpCaps{})
	require.NotNil(t, help)

	assert.Equal(t, "Help", help.Title())
	w, h := help.Size()
	assert.GreaterOrEqual(t, w, 40)
	assert.GreaterOrEqual(t, h, 20)
	assert.Nil(t, help.Init())
}

func TestHelpOverlay_View(t *testing.T) {
	tests := []struct {
		name     string
		caps     HelpCaps
		contains []string
		missing  []string
	}{
		{
			name:     "base bindings",
			contains: []string{"Navigation:", "Board:", "Record panel:", "Close and refresh", "Choose view"},
			missing:  []string{"Filter by state", "Create record"},
		},
		{
			name:     "optional bindings",
			caps:     HelpCaps{StateFilter: true, Create: true},
			contains: []string{"Filter by state", "Create record"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			help := NewHelpOverlay(tt.caps)
			help.viewHeight = 100

			view := ansi.Strip(help.View())
			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
			for _, unwanted := range tt.missing {
				assert.NotContains(t, view, unwanted)
			}
		})
	}
}

func TestHelpOverlay_Update(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		key        tea.KeyMsg
		wantScroll int
		wantClose  bool
	}{
		{"esc closes", 0, tea.KeyMsg{Type: tea.KeyEsc}, 0, true},
		{"question mark closes", 0, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")}, 0, true},
		{"scroll down", 0, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, 1, false},
		{"scroll up", 2, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, 1, false},
		{"scroll up stops at top", 0, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, 0, false},
		{"scroll down stops at bottom", 5, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, 5, false},
		{"jump to top", 4, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}, 0, false},
		{"jump to bottom", 0, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			help := NewHelpOverlay(HelpCaps{})
			help.maxScroll = 5
			help.scroll = tt.start

			model, cmd := help.Update(tt.key)
			help = model.(*HelpOverlay)

			assert.Equal(t, tt.wantScroll, help.scroll)
			if tt.wantClose {
				require.NotNil(t, cmd)
				assert.IsType(t, CloseOverlayMsg{}, cmd())
			} else {
				assert.Nil(t, cmd)
			}
		})
	}
}

func TestHelpOverlay_ScrollIndicator(t *testing.T) {
	help := NewHelpOverlay(HelpCaps{})
	help.viewHeight = 3

	view := ansi.Strip(help.View())
	assert.Contains(t, view, "j/k to scroll")
	assert.Greater(t, help.maxScroll, 0)
}
