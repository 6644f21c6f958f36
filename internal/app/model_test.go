package app

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/laneboard/internal/store"
	"github.com/riordanpawley/laneboard/internal/types"
	"github.com/riordanpawley/laneboard/internal/ui/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_NavigatesLanes(t *testing.T) {
	m := newTestModel(loadedBoard(t, "statuscode", false))

	assert.Contains(t, ansi.Strip(m.View()), "▶Printer on fire")

	m, _ = press(m, "j")
	assert.Contains(t, ansi.Strip(m.View()), "▶VPN drops hourly")

	m, _ = press(m, "l")
	assert.Contains(t, ansi.Strip(m.View()), "▶Badge reader")

	m, _ = press(m, "h")
	m, _ = press(m, "G")
	assert.Equal(t, "r3", m.nav.GetCursor().RecordID)
}

func TestModel_OpenRecordShowsPanel(t *testing.T) {
	b := loadedBoard(t, "statuscode", false)
	m := newTestModel(b)

	m, _ = press(m, "enter")
	m = synced(m)

	require.NotNil(t, m.panel)
	assert.Equal(t, types.ModePanel, m.mode())
	assert.Equal(t, []string{"open r1"}, b.Calls())

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Lane: In Progress")
	assert.Contains(t, view, "Priority: High")
	assert.Contains(t, view, "RECORD")
}

func TestModel_PanelActions(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantCalls []string
		wantPanel bool
		wantToast string
	}{
		{"escape closes", "esc", []string{"open r1", "close"}, false, ""},
		{"close and refresh", "r", []string{"open r1", "close", "refresh"}, false, "Board refreshed"},
		{"edit keeps panel", "e", []string{"open r1", "edit"}, true, ""},
		{"new window keeps panel", "o", []string{"open r1", "new window"}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := loadedBoard(t, "statuscode", false)
			m := newTestModel(b)
			m, _ = press(m, "enter")
			m = synced(m)

			m, cmd := press(m, tt.key)
			m = deliver(t, m, cmd)

			assert.Equal(t, tt.wantCalls, b.Calls())
			assert.Equal(t, tt.wantPanel, m.panel != nil)
			if tt.wantToast != "" {
				require.NotEmpty(t, m.toasts)
				assert.Equal(t, tt.wantToast, m.toasts[len(m.toasts)-1].Message)
			}
		})
	}
}

func TestModel_HostFailureIsToastedNotFatal(t *testing.T) {
	b := loadedBoard(t, "statuscode", false)
	b.openErr = errors.New("xdg-open: not found")
	m := newTestModel(b)
	m, _ = press(m, "enter")
	m = synced(m)

	m, cmd := press(m, "e")
	m = deliver(t, m, cmd)

	assert.False(t, m.state.Fatal)
	require.Len(t, m.toasts, 1)
	assert.Equal(t, types.ToastError, m.toasts[0].Level)
	assert.Equal(t, "Error: xdg-open: not found", m.toasts[0].Message)
	assert.NotNil(t, m.panel, "panel stays open")
}

func TestModel_SelectView(t *testing.T) {
	b := loadedBoard(t, "statuscode", false)
	m := newTestModel(b)

	m, cmd := press(m, "v")
	assert.Nil(t, cmd)
	assert.Equal(t, types.ModeMenu, m.mode())
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Views")
	assert.Contains(t, view, "My Cases")

	m, cmd = press(m, "2")
	m = deliver(t, m, cmd)

	assert.Equal(t, []string{"select view v2"}, b.Calls())
	assert.True(t, m.overlays.IsEmpty())
	require.NotNil(t, m.state.SelectedView)
	assert.Equal(t, "My Cases", m.state.SelectedView.Name)
}

func TestModel_SelectSameViewIsNoop(t *testing.T) {
	b := loadedBoard(t, "statuscode", false)
	m := newTestModel(b)

	m, _ = press(m, "v")
	m, cmd := press(m, "enter")
	deliver(t, m, cmd)

	assert.Empty(t, b.Calls())
}

func TestModel_SelectForm(t *testing.T) {
	b := loadedBoard(t, "statuscode", false)
	m := newTestModel(b)
	assert.Contains(t, ansi.Strip(m.View()), "Priority: High")

	m, _ = press(m, "f")
	m, cmd := press(m, "2")
	m = deliver(t, m, cmd)

	assert.Equal(t, []string{"select form f2"}, b.Calls())
	assert.NotContains(t, ansi.Strip(m.View()), "Priority: High")
	assert.Contains(t, ansi.Strip(m.View()), "form: Plain Card")
}

func TestModel_StateFilter(t *testing.T) {
	b := loadedBoard(t, "statuscode", false)
	m := newTestModel(b)

	m, _ = press(m, "s")
	require.False(t, m.overlays.IsEmpty())

	// Resolved hides every active record
	m, cmd := press(m, "2")
	m = deliver(t, m, cmd)
	assert.Equal(t, []string{"toggle state 1"}, b.Calls())
	assert.False(t, m.overlays.IsEmpty(), "toggle picker stays open")

	m, _ = press(m, "esc")
	m = deliver(t, m, func() tea.Msg { return overlay.CloseOverlayMsg{} })
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "state: Resolved")
	assert.Contains(t, view, "0 records")

	m, _ = press(m, "s")
	m, cmd = press(m, "x")
	m = deliver(t, m, cmd)
	assert.Equal(t, []string{"toggle state 1", "clear states"}, b.Calls())
	assert.Contains(t, ansi.Strip(m.View()), "3 records")
}

func TestModel_StateFilterUnavailable(t *testing.T) {
	m := newTestModel(loadedBoard(t, "prioritycode", false))

	m, _ = press(m, "s")
	assert.True(t, m.overlays.IsEmpty())
	assert.NotContains(t, ansi.Strip(m.View()), "state:")
}

func TestModel_Create(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		b := loadedBoard(t, "statuscode", true)
		m := newTestModel(b)

		m, cmd := press(m, "c")
		m = deliver(t, m, cmd)
		assert.Equal(t, []string{"create"}, b.Calls(), "no refresh before the save is confirmed")
		assert.Equal(t, types.ModeCreate, m.mode())
		require.NotEmpty(t, m.toasts)
		assert.Equal(t, types.ToastInfo, m.toasts[0].Level)
		assert.Contains(t, ansi.Strip(m.View()), "CREATE")

		// Board keys are held while the form is open
		m, cmd = press(m, "R")
		assert.Nil(t, cmd)
		assert.Equal(t, []string{"create"}, b.Calls())

		m, cmd = press(m, "enter")
		m = deliver(t, m, cmd)
		assert.Equal(t, []string{"create", "confirm create", "refresh"}, b.Calls())
		assert.Equal(t, types.ModeBoard, m.mode())
		assert.Equal(t, types.ToastSuccess, m.toasts[len(m.toasts)-1].Level)
	})

	t.Run("skipped", func(t *testing.T) {
		b := loadedBoard(t, "statuscode", true)
		m := newTestModel(b)

		m, cmd := press(m, "c")
		m = deliver(t, m, cmd)
		m, cmd = press(m, "esc")
		assert.Nil(t, cmd)
		m = synced(m)

		assert.Equal(t, []string{"create", "cancel create"}, b.Calls())
		assert.Equal(t, types.ModeBoard, m.mode())
	})

	t.Run("host failure", func(t *testing.T) {
		b := loadedBoard(t, "statuscode", true)
		b.openErr = errors.New("xdg-open: not found")
		m := newTestModel(b)

		m, cmd := press(m, "c")
		m = deliver(t, m, cmd)
		assert.Equal(t, types.ModeBoard, m.mode())
		require.NotEmpty(t, m.toasts)
		assert.Equal(t, types.ToastError, m.toasts[0].Level)
	})

	t.Run("disabled", func(t *testing.T) {
		b := loadedBoard(t, "statuscode", false)
		m := newTestModel(b)

		_, cmd := press(m, "c")
		assert.Nil(t, cmd)
		assert.Empty(t, b.Calls())
	})
}

func TestModel_Refresh(t *testing.T) {
	b := loadedBoard(t, "statuscode", false)
	m := newTestModel(b)

	m, cmd := press(m, "R")
	deliver(t, m, cmd)
	assert.Equal(t, []string{"refresh"}, b.Calls())
}

func TestModel_FatalFailure(t *testing.T) {
	b := &fakeBoard{store: store.New(testLogger())}
	b.initErr = errors.New("no board for you")
	m := newTestModel(b)

	m = deliver(t, m, m.run(opInitialize, b.Initialize))
	require.True(t, m.state.Fatal)
	assert.Empty(t, m.toasts, "fatal failures take the whole screen instead")

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Board unavailable")
	assert.Contains(t, view, "Error: no board for you")
	assert.Contains(t, view, "r: retry")

	m, cmd := press(m, "v")
	assert.Nil(t, cmd)
	assert.True(t, m.overlays.IsEmpty())

	b.initErr = nil
	m, cmd = press(m, "r")
	deliver(t, m, cmd)
	assert.Equal(t, []string{"initialize", "initialize"}, b.Calls())
}

func TestModel_LoadingShowsProgress(t *testing.T) {
	st := store.New(testLogger())
	require.NoError(t, st.Dispatch(store.SetProgressText{Text: "Fetching metadata"}))
	m := newTestModel(&fakeBoard{store: st})

	assert.Contains(t, ansi.Strip(m.View()), "Fetching metadata")
}

func TestModel_RefreshFailureKeepsBoard(t *testing.T) {
	b := loadedBoard(t, "statuscode", false)
	m := newTestModel(b)

	require.NoError(t, b.store.Dispatch(store.SetFailure{Err: errors.New("Invalid XML.")}))
	m = synced(m)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Printer on fire")
	assert.Contains(t, view, "Error: Invalid XML.")
}

func TestModel_ToastsExpire(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	m := newTestModel(loadedBoard(t, "statuscode", false))
	m.now = func() time.Time { return now }

	m.addToast(types.ToastInfo, "hello")
	assert.Contains(t, ansi.Strip(m.View()), "hello")

	now = now.Add(types.DefaultToastDuration)
	updated, cmd := m.Update(tickMsg(now))
	m = updated.(Model)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.toasts)
	assert.NotContains(t, ansi.Strip(m.View()), "hello")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(loadedBoard(t, "statuscode", false))

	_, cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m, _ = press(m, "?")
	_, cmd = press(m, "ctrl+c")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := New(testContext(t), loadedBoard(t, "statuscode", false), testLogger())
	assert.Equal(t, "Loading...", m.View())
}

func TestModel_FitsTerminal(t *testing.T) {
	b := loadedBoard(t, "statuscode", true)
	m := newTestModel(b)
	m, _ = press(m, "enter")
	m = synced(m)
	m.addToast(types.ToastSuccess, "done")

	view := m.View()
	assert.LessOrEqual(t, len(splitLines(view)), 30)
	for _, line := range splitLines(view) {
		assert.LessOrEqual(t, ansi.StringWidth(line), 120)
	}
}

func TestModel_Notice(t *testing.T) {
	b := loadedBoard(t, "statuscode", false)
	require.NoError(t, b.store.Dispatch(store.SetNotice{Text: "no views available for incident"}))
	m := synced(newTestModel(b))

	assert.Contains(t, ansi.Strip(m.View()), "no views available for incident")
}
