package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Operation names carried by opResultMsg
const (
	opInitialize = "initialize"
	opRefresh    = "refresh"
	opSelectView = "select view"
	opEdit       = "edit"
	opNewWindow  = "open in new window"
	opCreate     = "create"
	opConfirm    = "confirm create"
	opClose      = "close and refresh"
)

// stateChangedMsg is sent when the store reports a change
type stateChangedMsg struct{}

// opResultMsg carries the outcome of a board operation run off the UI loop
type opResultMsg struct {
	op  string
	err error
}

type tickMsg time.Time

// checkConnectivityMsg asks for the next reachability check
type checkConnectivityMsg struct{}

// waitForChange blocks until the store notifies a change. A closed channel
// ends the listener.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

// run executes a blocking board operation in a command goroutine
func (m Model) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opResultMsg{op: op, err: fn(ctx)}
	}
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func scheduleConnectivityCheck(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return checkConnectivityMsg{}
	})
}
