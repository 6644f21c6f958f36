package app

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/types"
	"github.com/riordanpawley/laneboard/internal/ui/board"
	"github.com/riordanpawley/laneboard/internal/ui/overlay"
)

// Picker keys
const (
	menuView  = "view"
	menuForm  = "form"
	menuState = "state"
)

// handleKey processes keyboard input on the board
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" {
		return m, tea.Quit
	}

	// A failed startup leaves only retry
	if m.state.Fatal {
		if key == "r" {
			return m, m.run(opInitialize, m.board.Initialize)
		}
		return m, nil
	}

	// An open create form holds the board until its save is confirmed
	if m.state.PendingCreate {
		switch key {
		case "enter":
			return m, m.run(opConfirm, m.board.ConfirmCreate)
		case "esc":
			m.board.CancelCreate()
		}
		return m, nil
	}

	lanes := m.state.VisibleLanes()
	switch key {
	case "h", "left":
		m.nav.MoveLeft(lanes)
	case "l", "right":
		m.nav.MoveRight(lanes)
	case "j", "down":
		m.nav.MoveDown(lanes)
	case "k", "up":
		m.nav.MoveUp(lanes)
	case "g", "home":
		m.nav.GotoTop(lanes)
	case "G", "end":
		m.nav.GotoBottom(lanes)
	case "ctrl+d":
		m.nav.HalfPageDown(lanes, m.halfPage())
	case "ctrl+u":
		m.nav.HalfPageUp(lanes, m.halfPage())

	case "enter":
		if rec, _ := m.nav.GetCurrentRecord(lanes); rec != nil {
			m.board.OpenRecord(*rec)
		}

	case "R":
		return m, m.run(opRefresh, m.board.Refresh)

	case "v":
		return m, m.overlays.Push(overlay.NewPicker(menuView, "Views", viewItems(m.state.Views), selectedViewID(m.state)))

	case "f":
		return m, m.overlays.Push(overlay.NewPicker(menuForm, "Card forms", formItems(m.state.Forms), selectedFormID(m.state)))

	case "s":
		if m.state.StateFilterAvailable() {
			items, checked := stateItems(m.state)
			return m, m.overlays.Push(overlay.NewTogglePicker(menuState, "Filter by state", items, checked))
		}

	case "c":
		if m.createEnabled() {
			return m, m.run(opCreate, m.board.CreateRecord)
		}

	case "?":
		return m, m.overlays.Push(overlay.NewHelpOverlay(overlay.HelpCaps{
			StateFilter: m.state.StateFilterAvailable(),
			Create:      m.createEnabled(),
		}))
	}
	return m, nil
}

// handleSelection applies a picker choice
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	switch msg.Key {
	case menuView:
		id, _ := msg.Value.(string)
		if m.state.SelectedView != nil && m.state.SelectedView.ID == id {
			return m, nil
		}
		m.nav.Reset()
		return m, m.run(opSelectView, func(ctx context.Context) error { return m.board.SelectView(ctx, id) })

	case menuForm:
		if id, ok := msg.Value.(string); ok {
			if err := m.board.SelectForm(id); err != nil {
				m.addToast(types.ToastError, domain.FailureMessage(err))
			}
		}

	case menuState:
		switch v := msg.Value.(type) {
		case overlay.ClearSelection:
			m.board.ClearStateFilters()
		case string:
			if value, err := strconv.Atoi(v); err == nil {
				m.board.ToggleStateFilter(value)
			}
		}
	}
	return m, nil
}

// handlePanelAction runs the operation asked for from the record panel
func (m Model) handlePanelAction(msg overlay.PanelActionMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case overlay.PanelClose:
		m.board.CloseOverlay()
	case overlay.PanelCloseAndRefresh:
		return m, m.run(opClose, m.board.CloseAndRefresh)
	case overlay.PanelEdit:
		return m, m.run(opEdit, m.board.EditRecord)
	case overlay.PanelNewWindow:
		return m, m.run(opNewWindow, m.board.OpenInNewWindow)
	}
	return m, nil
}

// handleResult reports the outcome of a finished operation. Failures are
// already in the store; the toast makes them visible while the panel or a
// menu covers the status bar.
func (m Model) handleResult(msg opResultMsg) (tea.Model, tea.Cmd) {
	m.syncState()

	if msg.err != nil {
		m.logger.Debug("operation failed", "op", msg.op, "error", msg.err)
		if !m.state.Fatal {
			m.addToast(types.ToastError, domain.FailureMessage(msg.err))
		}
		return m, nil
	}

	switch msg.op {
	case opRefresh, opClose:
		m.addToast(types.ToastSuccess, "Board refreshed")
	case opCreate:
		m.addToast(types.ToastInfo, "Create form opened; press enter once it is saved")
	case opConfirm:
		m.addToast(types.ToastSuccess, "Board refreshed after create")
	case opInitialize:
		m.addToast(types.ToastInfo, "Loaded "+strconv.Itoa(m.state.RecordCount())+" records")
	}
	return m, nil
}

// halfPage calculates half-page scroll distance based on terminal height
func (m Model) halfPage() int {
	// Approximate: subtract status bar and lane header, divide by card height (~3 lines)
	return max((m.height-3)/3/2, 1)
}

func (m Model) createEnabled() bool {
	return m.state.Config != nil && m.state.Config.ShowCreateButton
}

// fields returns the card fields of the selected form
func (m Model) fields() []board.Field {
	if m.state.SelectedForm == nil {
		return nil
	}
	return board.FieldsFor(m.state.SelectedForm.Fields(), m.state.Metadata)
}

func (m Model) laneTitle(recordID string) string {
	for _, lane := range m.state.Lanes {
		for _, rec := range lane.Records {
			if rec.ID == recordID {
				return lane.Title()
			}
		}
	}
	return ""
}
