package app

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/laneboard/internal/ui/board"
	"github.com/riordanpawley/laneboard/internal/ui/statusbar"
	"github.com/riordanpawley/laneboard/internal/ui/toast"
)

// panelShare is the fraction of the width given to the record panel
const panelShare = 0.4

// View renders the current state as a string
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.state.Fatal {
		return m.renderFatal()
	}

	// Nothing to draw until the first data arrives
	if !m.state.Loaded && m.state.Busy() {
		return m.renderLoading()
	}

	mainHeight := m.height - 1
	statusBar := m.renderStatusBar()

	toastView := toast.New(m.styles).Render(m.toasts, m.width, m.now())
	if toastView != "" {
		mainHeight = max(mainHeight-lipgloss.Height(toastView), 1)
		toastView = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toastView)
	}

	var main string
	if !m.overlays.IsEmpty() {
		main = m.overlays.View(m.overlayStyles, m.width, mainHeight)
	} else {
		main = m.renderMain(mainHeight)
	}

	parts := []string{main}
	if toastView != "" {
		parts = append(parts, toastView)
	}
	parts = append(parts, statusBar)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderMain draws the lanes, with the record panel beside them when open
func (m Model) renderMain(height int) string {
	boardWidth := m.width
	var panelView string
	if m.panel != nil {
		panelWidth := int(float64(m.width) * panelShare)
		boardWidth = m.width - panelWidth
		panelView = m.panel.Render(panelWidth, height)
	}

	lanes := m.state.VisibleLanes()
	pos := m.nav.GetPosition(lanes)
	props := board.Props{
		Lanes:  lanes,
		Cursor: board.Cursor{Lane: pos.Lane, Record: pos.Record},
		Fields: m.fields(),
		Width:  boardWidth,
		Height: height,
	}
	if m.state.SelectedRecord != nil {
		props.OpenRecordID = m.state.SelectedRecord.ID
	}

	boardView := board.Render(props, m.styles)
	if boardView == "" {
		boardView = m.styles.EmptyLane.Render("No lanes to show")
	}
	boardView = lipgloss.NewStyle().Width(boardWidth).Height(height).MaxHeight(height).Render(boardView)

	if panelView == "" {
		return boardView
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boardView, panelView)
}

func (m Model) renderStatusBar() string {
	info := statusbar.Info{
		Records:  m.visibleRecordCount(),
		Progress: m.state.ProgressText,
		Spinner:  m.spinner.View(),
		Failure:  m.state.Failure,
		Notice:   m.state.Notice,
		Offline:  m.offline,
	}
	if m.state.SelectedView != nil {
		info.View = m.state.SelectedView.Name
	}
	if m.state.SelectedForm != nil {
		info.Form = m.state.SelectedForm.Name
	}
	if m.state.StateFilterAvailable() {
		info.Filter = m.state.StateFilter.Label()
	}

	caps := statusbar.Caps{
		StateFilter: m.state.StateFilterAvailable(),
		Create:      m.createEnabled(),
		Retry:       m.state.Fatal,
	}
	return statusbar.New(m.mode(), info, caps, m.width, m.styles).Render()
}

func (m Model) visibleRecordCount() int {
	n := 0
	for _, l := range m.state.VisibleLanes() {
		n += len(l.Records)
	}
	return n
}

// renderLoading renders a centered loading spinner with the current step
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.spinner.View(),
		m.state.ProgressText,
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderFatal replaces the board with the startup failure
func (m Model) renderFatal() string {
	box := m.styles.Fatal.Width(min(m.width-4, 80)).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		"Board unavailable",
		"",
		m.state.Failure,
	))
	hint := m.styles.FatalHint.Render("r: retry  q: quit")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, box, hint),
	)
}
