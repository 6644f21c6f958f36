// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/services/navigation"
	"github.com/riordanpawley/laneboard/internal/services/network"
	"github.com/riordanpawley/laneboard/internal/store"
	"github.com/riordanpawley/laneboard/internal/types"
	"github.com/riordanpawley/laneboard/internal/ui/overlay"
	"github.com/riordanpawley/laneboard/internal/ui/styles"
)

// Board is the set of board operations the TUI drives. Blocking operations
// take a context and report failures to the store as well as returning them.
type Board interface {
	Store() *store.Store
	Initialize(ctx context.Context) error
	Refresh(ctx context.Context) error
	SelectView(ctx context.Context, id string) error
	SelectForm(id string) error
	ToggleStateFilter(value int)
	ClearStateFilters()
	OpenRecord(rec domain.Record)
	CloseOverlay()
	CloseAndRefresh(ctx context.Context) error
	EditRecord(ctx context.Context) error
	OpenInNewWindow(ctx context.Context) error
	CreateRecord(ctx context.Context) error
	ConfirmCreate(ctx context.Context) error
	CancelCreate()
}

// Connectivity probes whether the Web API endpoint is reachable
type Connectivity interface {
	CheckCmd() tea.Cmd
}

// connectivityInterval is the pause between reachability checks
const connectivityInterval = 30 * time.Second

// Model is the main application state
type Model struct {
	ctx    context.Context
	board  Board
	store  *store.Store
	logger *slog.Logger

	// Last store snapshot, refreshed on every change notification
	state store.State

	nav      *navigation.Service
	overlays *overlay.Stack
	panel    *overlay.RecordPanel

	toasts  []types.Toast
	spinner spinner.Model

	connectivity Connectivity // Optional
	offline      bool

	width  int
	height int

	styles        *styles.Styles
	overlayStyles *overlay.Styles

	now func() time.Time
}

// New creates the application model. ctx bounds every board operation the
// model starts.
func New(ctx context.Context, b Board, logger *slog.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	st := b.Store()
	return Model{
		ctx:           ctx,
		board:         b,
		store:         st,
		logger:        logger,
		state:         st.State(),
		nav:           navigation.NewService(),
		overlays:      overlay.NewStack(),
		spinner:       s,
		styles:        styles.New(),
		overlayStyles: overlay.New(),
		now:           time.Now,
	}
}

// WithConnectivity enables the offline indicator
func (m Model) WithConnectivity(c Connectivity) Model {
	m.connectivity = c
	return m
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		waitForChange(m.store.Changes()),
		m.run(opInitialize, m.board.Initialize),
		tickEvery(time.Second),
	}
	if m.connectivity != nil {
		cmds = append(cmds, m.connectivity.CheckCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stateChangedMsg:
		m.syncState()
		return m, waitForChange(m.store.Changes())

	case opResultMsg:
		return m.handleResult(msg)

	case tickMsg:
		m.toasts = types.PruneToasts(m.toasts, m.now())
		return m, tickEvery(time.Second)

	case network.StatusMsg:
		return m.handleConnectivity(msg)

	case checkConnectivityMsg:
		if m.connectivity == nil {
			return m, nil
		}
		return m, m.connectivity.CheckCmd()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.overlays.IsEmpty() {
			return m, m.overlays.Update(msg)
		}
		if m.panel != nil {
			var cmd tea.Cmd
			m.panel, cmd = m.panel.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)

	case overlay.CloseOverlayMsg:
		m.overlays.Pop()
		return m, nil

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case overlay.PanelActionMsg:
		return m.handlePanelAction(msg)
	}

	return m, nil
}

// syncState takes a fresh snapshot and reconciles the side panel with the
// selected record
func (m *Model) syncState() {
	m.state = m.store.State()

	sel := m.state.SelectedRecord
	switch {
	case sel == nil:
		m.panel = nil
	case m.panel == nil || m.panel.RecordID() != sel.ID:
		m.panel = overlay.NewRecordPanel(*sel, m.fields(), m.laneTitle(sel.ID))
	}
}

// mode reports what receives key presses
func (m Model) mode() types.Mode {
	switch {
	case !m.overlays.IsEmpty():
		return types.ModeMenu
	case m.panel != nil:
		return types.ModePanel
	case m.state.PendingCreate:
		return types.ModeCreate
	default:
		return types.ModeBoard
	}
}

// handleConnectivity records a reachability change and schedules the next check
func (m Model) handleConnectivity(msg network.StatusMsg) (tea.Model, tea.Cmd) {
	switch {
	case !msg.Online && !m.offline:
		m.logger.Warn("web api unreachable")
		m.addToast(types.ToastWarning, "Web API unreachable")
	case msg.Online && m.offline:
		m.logger.Info("web api reachable again")
		m.addToast(types.ToastInfo, "Web API reachable again")
	}
	m.offline = !msg.Online
	return m, scheduleConnectivityCheck(connectivityInterval)
}

func (m *Model) addToast(level types.ToastLevel, message string) {
	m.toasts = append(m.toasts, types.NewToast(level, message, m.now()))
}
