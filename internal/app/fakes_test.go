package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/store"
	"github.com/stretchr/testify/require"
)

// fakeBoard records calls and applies their effect to a real store
type fakeBoard struct {
	store *store.Store

	mu    sync.Mutex
	calls []string

	initErr error
	openErr error
}

func (b *fakeBoard) record(call string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call)
}

func (b *fakeBoard) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *fakeBoard) fail(err error, fatal bool) error {
	if err != nil {
		_ = b.store.Dispatch(store.SetFailure{Err: err, Fatal: fatal})
	}
	return err
}

func (b *fakeBoard) Store() *store.Store { return b.store }

func (b *fakeBoard) Initialize(ctx context.Context) error {
	b.record("initialize")
	return b.fail(b.initErr, true)
}

func (b *fakeBoard) Refresh(ctx context.Context) error {
	b.record("refresh")
	return nil
}

func (b *fakeBoard) SelectView(ctx context.Context, id string) error {
	b.record("select view " + id)
	return b.store.Dispatch(store.SetSelectedView{ID: id})
}

func (b *fakeBoard) SelectForm(id string) error {
	b.record("select form " + id)
	return b.store.Dispatch(store.SetSelectedForm{ID: id})
}

func (b *fakeBoard) ToggleStateFilter(value int) {
	b.record(fmt.Sprintf("toggle state %d", value))
	_ = b.store.Dispatch(store.ToggleStateFilter{Value: value})
}

func (b *fakeBoard) ClearStateFilters() {
	b.record("clear states")
	_ = b.store.Dispatch(store.ClearStateFilters{})
}

func (b *fakeBoard) OpenRecord(rec domain.Record) {
	b.record("open " + rec.ID)
	_ = b.store.Dispatch(store.SetSelectedRecord{Record: &rec})
}

func (b *fakeBoard) CloseOverlay() {
	b.record("close")
	_ = b.store.Dispatch(store.SetSelectedRecord{})
}

func (b *fakeBoard) CloseAndRefresh(ctx context.Context) error {
	b.CloseOverlay()
	return b.Refresh(ctx)
}

func (b *fakeBoard) EditRecord(ctx context.Context) error {
	b.record("edit")
	return b.fail(b.openErr, false)
}

func (b *fakeBoard) OpenInNewWindow(ctx context.Context) error {
	b.record("new window")
	return b.fail(b.openErr, false)
}

func (b *fakeBoard) CreateRecord(ctx context.Context) error {
	b.record("create")
	if b.openErr != nil {
		return b.fail(b.openErr, false)
	}
	return b.store.Dispatch(store.SetPendingCreate{Pending: true})
}

func (b *fakeBoard) ConfirmCreate(ctx context.Context) error {
	b.record("confirm create")
	_ = b.store.Dispatch(store.SetPendingCreate{})
	return b.Refresh(ctx)
}

func (b *fakeBoard) CancelCreate() {
	b.record("cancel create")
	_ = b.store.Dispatch(store.SetPendingCreate{})
}

func intPtr(i int) *int { return &i }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// loadedBoard returns a fake whose store holds an initialized incident board
func loadedBoard(t *testing.T, swimLaneSource string, showCreate bool) *fakeBoard {
	t.Helper()
	st := store.New(testLogger())

	dispatch := func(a store.Action) {
		require.NoError(t, st.Dispatch(a))
	}
	dispatch(store.SetConfig{Config: domain.BoardConfiguration{
		EntityName:       "incident",
		SwimLaneSource:   swimLaneSource,
		ShowCreateButton: showCreate,
	}})
	dispatch(store.SetMetadata{Metadata: domain.EntityMetadata{
		LogicalName:          "incident",
		PrimaryNameAttribute: "title",
		Attributes: []domain.AttributeMetadata{
			{LogicalName: "prioritycode", DisplayName: "Priority"},
		},
	}})
	dispatch(store.SetStateMetadata{Attribute: domain.AttributeMetadata{
		LogicalName:   "statecode",
		AttributeType: domain.AttributeState,
		OptionSet: &domain.OptionSet{Options: []domain.Option{
			{Value: 0, Label: "Active"},
			{Value: 1, Label: "Resolved"},
		}},
	}})
	dispatch(store.SetViews{Views: []domain.SavedView{
		{ID: "v1", Name: "Active Cases", FetchXML: "<fetch/>"},
		{ID: "v2", Name: "My Cases", FetchXML: "<fetch/>"},
	}})
	dispatch(store.SetForms{Forms: []domain.CardForm{
		{ID: "f1", Name: "Case Card", FormXML: `<form><control datafieldname="prioritycode"/></form>`},
		{ID: "f2", Name: "Plain Card"},
	}})

	gen := st.NextGeneration()
	dispatch(store.SetBoardData{Generation: gen, Lanes: []domain.BoardLane{
		{
			Option: &domain.Option{Value: 1, Label: "In Progress", State: intPtr(0)},
			Records: []domain.Record{
				{ID: "r1", EntityType: "incident", Name: "Printer on fire", Values: map[string]any{"statecode": float64(0)}, Formatted: map[string]string{"prioritycode": "High"}},
				{ID: "r3", EntityType: "incident", Name: "VPN drops hourly", Values: map[string]any{"statecode": float64(0)}},
			},
		},
		{
			Option:  &domain.Option{Value: 2, Label: "On Hold", State: intPtr(0)},
			Records: []domain.Record{{ID: "r2", EntityType: "incident", Name: "Badge reader", Values: map[string]any{"statecode": float64(0)}}},
		},
		{Records: []domain.Record{}},
	}})

	return &fakeBoard{store: st}
}

// newTestModel builds a sized model over b
func newTestModel(b *fakeBoard) Model {
	m := New(context.Background(), b, testLogger())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return updated.(Model)
}

// collect runs cmd and flattens batches into their messages
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver feeds every message produced by cmd back into the model, then
// picks up the store changes. Commands that wait on the store or a timer are
// never run.
func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(t, cmd) {
		switch msg.(type) {
		case nil, stateChangedMsg, tickMsg:
			continue
		}
		updated, next := m.Update(msg)
		m = updated.(Model)
		m = deliver(t, m, next)
	}
	return synced(m)
}

// synced applies a store change notification without re-arming the listener
func synced(m Model) Model {
	updated, _ := m.Update(stateChangedMsg{})
	return updated.(Model)
}

func press(m Model, key string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}
