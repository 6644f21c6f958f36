package store

import "github.com/riordanpawley/laneboard/internal/domain"

// DefaultStateAttribute is the attribute state filters apply to when no state
// metadata has been resolved
const DefaultStateAttribute = "statecode"

// State is the composed board state. Values are snapshots: slices and pointers
// are replaced on change, never mutated in place.
type State struct {
	ProgressText string
	Failure      string // Named failure message, empty when the last operation succeeded
	Fatal        bool   // Initialization failed, the board is unusable
	Notice       string // Informational status, e.g. a board without views

	Config            *domain.BoardConfiguration
	Metadata          *domain.EntityMetadata
	SeparatorMetadata *domain.AttributeMetadata
	StateMetadata     *domain.AttributeMetadata

	Views        []domain.SavedView
	Forms        []domain.CardForm
	SelectedView *domain.SavedView
	SelectedForm *domain.CardForm

	Lanes      []domain.BoardLane
	Generation uint64 // Latest generation issued for board data
	Loaded     bool   // Board data has been set at least once

	StateFilter    domain.StateFilter
	SelectedRecord *domain.Record
	PendingCreate  bool // A create form is open, waiting for the user to confirm the save
}

// NewState returns the empty initial state
func NewState() State {
	return State{StateFilter: domain.NewStateFilter()}
}

// StateAttribute returns the logical name of the attribute state filters apply to
func (s State) StateAttribute() string {
	if s.StateMetadata != nil && s.StateMetadata.LogicalName != "" {
		return s.StateMetadata.LogicalName
	}
	return DefaultStateAttribute
}

// VisibleLanes returns the lanes after applying the state filter. The stored
// lanes are never modified.
func (s State) VisibleLanes() []domain.BoardLane {
	return s.StateFilter.Apply(s.Lanes, s.StateAttribute())
}

// RecordCount returns the number of records across all lanes
func (s State) RecordCount() int {
	n := 0
	for _, l := range s.Lanes {
		n += len(l.Records)
	}
	return n
}

// Busy reports whether an operation is in progress
func (s State) Busy() bool {
	return s.ProgressText != ""
}

// StateFilterAvailable reports whether state filtering is offered. Filtering is
// tied to the status reason being the swim-lane source.
func (s State) StateFilterAvailable() bool {
	return s.Config != nil && s.Config.SwimLaneSource == "statuscode" && s.StateMetadata != nil
}

// FindView returns the catalog view with the given id
func (s State) FindView(id string) (domain.SavedView, bool) {
	for _, v := range s.Views {
		if v.ID == id {
			return v, true
		}
	}
	return domain.SavedView{}, false
}

// FindForm returns the catalog form with the given id
func (s State) FindForm(id string) (domain.CardForm, bool) {
	for _, f := range s.Forms {
		if f.ID == id {
			return f, true
		}
	}
	return domain.CardForm{}, false
}
