package store

import "github.com/riordanpawley/laneboard/internal/domain"

// Action is a state transition request. The set is closed: only the types in
// this file implement it.
type Action interface {
	action()
}

// SetProgressText shows a progress message. An empty text clears it.
type SetProgressText struct{ Text string }

// SetConfig stores the decoded board configuration
type SetConfig struct{ Config domain.BoardConfiguration }

// SetMetadata stores the entity metadata
type SetMetadata struct{ Metadata domain.EntityMetadata }

// SetSeparatorMetadata stores the resolved swim-lane attribute
type SetSeparatorMetadata struct{ Attribute domain.AttributeMetadata }

// SetStateMetadata stores the resolved state attribute
type SetStateMetadata struct{ Attribute domain.AttributeMetadata }

// SetViews replaces the view catalog
type SetViews struct{ Views []domain.SavedView }

// SetForms replaces the card form catalog
type SetForms struct{ Forms []domain.CardForm }

// SetSelectedView selects a view from the catalog by id
type SetSelectedView struct{ ID string }

// SetSelectedForm selects a card form from the catalog by id
type SetSelectedForm struct{ ID string }

// SetBoardData replaces the lanes. Generation must be the latest one issued by
// Store.NextGeneration, otherwise the result is stale and dropped.
type SetBoardData struct {
	Lanes      []domain.BoardLane
	Generation uint64
}

// SetSelectedRecord opens a record in the side panel. Nil closes it.
type SetSelectedRecord struct{ Record *domain.Record }

// ToggleStateFilter adds or removes a state option by value
type ToggleStateFilter struct{ Value int }

// ClearStateFilters empties the state filter
type ClearStateFilters struct{}

// SetNotice shows an informational status that is not a failure. An empty
// text clears it.
type SetNotice struct{ Text string }

// SetPendingCreate marks a create form as open in the external editor. The
// board waits for the user to confirm the save before it reloads.
type SetPendingCreate struct{ Pending bool }

// SetFailure reports a failed operation. Fatal marks initialization failures
// after which the board cannot be used.
type SetFailure struct {
	Err   error
	Fatal bool
}

func (SetProgressText) action()      {}
func (SetConfig) action()            {}
func (SetMetadata) action()          {}
func (SetSeparatorMetadata) action() {}
func (SetStateMetadata) action()     {}
func (SetViews) action()             {}
func (SetForms) action()             {}
func (SetSelectedView) action()      {}
func (SetSelectedForm) action()      {}
func (SetBoardData) action()         {}
func (SetSelectedRecord) action()    {}
func (ToggleStateFilter) action()    {}
func (ClearStateFilters) action()    {}
func (SetNotice) action()            {}
func (SetPendingCreate) action()     {}
func (SetFailure) action()           {}
