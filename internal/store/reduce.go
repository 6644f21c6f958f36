package store

import (
	"strings"

	"github.com/riordanpawley/laneboard/internal/domain"
)

// issueGeneration advances the board data generation. Dispatched by NextGeneration.
type issueGeneration struct{}

func (issueGeneration) action() {}

// Reduce applies a to s and returns the new state. It never mutates s.
// Actions that would break an invariant leave the state unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetProgressText:
		s.ProgressText = a.Text
		if a.Text != "" {
			s.Failure = ""
			s.Fatal = false
			s.Notice = ""
		}

	case SetConfig:
		cfg := a.Config
		s.Config = &cfg

	case SetMetadata:
		meta := a.Metadata
		s.Metadata = &meta

	case SetSeparatorMetadata:
		attr := a.Attribute
		s.SeparatorMetadata = &attr

	case SetStateMetadata:
		attr := a.Attribute
		s.StateMetadata = &attr
		s.StateFilter = retainKnown(s.StateFilter, attr.OptionSet)

	case SetViews:
		prev := ""
		if s.SelectedView != nil {
			prev = s.SelectedView.ID
		}
		s.Views = append([]domain.SavedView{}, a.Views...)
		s.SelectedView = nil
		if v, ok := s.FindView(prev); ok && prev != "" {
			s.SelectedView = &v
		} else if len(s.Views) > 0 {
			v := s.Views[0]
			s.SelectedView = &v
		}

	case SetForms:
		prev := ""
		if s.SelectedForm != nil {
			prev = s.SelectedForm.ID
		}
		s.Forms = append([]domain.CardForm{}, a.Forms...)
		s.SelectedForm = nil
		if f, ok := s.FindForm(prev); ok && prev != "" {
			s.SelectedForm = &f
		} else if len(s.Forms) > 0 {
			f := s.Forms[0]
			s.SelectedForm = &f
		}

	case SetSelectedView:
		if v, ok := s.FindView(a.ID); ok {
			s.SelectedView = &v
		}

	case SetSelectedForm:
		if f, ok := s.FindForm(a.ID); ok {
			s.SelectedForm = &f
		}

	case SetBoardData:
		if a.Generation != s.Generation {
			return s
		}
		s.Lanes = a.Lanes
		s.Loaded = true

	case SetSelectedRecord:
		if a.Record == nil {
			s.SelectedRecord = nil
			return s
		}
		if s.Config == nil || !strings.EqualFold(a.Record.EntityType, s.Config.EntityName) {
			return s
		}
		rec := *a.Record
		s.SelectedRecord = &rec

	case ToggleStateFilter:
		if s.StateMetadata == nil {
			return s
		}
		opt, ok := s.StateMetadata.OptionSet.Find(a.Value)
		if !ok {
			return s
		}
		s.StateFilter = s.StateFilter.Toggle(opt)

	case ClearStateFilters:
		s.StateFilter = s.StateFilter.Clear()

	case SetNotice:
		s.Notice = a.Text

	case SetPendingCreate:
		if a.Pending && (s.Config == nil || !s.Config.ShowCreateButton) {
			return s
		}
		s.PendingCreate = a.Pending

	case SetFailure:
		s.ProgressText = ""
		s.Notice = ""
		s.Failure = domain.FailureMessage(a.Err)
		s.Fatal = s.Fatal || a.Fatal

	case issueGeneration:
		s.Generation++
	}

	return s
}

// retainKnown drops filter options that are not in set
func retainKnown(f domain.StateFilter, set *domain.OptionSet) domain.StateFilter {
	next := f
	for _, o := range f.Options() {
		if _, ok := set.Find(o.Value); !ok {
			next = next.Toggle(o)
		}
	}
	return next
}
