package domain

import "sort"

// StateFilter is the set of state options the user has toggled on.
// An empty filter shows every record.
type StateFilter struct {
	selected map[int]Option
}

// NewStateFilter creates a new empty filter
func NewStateFilter() StateFilter {
	return StateFilter{selected: make(map[int]Option)}
}

// IsActive returns true if any state is selected
func (f StateFilter) IsActive() bool {
	return len(f.selected) > 0
}

// Contains reports whether the state value is selected
func (f StateFilter) Contains(value int) bool {
	_, ok := f.selected[value]
	return ok
}

// Toggle returns a copy of the filter with the option added, or removed when
// it was already selected. The receiver is left untouched.
func (f StateFilter) Toggle(o Option) StateFilter {
	next := make(map[int]Option, len(f.selected)+1)
	for k, v := range f.selected {
		next[k] = v
	}
	if _, ok := next[o.Value]; ok {
		delete(next, o.Value)
	} else {
		next[o.Value] = o
	}
	return StateFilter{selected: next}
}

// Clear returns an empty filter
func (f StateFilter) Clear() StateFilter {
	return NewStateFilter()
}

// Options returns the selected options ordered by value
func (f StateFilter) Options() []Option {
	opts := make([]Option, 0, len(f.selected))
	for _, o := range f.selected {
		opts = append(opts, o)
	}
	sort.Slice(opts, func(i, j int) bool { return opts[i].Value < opts[j].Value })
	return opts
}

// Label returns the selected labels joined by "|", or "All states"
func (f StateFilter) Label() string {
	if !f.IsActive() {
		return "All states"
	}
	var label string
	for i, o := range f.Options() {
		if i > 0 {
			label += "|"
		}
		label += o.Label
	}
	return label
}

// Matches returns true if the record passes the filter
func (f StateFilter) Matches(r Record, stateAttribute string) bool {
	if !f.IsActive() {
		return true
	}
	value, ok := r.IntValue(stateAttribute)
	if !ok {
		return false
	}
	return f.Contains(value)
}

// Apply returns lanes holding only the matching records. Lane structure is kept
// and the input lanes are never modified. A record without a state value is
// judged by the owning state of its lane's option, if the lane has one.
func (f StateFilter) Apply(lanes []BoardLane, stateAttribute string) []BoardLane {
	if !f.IsActive() {
		return lanes
	}

	result := make([]BoardLane, 0, len(lanes))
	for _, lane := range lanes {
		records := make([]Record, 0, len(lane.Records))
		for _, r := range lane.Records {
			if f.matchesInLane(r, lane, stateAttribute) {
				records = append(records, r)
			}
		}
		result = append(result, BoardLane{Option: lane.Option, Records: records})
	}
	return result
}

func (f StateFilter) matchesInLane(r Record, lane BoardLane, stateAttribute string) bool {
	if _, ok := r.IntValue(stateAttribute); ok {
		return f.Matches(r, stateAttribute)
	}
	if lane.Option != nil && lane.Option.State != nil {
		return f.Contains(*lane.Option.State)
	}
	return false
}
