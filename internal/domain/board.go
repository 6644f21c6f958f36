// Package domain contains core business types for the laneboard application.
package domain

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// FallbackLaneKey identifies the lane holding records that match no known option
const FallbackLaneKey = "fallback"

// BoardConfiguration is the user's board setup decoded from the stored blob
type BoardConfiguration struct {
	EntityName       string `json:"entityName"`
	SwimLaneSource   string `json:"swimLaneSource"`
	ShowCreateButton bool   `json:"showCreateButton"`
	AppID            string `json:"appId"`
}

// Validate checks that the fields the pipeline depends on are present
func (c BoardConfiguration) Validate() error {
	if strings.TrimSpace(c.EntityName) == "" {
		return fmt.Errorf("entityName is required")
	}
	if strings.TrimSpace(c.SwimLaneSource) == "" {
		return fmt.Errorf("swimLaneSource is required")
	}
	return nil
}

// AttributeType is the declared type of an entity attribute
type AttributeType string

const (
	AttributePicklist AttributeType = "Picklist"
	AttributeStatus   AttributeType = "Status"
	AttributeState    AttributeType = "State"
	AttributeBoolean  AttributeType = "Boolean"
)

// IsChoice reports whether the type carries a discrete option set
func (t AttributeType) IsChoice() bool {
	switch t {
	case AttributePicklist, AttributeStatus, AttributeState, AttributeBoolean:
		return true
	default:
		return false
	}
}

// String returns the display string
func (t AttributeType) String() string {
	return string(t)
}

// Option is one value/label pair of an option set
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
	State *int   `json:"state,omitempty"` // Status options only: owning state value
}

// OptionSet is an ordered collection of options backing a choice attribute
type OptionSet struct {
	Name    string   `json:"name,omitempty"`
	Options []Option `json:"options"`
}

// Find returns the option with the given value
func (s *OptionSet) Find(value int) (Option, bool) {
	if s == nil {
		return Option{}, false
	}
	for _, o := range s.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// AttributeMetadata describes one attribute and, for choice types, its option set
type AttributeMetadata struct {
	LogicalName   string        `json:"logicalName"`
	AttributeType AttributeType `json:"attributeType"`
	DisplayName   string        `json:"displayName,omitempty"`
	OptionSet     *OptionSet    `json:"optionSet,omitempty"`
}

// Options returns the attribute's options in order, or nil
func (a AttributeMetadata) Options() []Option {
	if a.OptionSet == nil {
		return nil
	}
	return a.OptionSet.Options
}

// EntityMetadata describes an entity and its attributes
type EntityMetadata struct {
	LogicalName          string              `json:"logicalName"`
	EntitySetName        string              `json:"entitySetName,omitempty"`
	PrimaryIDAttribute   string              `json:"primaryIdAttribute,omitempty"`
	PrimaryNameAttribute string              `json:"primaryNameAttribute,omitempty"`
	Attributes           []AttributeMetadata `json:"attributes"`
}

// Attribute finds an attribute by case-insensitive logical name
func (m EntityMetadata) Attribute(logicalName string) (AttributeMetadata, bool) {
	for _, a := range m.Attributes {
		if strings.EqualFold(a.LogicalName, logicalName) {
			return a, true
		}
	}
	return AttributeMetadata{}, false
}

// IDAttribute returns the primary id attribute, defaulting to <entity>id
func (m EntityMetadata) IDAttribute() string {
	if m.PrimaryIDAttribute != "" {
		return m.PrimaryIDAttribute
	}
	return m.LogicalName + "id"
}

// SavedView is a stored, named query definition
type SavedView struct {
	ID        string `json:"savedqueryid"`
	Name      string `json:"name"`
	FetchXML  string `json:"fetchxml"`
	LayoutXML string `json:"layoutxml,omitempty"`
}

// CardForm is a stored layout used to render a record as a card
type CardForm struct {
	ID      string `json:"formid"`
	Name    string `json:"name"`
	FormXML string `json:"formxml,omitempty"`
}

// Fields returns the data field names referenced by the form's controls, in
// document order and without duplicates. Malformed XML yields what was read so far.
func (f CardForm) Fields() []string {
	if f.FormXML == "" {
		return nil
	}

	dec := xml.NewDecoder(strings.NewReader(f.FormXML))
	seen := make(map[string]bool)
	var fields []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return fields
		}
		el, ok := tok.(xml.StartElement)
		if !ok || el.Name.Local != "control" {
			continue
		}
		for _, attr := range el.Attr {
			if attr.Name.Local != "datafieldname" || attr.Value == "" {
				continue
			}
			name := strings.ToLower(attr.Value)
			if !seen[name] {
				seen[name] = true
				fields = append(fields, name)
			}
		}
	}
}

// Record is one entity instance returned by a view query
type Record struct {
	ID         string            `json:"id"`
	EntityType string            `json:"entityType"`
	Name       string            `json:"name"`
	Values     map[string]any    `json:"values,omitempty"`
	Formatted  map[string]string `json:"formatted,omitempty"`
}

// IntValue returns the attribute's value as an int. Booleans map to 0/1.
func (r Record) IntValue(attr string) (int, bool) {
	v, ok := r.Values[attr]
	if !ok || v == nil {
		return 0, false
	}

	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}

// Display returns the formatted value of attr, falling back to the raw value
func (r Record) Display(attr string) string {
	if s, ok := r.Formatted[attr]; ok && s != "" {
		return s
	}
	v, ok := r.Values[attr]
	if !ok || v == nil {
		return ""
	}
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprint(v)
}

// BoardLane is a bucket of records sharing one option value
type BoardLane struct {
	Option  *Option // nil for the fallback lane
	Records []Record
}

// Key returns the option value as a string, or FallbackLaneKey
func (l BoardLane) Key() string {
	if l.Option == nil {
		return FallbackLaneKey
	}
	return strconv.Itoa(l.Option.Value)
}

// Title returns the lane's display title
func (l BoardLane) Title() string {
	if l.Option == nil {
		return "Other"
	}
	return l.Option.Label
}

// IsFallback reports whether this is the lane for unmatched records
func (l BoardLane) IsFallback() bool {
	return l.Option == nil
}
