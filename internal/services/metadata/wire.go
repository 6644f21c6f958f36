package metadata

import "github.com/riordanpawley/laneboard/internal/domain"

// Wire shapes of the Web API metadata payloads

type label struct {
	UserLocalizedLabel *struct {
		Label string `json:"Label"`
	} `json:"UserLocalizedLabel"`
}

func (l label) text() string {
	if l.UserLocalizedLabel == nil {
		return ""
	}
	return l.UserLocalizedLabel.Label
}

type optionWire struct {
	Value int   `json:"Value"`
	State *int  `json:"State,omitempty"`
	Label label `json:"Label"`
}

func (o optionWire) toDomain() domain.Option {
	return domain.Option{Value: o.Value, Label: o.Label.text(), State: o.State}
}

type optionSetWire struct {
	Name        string       `json:"Name"`
	Options     []optionWire `json:"Options"`
	TrueOption  *optionWire  `json:"TrueOption"`
	FalseOption *optionWire  `json:"FalseOption"`
}

// toDomain flattens the option set. Boolean sets become [false, true].
func (s *optionSetWire) toDomain() *domain.OptionSet {
	if s == nil {
		return nil
	}

	set := &domain.OptionSet{Name: s.Name, Options: make([]domain.Option, 0, len(s.Options)+2)}
	for _, o := range s.Options {
		set.Options = append(set.Options, o.toDomain())
	}
	if s.FalseOption != nil {
		set.Options = append(set.Options, s.FalseOption.toDomain())
	}
	if s.TrueOption != nil {
		set.Options = append(set.Options, s.TrueOption.toDomain())
	}
	return set
}

type attributeWire struct {
	LogicalName   string         `json:"LogicalName"`
	AttributeType string         `json:"AttributeType"`
	DisplayName   label          `json:"DisplayName"`
	OptionSet     *optionSetWire `json:"OptionSet,omitempty"`
}

func (a attributeWire) toDomain() domain.AttributeMetadata {
	return domain.AttributeMetadata{
		LogicalName:   a.LogicalName,
		AttributeType: domain.AttributeType(a.AttributeType),
		DisplayName:   a.DisplayName.text(),
		OptionSet:     a.OptionSet.toDomain(),
	}
}

type entityWire struct {
	LogicalName          string          `json:"LogicalName"`
	EntitySetName        string          `json:"EntitySetName"`
	PrimaryIDAttribute   string          `json:"PrimaryIdAttribute"`
	PrimaryNameAttribute string          `json:"PrimaryNameAttribute"`
	Attributes           []attributeWire `json:"Attributes"`
}

func (e entityWire) toDomain() domain.EntityMetadata {
	meta := domain.EntityMetadata{
		LogicalName:          e.LogicalName,
		EntitySetName:        e.EntitySetName,
		PrimaryIDAttribute:   e.PrimaryIDAttribute,
		PrimaryNameAttribute: e.PrimaryNameAttribute,
		Attributes:           make([]domain.AttributeMetadata, 0, len(e.Attributes)),
	}
	for _, a := range e.Attributes {
		meta.Attributes = append(meta.Attributes, a.toDomain())
	}
	return meta
}
