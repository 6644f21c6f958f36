// Package metadata resolves entity and choice-attribute metadata from the Web API.
package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/services/webapi"
)

// Resolver fetches entity metadata and the option sets of separator attributes
type Resolver struct {
	client webapi.Retriever
	logger *slog.Logger
}

// NewResolver creates a new metadata resolver with dependency injection
func NewResolver(client webapi.Retriever, logger *slog.Logger) *Resolver {
	return &Resolver{
		client: client,
		logger: logger,
	}
}

// FetchEntity retrieves an entity definition with its attributes
func (r *Resolver) FetchEntity(ctx context.Context, entity string) (domain.EntityMetadata, error) {
	r.logger.Debug("fetching entity metadata", "entity", entity)

	var wire entityWire
	err := r.client.Retrieve(ctx, webapi.Request{
		Kind:       webapi.KindEntityDefinition,
		EntityName: entity,
		Query:      "?$expand=Attributes",
	}, &wire)
	if err != nil {
		if webapi.StatusCode(err) == http.StatusNotFound {
			return domain.EntityMetadata{}, &domain.ConfigurationParseError{
				Message: fmt.Sprintf("entity %s does not exist", entity),
				Err:     err,
			}
		}
		return domain.EntityMetadata{}, fmt.Errorf("fetch metadata of %s: %w", entity, webapi.Unavailable("fetch metadata", entity, err))
	}

	meta := wire.toDomain()
	if meta.LogicalName == "" {
		meta.LogicalName = entity
	}

	r.logger.Debug("fetched entity metadata", "entity", entity, "attributes", len(meta.Attributes))
	return meta, nil
}

// MetadataType maps a separator attribute type to its metadata sub-resource
func MetadataType(t domain.AttributeType) (string, bool) {
	switch t {
	case domain.AttributePicklist:
		return "Microsoft.Dynamics.CRM.PicklistAttributeMetadata", true
	case domain.AttributeStatus:
		return "Microsoft.Dynamics.CRM.StatusAttributeMetadata", true
	case domain.AttributeState:
		return "Microsoft.Dynamics.CRM.StateAttributeMetadata", true
	case domain.AttributeBoolean:
		return "Microsoft.Dynamics.CRM.BooleanAttributeMetadata", true
	default:
		return "", false
	}
}

// ResolveAttribute returns the fully resolved metadata, including the option
// set, of an attribute used to separate lanes or filter states
func (r *Resolver) ResolveAttribute(ctx context.Context, entity, attribute string, meta domain.EntityMetadata) (domain.AttributeMetadata, error) {
	field, ok := meta.Attribute(attribute)
	if !ok {
		return domain.AttributeMetadata{}, &domain.AttributeNotFoundError{Entity: entity, Attribute: attribute}
	}

	typeName, ok := MetadataType(field.AttributeType)
	if !ok {
		return domain.AttributeMetadata{}, &domain.UnsupportedSeparatorTypeError{Attribute: field.LogicalName, Type: field.AttributeType}
	}

	r.logger.Debug("resolving attribute metadata", "entity", entity, "attribute", field.LogicalName, "type", field.AttributeType)

	var wire attributeWire
	err := r.client.Retrieve(ctx, webapi.Request{
		Kind:       webapi.KindAttributeDefinition,
		EntityName: entity,
		ID:         field.LogicalName,
		Query:      "/" + typeName + "?$expand=OptionSet",
	}, &wire)
	if err != nil {
		if webapi.StatusCode(err) == http.StatusNotFound {
			return domain.AttributeMetadata{}, &domain.AttributeNotFoundError{Entity: entity, Attribute: field.LogicalName}
		}
		return domain.AttributeMetadata{}, fmt.Errorf("resolve attribute %s.%s: %w", entity, field.LogicalName,
			webapi.Unavailable("resolve attribute", entity+"."+field.LogicalName, err))
	}

	resolved := wire.toDomain()
	if resolved.LogicalName == "" {
		resolved.LogicalName = field.LogicalName
	}
	if resolved.AttributeType == "" {
		resolved.AttributeType = field.AttributeType
	}
	if resolved.DisplayName == "" {
		resolved.DisplayName = field.DisplayName
	}
	if resolved.OptionSet == nil {
		resolved.OptionSet = &domain.OptionSet{}
	}

	r.logger.Debug("resolved attribute metadata", "attribute", resolved.LogicalName, "options", len(resolved.OptionSet.Options))
	return resolved, nil
}
