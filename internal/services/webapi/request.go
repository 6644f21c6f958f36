package webapi

import (
	"fmt"
	"net/url"
	"strings"
)

// ResourceKind identifies the kind of resource a request targets
type ResourceKind string

const (
	KindEntityDefinition    ResourceKind = "EntityDefinition"
	KindAttributeDefinition ResourceKind = "AttributeDefinition"
	KindRecords             ResourceKind = "Records"
	KindSavedQuery          ResourceKind = "SavedQuery"
	KindSystemForm          ResourceKind = "SystemForm"
	KindSystemUser          ResourceKind = "SystemUser"
	KindWebResource         ResourceKind = "WebResource"
	KindWhoAmI              ResourceKind = "WhoAmI"
)

// Request is a read against the metadata/query service.
//
// Query is appended verbatim to the resource path, so it may carry extra path
// segments (a metadata cast) as well as the "?$select=..." part.
type Request struct {
	Kind       ResourceKind
	EntityName string // Entity the resource belongs to
	ID         string // Record id, or attribute logical name for KindAttributeDefinition
	SetName    string // Optional: collection name from entity metadata, KindRecords only
	Query      string
}

// path builds the resource path relative to the API root
func (r Request) path(setName func(string) string) (string, error) {
	switch r.Kind {
	case KindEntityDefinition:
		if r.EntityName == "" {
			return "", fmt.Errorf("entity definition request requires an entity name")
		}
		return fmt.Sprintf("EntityDefinitions(LogicalName='%s')%s", quote(r.EntityName), r.Query), nil

	case KindAttributeDefinition:
		if r.EntityName == "" || r.ID == "" {
			return "", fmt.Errorf("attribute definition request requires entity and attribute names")
		}
		return fmt.Sprintf("EntityDefinitions(LogicalName='%s')/Attributes(LogicalName='%s')%s",
			quote(r.EntityName), quote(r.ID), r.Query), nil

	case KindRecords:
		if r.EntityName == "" {
			return "", fmt.Errorf("records request requires an entity name")
		}
		set := r.SetName
		if set == "" {
			set = setName(r.EntityName)
		}
		return withID(set, r.ID) + r.Query, nil

	case KindSavedQuery:
		return withID("savedqueries", r.ID) + r.Query, nil

	case KindSystemForm:
		return withID("systemforms", r.ID) + r.Query, nil

	case KindSystemUser:
		return withID("systemusers", r.ID) + r.Query, nil

	case KindWebResource:
		return withID("webresourceset", r.ID) + r.Query, nil

	case KindWhoAmI:
		return "WhoAmI" + r.Query, nil

	default:
		return "", fmt.Errorf("unknown resource kind %q", r.Kind)
	}
}

func withID(set, id string) string {
	if id == "" {
		return set
	}
	return set + "(" + url.PathEscape(id) + ")"
}

// quote escapes a string literal for use inside an OData key
func quote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// EntitySetName derives the collection name of an entity the way the
// Web API's default pluralisation does: y -> ies, s/x -> es, otherwise s.
func EntitySetName(entity string) string {
	switch {
	case entity == "":
		return ""
	case strings.HasSuffix(entity, "y") && !strings.HasSuffix(entity, "ay") && !strings.HasSuffix(entity, "ey"):
		return strings.TrimSuffix(entity, "y") + "ies"
	case strings.HasSuffix(entity, "s"), strings.HasSuffix(entity, "x"):
		return entity + "es"
	default:
		return entity + "s"
	}
}

// FetchXMLQuery builds the query string executing a FetchXML expression
func FetchXMLQuery(fetchXML string) string {
	return "?fetchXml=" + url.QueryEscape(fetchXML)
}

// ODataQuery builds a "?$select=...&$filter=..." query string. The filter
// expression is percent-encoded; an empty filter is left out.
func ODataQuery(selectFields, filter string) string {
	q := "?$select=" + selectFields
	if filter != "" {
		q += "&$filter=" + strings.ReplaceAll(url.QueryEscape(filter), "+", "%20")
	}
	return q
}
