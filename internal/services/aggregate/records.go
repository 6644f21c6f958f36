package aggregate

import (
	"fmt"
	"strings"

	"github.com/riordanpawley/laneboard/internal/domain"
)

const (
	annotationSeparator = "@"
	formattedValue      = "@OData.Community.Display.V1.FormattedValue"
)

// DecodeRecords converts raw query rows into records. Annotation keys are
// split out: formatted values land in Record.Formatted, the rest are dropped.
func DecodeRecords(rows []map[string]any, entityType string, entity domain.EntityMetadata) []domain.Record {
	records := make([]domain.Record, 0, len(rows))
	idAttr := entity.IDAttribute()
	if entity.LogicalName == "" {
		idAttr = entityType + "id"
	}

	for _, row := range rows {
		r := domain.Record{
			EntityType: entityType,
			Values:     make(map[string]any, len(row)),
			Formatted:  make(map[string]string),
		}

		for key, value := range row {
			if attr, ok := strings.CutSuffix(key, formattedValue); ok {
				if s, ok := value.(string); ok {
					r.Formatted[attr] = s
				}
				continue
			}
			if strings.Contains(key, annotationSeparator) {
				continue
			}
			r.Values[key] = value
		}

		r.ID = stringValue(r.Values[idAttr])
		if entity.PrimaryNameAttribute != "" {
			r.Name = r.Display(entity.PrimaryNameAttribute)
		}
		if r.Name == "" {
			r.Name = r.ID
		}

		records = append(records, r)
	}

	return records
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
