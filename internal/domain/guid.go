package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FormatGUID normalises a GUID as returned by the host ("{ABC...}") into the
// lower-case, brace-less form the Web API expects.
func FormatGUID(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	id, err := uuid.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid guid %q: %w", s, err)
	}
	return id.String(), nil
}
