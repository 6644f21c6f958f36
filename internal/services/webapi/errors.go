package webapi

import (
	"errors"
	"fmt"

	"github.com/riordanpawley/laneboard/internal/domain"
)

// APIError is a 4xx answer from the Web API carrying the OData error envelope
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("webapi error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("webapi error %d: %s", e.StatusCode, e.Message)
}

// odataError is the error envelope returned by the Web API
type odataError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// StatusCode returns the status of a rejected request, or 0 when err is not an APIError
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Unavailable reports a rejected request as a RemoteUnavailableError carrying
// its status. Any other error is returned unchanged.
func Unavailable(op, resource string, err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	return &domain.RemoteUnavailableError{Op: op, Resource: resource, StatusCode: apiErr.StatusCode, Err: apiErr}
}
