package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNoViews     = errors.New("no views available")
	ErrStaleResult = errors.New("stale result discarded")
)

// ConfigurationMissingError is returned when the user has no default board reference
type ConfigurationMissingError struct {
	UserID string
	Err    error
}

func (e *ConfigurationMissingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no board configured for user %s: %v", e.UserID, e.Err)
	}
	return fmt.Sprintf("no board configured for user %s", e.UserID)
}

func (e *ConfigurationMissingError) Unwrap() error {
	return e.Err
}

// ConfigurationParseError is returned when the stored configuration blob cannot be decoded
type ConfigurationParseError struct {
	ConfigID string // Optional: web resource holding the blob
	Message  string
	Err      error
}

func (e *ConfigurationParseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "invalid configuration"
	}
	if e.ConfigID != "" {
		msg = fmt.Sprintf("configuration [%s]: %s", e.ConfigID, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigurationParseError) Unwrap() error {
	return e.Err
}

// AttributeNotFoundError is returned when an attribute is missing from the entity metadata
type AttributeNotFoundError struct {
	Entity    string
	Attribute string
}

func (e *AttributeNotFoundError) Error() string {
	return fmt.Sprintf("attribute %s not found on entity %s", e.Attribute, e.Entity)
}

// UnsupportedSeparatorTypeError is returned when an attribute cannot separate lanes
type UnsupportedSeparatorTypeError struct {
	Attribute string
	Type      AttributeType
}

func (e *UnsupportedSeparatorTypeError) Error() string {
	return fmt.Sprintf("type %s of attribute %s is not allowed as swim lane separator", e.Type, e.Attribute)
}

// QueryExecutionError is returned when the data store rejects a query
type QueryExecutionError struct {
	Entity  string
	Message string
	Err     error
}

func (e *QueryExecutionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("query on %s rejected: %s", e.Entity, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("query on %s rejected: %v", e.Entity, e.Err)
	}
	return fmt.Sprintf("query on %s rejected", e.Entity)
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}

// RemoteUnavailableError represents a network or service failure at a fetch boundary
type RemoteUnavailableError struct {
	Op         string // Operation: "retrieve", "whoami", etc.
	Resource   string // Optional: requested resource path
	StatusCode int    // Optional: HTTP status when the service answered
	Err        error
}

func (e *RemoteUnavailableError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Resource != "":
		return fmt.Sprintf("webapi %s [%s]: status %d", e.Op, e.Resource, e.StatusCode)
	case e.Resource != "" && e.Err != nil:
		return fmt.Sprintf("webapi %s [%s]: %v", e.Op, e.Resource, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("webapi %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("webapi %s failed", e.Op)
}

func (e *RemoteUnavailableError) Unwrap() error {
	return e.Err
}

// ErrorKind returns the stable name of the error kind used in failure messages
func ErrorKind(err error) string {
	var (
		missing     *ConfigurationMissingError
		parse       *ConfigurationParseError
		notFound    *AttributeNotFoundError
		unsupported *UnsupportedSeparatorTypeError
		query       *QueryExecutionError
		remote      *RemoteUnavailableError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &missing):
		return "ConfigurationMissingError"
	case errors.As(err, &parse):
		return "ConfigurationParseError"
	case errors.As(err, &notFound):
		return "AttributeNotFoundError"
	case errors.As(err, &unsupported):
		return "UnsupportedSeparatorTypeError"
	case errors.As(err, &query):
		return "QueryExecutionError"
	case errors.As(err, &remote):
		return "RemoteUnavailableError"
	default:
		return "Error"
	}
}

// FailureMessage formats err as a named failure for display
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	return ErrorKind(err) + ": " + err.Error()
}
