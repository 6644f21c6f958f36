// Package boardconfig resolves the board configuration the current user has
// selected as their default.
package boardconfig

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/services/webapi"
)

// DefaultUserAttribute is the user attribute referencing the default board
const DefaultUserAttribute = "oss_defaultboardid"

// Loader reads the user's default board reference and decodes the stored blob
type Loader struct {
	client        webapi.Retriever
	userAttribute string
	logger        *slog.Logger
}

// NewLoader creates a new configuration loader. An empty userAttribute selects
// DefaultUserAttribute.
func NewLoader(client webapi.Retriever, userAttribute string, logger *slog.Logger) *Loader {
	if userAttribute == "" {
		userAttribute = DefaultUserAttribute
	}
	return &Loader{
		client:        client,
		userAttribute: userAttribute,
		logger:        logger,
	}
}

// Load resolves the configuration referenced by the user's settings
func (l *Loader) Load(ctx context.Context, userID string) (domain.BoardConfiguration, error) {
	configID, err := l.configReference(ctx, userID)
	if err != nil {
		return domain.BoardConfiguration{}, err
	}

	l.logger.Debug("fetching board configuration", "user", userID, "config", configID)

	var resource struct {
		Content string `json:"content"`
	}
	err = l.client.Retrieve(ctx, webapi.Request{
		Kind:  webapi.KindWebResource,
		ID:    configID,
		Query: "?$select=content",
	}, &resource)
	if err != nil {
		if webapi.StatusCode(err) == http.StatusNotFound {
			return domain.BoardConfiguration{}, &domain.ConfigurationMissingError{UserID: userID, Err: err}
		}
		return domain.BoardConfiguration{}, fmt.Errorf("fetch configuration %s: %w", configID,
			webapi.Unavailable("fetch configuration", configID, err))
	}

	cfg, err := Decode(resource.Content)
	if err != nil {
		var parseErr *domain.ConfigurationParseError
		if errors.As(err, &parseErr) {
			parseErr.ConfigID = configID
		}
		return domain.BoardConfiguration{}, err
	}

	l.logger.Info("loaded board configuration",
		"entity", cfg.EntityName,
		"swimLaneSource", cfg.SwimLaneSource,
		"showCreateButton", cfg.ShowCreateButton,
	)
	return cfg, nil
}

// configReference returns the id of the web resource holding the user's board
func (l *Loader) configReference(ctx context.Context, userID string) (string, error) {
	var user map[string]any
	err := l.client.Retrieve(ctx, webapi.Request{
		Kind:  webapi.KindSystemUser,
		ID:    userID,
		Query: "?$select=" + l.userAttribute,
	}, &user)
	if err != nil {
		return "", fmt.Errorf("fetch user settings: %w", webapi.Unavailable("fetch user settings", userID, err))
	}

	// Lookup columns come back as _<name>_value
	for _, key := range []string{l.userAttribute, "_" + l.userAttribute + "_value"} {
		if id, ok := user[key].(string); ok && strings.TrimSpace(id) != "" {
			return strings.TrimSpace(id), nil
		}
	}

	return "", &domain.ConfigurationMissingError{UserID: userID}
}

// Decode parses a base64-encoded configuration blob. Unknown fields are rejected.
func Decode(content string) (domain.BoardConfiguration, error) {
	if strings.TrimSpace(content) == "" {
		return domain.BoardConfiguration{}, &domain.ConfigurationParseError{Message: "empty content"}
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(content))
	if err != nil {
		return domain.BoardConfiguration{}, &domain.ConfigurationParseError{Message: "invalid base64", Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var cfg domain.BoardConfiguration
	if err := dec.Decode(&cfg); err != nil {
		return domain.BoardConfiguration{}, &domain.ConfigurationParseError{Message: "invalid json", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.BoardConfiguration{}, &domain.ConfigurationParseError{Message: "invalid json: trailing data after configuration object"}
	}
	if err := cfg.Validate(); err != nil {
		return domain.BoardConfiguration{}, &domain.ConfigurationParseError{Message: "invalid board", Err: err}
	}

	return cfg, nil
}

// Encode is the inverse of Decode
func Encode(cfg domain.BoardConfiguration) (string, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode configuration: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
