// Package webapi is a small read-only client for the Dataverse Web API, the
// metadata/query service the board is built from.
package webapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/riordanpawley/laneboard/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultAPIVersion = "9.2"
	formattedValues   = `odata.include-annotations="OData.Community.Display.V1.FormattedValue"`
)

// Doer abstracts HTTP execution for testing
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Retriever is the read capability consumed by the board services
type Retriever interface {
	Retrieve(ctx context.Context, req Request, out any) error
}

// Options configures a Client
type Options struct {
	BaseURL        string            // Organisation URL, e.g. https://org.crm.dynamics.com
	APIVersion     string            // Defaults to 9.2
	EntitySetNames map[string]string // Overrides for irregular collection names
	RateLimit      float64           // Requests per second, 0 disables limiting
	Burst          int
}

// Client executes read requests against the Web API
type Client struct {
	doer     Doer
	baseURL  string
	version  string
	setNames map[string]string
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewClient creates a new Web API client with dependency injection
func NewClient(doer Doer, opts Options, logger *slog.Logger) *Client {
	version := opts.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &Client{
		doer:     doer,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		version:  version,
		setNames: opts.EntitySetNames,
		limiter:  limiter,
		logger:   logger,
	}
}

// SetName returns the collection name used for an entity's records
func (c *Client) SetName(entity string) string {
	if name, ok := c.setNames[entity]; ok && name != "" {
		return name
	}
	return EntitySetName(entity)
}

// URL returns the absolute URL of a request
func (c *Client) URL(req Request) (string, error) {
	p, err := req.path(c.SetName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/api/data/v%s/%s", c.baseURL, c.version, p), nil
}

// Retrieve executes req and decodes the JSON answer into out
func (c *Client) Retrieve(ctx context.Context, req Request, out any) error {
	target, err := c.URL(req)
	if err != nil {
		return fmt.Errorf("building %s request: %w", req.Kind, err)
	}
	resource := string(req.Kind)
	if req.EntityName != "" {
		resource += ":" + req.EntityName
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &domain.RemoteUnavailableError{Op: "retrieve", Resource: resource, Err: err}
		}
	}

	c.logger.Debug("webapi retrieve", "kind", req.Kind, "entity", req.EntityName, "id", req.ID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("OData-MaxVersion", "4.0")
	httpReq.Header.Set("OData-Version", "4.0")
	httpReq.Header.Set("Prefer", formattedValues)

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return &domain.RemoteUnavailableError{Op: "retrieve", Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.RemoteUnavailableError{Op: "retrieve", Resource: resource, Err: err}
	}

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		c.logger.Warn("webapi unavailable", "resource", resource, "status", resp.StatusCode)
		return &domain.RemoteUnavailableError{Op: "retrieve", Resource: resource, StatusCode: resp.StatusCode}
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		var envelope odataError
		if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		c.logger.Debug("webapi rejected request", "resource", resource, "status", resp.StatusCode, "code", apiErr.Code)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &domain.RemoteUnavailableError{Op: "decode", Resource: resource, Err: err}
	}
	return nil
}
