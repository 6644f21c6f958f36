// Package host provides the capabilities of the hosting application: opening
// record forms in the external editor and identifying the current user.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"runtime"
	"strings"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/services/webapi"
)

// DisplayMode controls how a form is presented
type DisplayMode string

const (
	DisplayInline      DisplayMode = "inline"
	DisplayNewWindow   DisplayMode = "new-window"
	DisplayQuickCreate DisplayMode = "quick-create"
)

// FormSpec describes a form to open
type FormSpec struct {
	EntityType  string
	EntityID    string // Empty in create mode
	CreateMode  bool
	DisplayMode DisplayMode
	AppID       string // Optional: overrides the host's default app
}

// Host is the capability surface the controller depends on
type Host interface {
	OpenForm(ctx context.Context, spec FormSpec) error
	CurrentUserID(ctx context.Context) (string, error)
}

// BrowserHost opens forms of the model-driven app in the system browser
type BrowserHost struct {
	orgURL string
	appID  string
	userID string
	client webapi.Retriever
	runner CommandRunner
	opener string
	logger *slog.Logger
}

// Options configures a BrowserHost
type Options struct {
	OrgURL string // Organisation URL, e.g. https://org.crm.dynamics.com
	AppID  string // Default model-driven app id
	UserID string // Optional: skips the WhoAmI lookup
	Opener string // Optional: launcher command, defaults per OS
}

// NewBrowserHost creates a new host with dependency injection
func NewBrowserHost(client webapi.Retriever, runner CommandRunner, opts Options, logger *slog.Logger) *BrowserHost {
	opener := opts.Opener
	if opener == "" {
		opener = defaultOpener()
	}
	return &BrowserHost{
		orgURL: strings.TrimRight(opts.OrgURL, "/"),
		appID:  opts.AppID,
		userID: opts.UserID,
		client: client,
		runner: runner,
		opener: opener,
		logger: logger,
	}
}

func defaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// FormURL builds the address of the form described by spec
func (h *BrowserHost) FormURL(spec FormSpec) (string, error) {
	if spec.EntityType == "" {
		return "", fmt.Errorf("form requires an entity type")
	}
	if !spec.CreateMode && spec.EntityID == "" {
		return "", fmt.Errorf("form of %s requires a record id", spec.EntityType)
	}

	appID := spec.AppID
	if appID == "" {
		appID = h.appID
	}

	q := url.Values{}
	if appID != "" {
		q.Set("app", appID)
	}
	q.Set("pagetype", "entityrecord")
	q.Set("etn", spec.EntityType)
	if !spec.CreateMode {
		q.Set("id", spec.EntityID)
	}
	switch spec.DisplayMode {
	case DisplayInline:
		q.Set("navbar", "off")
	case DisplayQuickCreate:
		q.Set("navbar", "off")
		q.Set("cmdbar", "false")
	}

	return h.orgURL + "/main.aspx?" + q.Encode(), nil
}

// OpenForm launches the form in the browser
func (h *BrowserHost) OpenForm(ctx context.Context, spec FormSpec) error {
	u, err := h.FormURL(spec)
	if err != nil {
		return err
	}

	h.logger.Info("opening form", "entity", spec.EntityType, "id", spec.EntityID, "mode", spec.DisplayMode)

	if out, err := h.runner.Run(ctx, h.opener, u); err != nil {
		return fmt.Errorf("open form with %s: %w: %s", h.opener, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// CurrentUserID returns the configured user, or asks the service who the
// authenticated caller is
func (h *BrowserHost) CurrentUserID(ctx context.Context) (string, error) {
	if h.userID != "" {
		return domain.FormatGUID(h.userID)
	}

	var resp struct {
		UserID string `json:"UserId"`
	}
	if err := h.client.Retrieve(ctx, webapi.Request{Kind: webapi.KindWhoAmI}, &resp); err != nil {
		return "", fmt.Errorf("identify current user: %w", webapi.Unavailable("whoami", "", err))
	}

	id, err := domain.FormatGUID(resp.UserID)
	if err != nil {
		return "", &domain.RemoteUnavailableError{Op: "whoami", Err: err}
	}

	h.logger.Debug("identified current user", "user", id)
	return id, nil
}
