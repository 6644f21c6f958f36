// Package controller orchestrates the board pipeline and the side panel. It
// performs remote work and reports every outcome to the store.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/metrics"
	"github.com/riordanpawley/laneboard/internal/services/host"
	"github.com/riordanpawley/laneboard/internal/store"
)

// Progress messages shown while initializing and refreshing
const (
	ProgressUserSettings  = "Retrieving user settings"
	ProgressConfiguration = "Fetching configuration"
	ProgressMetadata      = "Fetching meta data"
	ProgressViews         = "Fetching views"
	ProgressForms         = "Fetching forms"
	ProgressData          = "Fetching data"
)

// Controller errors
var (
	ErrNotInitialized  = errors.New("board is not initialized")
	ErrCreateDisabled  = errors.New("record creation is disabled for this board")
	ErrNoSelection     = errors.New("no record selected")
	ErrNoPendingCreate = errors.New("no create form is waiting for confirmation")
)

// ConfigLoader resolves the user's board configuration
type ConfigLoader interface {
	Load(ctx context.Context, userID string) (domain.BoardConfiguration, error)
}

// MetadataResolver resolves entity and attribute metadata
type MetadataResolver interface {
	FetchEntity(ctx context.Context, entity string) (domain.EntityMetadata, error)
	ResolveAttribute(ctx context.Context, entity, attribute string, meta domain.EntityMetadata) (domain.AttributeMetadata, error)
}

// Catalog lists views and card forms
type Catalog interface {
	ListViews(ctx context.Context, entity string) ([]domain.SavedView, error)
	ListForms(ctx context.Context, entity string) ([]domain.CardForm, error)
}

// Aggregator executes a view query and partitions the records into lanes
type Aggregator interface {
	Aggregate(ctx context.Context, fetchXML string, cfg domain.BoardConfiguration, separator domain.AttributeMetadata, entity domain.EntityMetadata) ([]domain.BoardLane, error)
}

// Deps holds the collaborators of a Controller
type Deps struct {
	Store      *store.Store
	Host       host.Host
	Loader     ConfigLoader
	Resolver   MetadataResolver
	Catalog    Catalog
	Aggregator Aggregator
	Metrics    *metrics.Metrics // Optional

	// StateAttribute is the attribute state filters apply to, default statecode
	StateAttribute string
}

// Controller drives the board
type Controller struct {
	store          *store.Store
	host           host.Host
	loader         ConfigLoader
	resolver       MetadataResolver
	catalog        Catalog
	aggregator     Aggregator
	metrics        *metrics.Metrics
	stateAttribute string
	logger         *slog.Logger
}

// New creates a new controller with dependency injection
func New(deps Deps, logger *slog.Logger) *Controller {
	stateAttribute := deps.StateAttribute
	if stateAttribute == "" {
		stateAttribute = store.DefaultStateAttribute
	}
	return &Controller{
		store:          deps.Store,
		host:           deps.Host,
		loader:         deps.Loader,
		resolver:       deps.Resolver,
		catalog:        deps.Catalog,
		aggregator:     deps.Aggregator,
		metrics:        deps.Metrics,
		stateAttribute: stateAttribute,
		logger:         logger,
	}
}

// Store returns the store the controller reports to
func (c *Controller) Store() *store.Store {
	return c.store
}

// Initialize runs the startup pipeline: user, configuration, metadata, views,
// forms and finally the records of the first view. Steps run strictly in order
// and any failure is fatal.
func (c *Controller) Initialize(ctx context.Context) error {
	c.progress(ProgressUserSettings)
	userID, err := c.host.CurrentUserID(ctx)
	if err != nil {
		return c.fail(err, true)
	}

	c.progress(ProgressConfiguration)
	cfg, err := c.loader.Load(ctx, userID)
	if err != nil {
		return c.fail(err, true)
	}

	c.progress(ProgressMetadata)
	meta, err := c.resolver.FetchEntity(ctx, cfg.EntityName)
	if err != nil {
		return c.fail(err, true)
	}
	separator, err := c.resolver.ResolveAttribute(ctx, cfg.EntityName, cfg.SwimLaneSource, meta)
	if err != nil {
		return c.fail(err, true)
	}
	stateMeta, err := c.resolver.ResolveAttribute(ctx, cfg.EntityName, c.stateAttribute, meta)
	if err != nil {
		return c.fail(err, true)
	}

	c.dispatch(store.SetConfig{Config: cfg})
	c.dispatch(store.SetMetadata{Metadata: meta})
	c.dispatch(store.SetSeparatorMetadata{Attribute: separator})
	c.dispatch(store.SetStateMetadata{Attribute: stateMeta})

	c.progress(ProgressViews)
	views, err := c.catalog.ListViews(ctx, cfg.EntityName)
	if err != nil {
		return c.fail(err, true)
	}
	c.dispatch(store.SetViews{Views: views})

	c.progress(ProgressForms)
	forms, err := c.catalog.ListForms(ctx, cfg.EntityName)
	if err != nil {
		return c.fail(err, true)
	}
	c.dispatch(store.SetForms{Forms: forms})

	view := c.store.State().SelectedView
	if view == nil {
		c.logger.Warn("no views available, board stays empty", "entity", cfg.EntityName)
		c.progress("")
		c.dispatch(store.SetNotice{Text: fmt.Sprintf("%v for %s", domain.ErrNoViews, cfg.EntityName)})
		return nil
	}

	c.logger.Info("board initialized",
		"entity", cfg.EntityName,
		"separator", separator.LogicalName,
		"options", len(separator.Options()),
		"views", len(views),
		"forms", len(forms),
	)

	return c.refresh(ctx, view.FetchXML, true)
}

// Refresh re-runs the selected view's query
func (c *Controller) Refresh(ctx context.Context) error {
	view := c.store.State().SelectedView
	if view == nil {
		return c.fail(ErrNotInitialized, false)
	}
	return c.RefreshWith(ctx, view.FetchXML)
}

// RefreshWith runs fetchXML and replaces the lanes. Each call is tagged with a
// new generation; a result overtaken by a later call is discarded.
func (c *Controller) RefreshWith(ctx context.Context, fetchXML string) error {
	return c.refresh(ctx, fetchXML, false)
}

func (c *Controller) refresh(ctx context.Context, fetchXML string, fatal bool) error {
	st := c.store.State()
	if st.Config == nil || st.Metadata == nil || st.SeparatorMetadata == nil {
		return c.fail(ErrNotInitialized, fatal)
	}

	gen := c.store.NextGeneration()
	c.progress(ProgressData)

	lanes, err := c.aggregator.Aggregate(ctx, fetchXML, *st.Config, *st.SeparatorMetadata, *st.Metadata)
	if err != nil {
		if c.store.State().Generation != gen {
			c.logger.Debug("dropping failure of superseded refresh", "generation", gen, "error", err)
			c.metrics.StaleResult()
			return nil
		}
		return c.fail(err, fatal)
	}

	if err := c.store.Dispatch(store.SetBoardData{Lanes: lanes, Generation: gen}); err != nil {
		if errors.Is(err, domain.ErrStaleResult) {
			c.metrics.StaleResult()
			return nil
		}
		return c.fail(err, fatal)
	}
	c.progress("")
	return nil
}

// SelectView switches to a catalog view and loads its records
func (c *Controller) SelectView(ctx context.Context, id string) error {
	view, ok := c.store.State().FindView(id)
	if !ok {
		return c.fail(fmt.Errorf("view %s is not in the catalog", id), false)
	}

	c.logger.Info("selecting view", "view", view.Name)
	c.dispatch(store.SetSelectedView{ID: id})
	return c.RefreshWith(ctx, view.FetchXML)
}

// SelectForm switches the card form. Records are not re-fetched.
func (c *Controller) SelectForm(id string) error {
	if _, ok := c.store.State().FindForm(id); !ok {
		return c.fail(fmt.Errorf("form %s is not in the catalog", id), false)
	}
	c.dispatch(store.SetSelectedForm{ID: id})
	return nil
}

// ToggleStateFilter adds or removes a state from the filter
func (c *Controller) ToggleStateFilter(value int) {
	c.dispatch(store.ToggleStateFilter{Value: value})
}

// ClearStateFilters shows records of every state again
func (c *Controller) ClearStateFilters() {
	c.dispatch(store.ClearStateFilters{})
}

func (c *Controller) progress(text string) {
	c.dispatch(store.SetProgressText{Text: text})
}

func (c *Controller) dispatch(a store.Action) {
	if err := c.store.Dispatch(a); err != nil {
		c.logger.Debug("dispatch rejected", "error", err)
	}
}

// fail logs err, reports it to the store and returns it
func (c *Controller) fail(err error, fatal bool) error {
	c.logger.Error("board operation failed", "kind", domain.ErrorKind(err), "fatal", fatal, "error", err)
	c.dispatch(store.SetFailure{Err: err, Fatal: fatal})
	return err
}
