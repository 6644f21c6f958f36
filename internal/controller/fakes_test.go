package controller

import (
	"context"
	"sync"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/services/host"
	"github.com/riordanpawley/laneboard/internal/store"
)

// progressRecorder captures the progress text visible when each step runs
type progressRecorder struct {
	mu    sync.Mutex
	store *store.Store
	seen  []string
}

func (p *progressRecorder) record() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen = append(p.seen, p.store.State().ProgressText)
}

type fakeHost struct {
	progress *progressRecorder
	userID   string
	userErr  error
	openErr  error

	mu     sync.Mutex
	opened []host.FormSpec
}

func (h *fakeHost) CurrentUserID(ctx context.Context) (string, error) {
	h.progress.record()
	return h.userID, h.userErr
}

func (h *fakeHost) OpenForm(ctx context.Context, spec host.FormSpec) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opened = append(h.opened, spec)
	return h.openErr
}

type fakeLoader struct {
	progress *progressRecorder
	cfg      domain.BoardConfiguration
	err      error
	userID   string
}

func (l *fakeLoader) Load(ctx context.Context, userID string) (domain.BoardConfiguration, error) {
	l.progress.record()
	l.userID = userID
	return l.cfg, l.err
}

type fakeResolver struct {
	progress   *progressRecorder
	entity     domain.EntityMetadata
	entityErr  error
	attributes map[string]domain.AttributeMetadata
	attrErr    map[string]error
	resolved   []string
}

func (r *fakeResolver) FetchEntity(ctx context.Context, entity string) (domain.EntityMetadata, error) {
	r.progress.record()
	return r.entity, r.entityErr
}

func (r *fakeResolver) ResolveAttribute(ctx context.Context, entity, attribute string, meta domain.EntityMetadata) (domain.AttributeMetadata, error) {
	r.resolved = append(r.resolved, attribute)
	if err := r.attrErr[attribute]; err != nil {
		return domain.AttributeMetadata{}, err
	}
	return r.attributes[attribute], nil
}

type fakeCatalog struct {
	progress *progressRecorder
	views    []domain.SavedView
	viewsErr error
	forms    []domain.CardForm
	formsErr error
}

func (c *fakeCatalog) ListViews(ctx context.Context, entity string) ([]domain.SavedView, error) {
	c.progress.record()
	return c.views, c.viewsErr
}

func (c *fakeCatalog) ListForms(ctx context.Context, entity string) ([]domain.CardForm, error) {
	c.progress.record()
	return c.forms, c.formsErr
}

type aggregateCall struct {
	fetchXML string
	entity   string
}

type fakeAggregator struct {
	progress *progressRecorder
	lanes    []domain.BoardLane
	err      error
	// hook, when set, replaces the canned result
	hook func(call int, fetchXML string) ([]domain.BoardLane, error)

	mu    sync.Mutex
	calls []aggregateCall
}

func (a *fakeAggregator) Aggregate(ctx context.Context, fetchXML string, cfg domain.BoardConfiguration, separator domain.AttributeMetadata, entity domain.EntityMetadata) ([]domain.BoardLane, error) {
	a.progress.record()
	a.mu.Lock()
	a.calls = append(a.calls, aggregateCall{fetchXML: fetchXML, entity: cfg.EntityName})
	n := len(a.calls)
	a.mu.Unlock()

	if a.hook != nil {
		return a.hook(n, fetchXML)
	}
	return a.lanes, a.err
}

func (a *fakeAggregator) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}
