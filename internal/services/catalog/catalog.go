// Package catalog lists the public views and card forms of an entity.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/services/webapi"
)

const (
	// Saved query type of public views
	publicViewQueryType = 0
	// System form type of card forms
	cardFormType = 11
)

// Catalog fetches saved views and card forms
type Catalog struct {
	client webapi.Retriever
	logger *slog.Logger
}

// NewCatalog creates a new catalog with dependency injection
func NewCatalog(client webapi.Retriever, logger *slog.Logger) *Catalog {
	return &Catalog{
		client: client,
		logger: logger,
	}
}

// ListViews returns the public views of the entity in service order
func (c *Catalog) ListViews(ctx context.Context, entity string) ([]domain.SavedView, error) {
	var resp struct {
		Value []domain.SavedView `json:"value"`
	}
	err := c.client.Retrieve(ctx, webapi.Request{
		Kind: webapi.KindSavedQuery,
		Query: webapi.ODataQuery("layoutxml,fetchxml,savedqueryid,name",
			fmt.Sprintf("returnedtypecode eq '%s' and querytype eq %d", entity, publicViewQueryType)),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("list views of %s: %w", entity, webapi.Unavailable("list views", entity, err))
	}

	if resp.Value == nil {
		resp.Value = []domain.SavedView{}
	}
	c.logger.Debug("listed views", "entity", entity, "count", len(resp.Value))
	return resp.Value, nil
}

// ListForms returns the card forms of the entity in service order
func (c *Catalog) ListForms(ctx context.Context, entity string) ([]domain.CardForm, error) {
	var resp struct {
		Value []domain.CardForm `json:"value"`
	}
	err := c.client.Retrieve(ctx, webapi.Request{
		Kind: webapi.KindSystemForm,
		Query: webapi.ODataQuery("formxml,name,formid",
			fmt.Sprintf("objecttypecode eq '%s' and type eq %d", entity, cardFormType)),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("list forms of %s: %w", entity, webapi.Unavailable("list forms", entity, err))
	}

	if resp.Value == nil {
		resp.Value = []domain.CardForm{}
	}
	c.logger.Debug("listed forms", "entity", entity, "count", len(resp.Value))
	return resp.Value, nil
}
