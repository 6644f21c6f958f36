package controller

import (
	"context"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/services/host"
	"github.com/riordanpawley/laneboard/internal/store"
)

// Side-by-side panel

// OpenRecord shows a record in the side panel
func (c *Controller) OpenRecord(rec domain.Record) {
	c.logger.Debug("opening record", "entity", rec.EntityType, "id", rec.ID)
	c.dispatch(store.SetSelectedRecord{Record: &rec})
}

// CloseOverlay hides the side panel without touching the board
func (c *Controller) CloseOverlay() {
	c.dispatch(store.SetSelectedRecord{Record: nil})
}

// CloseAndRefresh hides the side panel, then reloads the selected view once
func (c *Controller) CloseAndRefresh(ctx context.Context) error {
	c.CloseOverlay()
	return c.Refresh(ctx)
}

// EditRecord opens the selected record's form in the external editor without
// app navigation, next to the board
func (c *Controller) EditRecord(ctx context.Context) error {
	return c.openSelected(ctx, host.DisplayInline)
}

// OpenInNewWindow opens the selected record's form as a full app page
func (c *Controller) OpenInNewWindow(ctx context.Context) error {
	return c.openSelected(ctx, host.DisplayNewWindow)
}

func (c *Controller) openSelected(ctx context.Context, mode host.DisplayMode) error {
	st := c.store.State()
	if st.SelectedRecord == nil {
		return c.fail(ErrNoSelection, false)
	}

	err := c.host.OpenForm(ctx, host.FormSpec{
		EntityType:  st.SelectedRecord.EntityType,
		EntityID:    st.SelectedRecord.ID,
		DisplayMode: mode,
		AppID:       appID(st),
	})
	if err != nil {
		return c.fail(err, false)
	}
	return nil
}

// CreateRecord opens a quick-create form for the board's entity. The board is
// not reloaded until the user confirms the save with ConfirmCreate, since the
// editor runs outside laneboard and reports nothing back.
func (c *Controller) CreateRecord(ctx context.Context) error {
	st := c.store.State()
	if st.Config == nil {
		return c.fail(ErrNotInitialized, false)
	}
	if !st.Config.ShowCreateButton {
		return c.fail(ErrCreateDisabled, false)
	}

	err := c.host.OpenForm(ctx, host.FormSpec{
		EntityType:  st.Config.EntityName,
		CreateMode:  true,
		DisplayMode: host.DisplayQuickCreate,
		AppID:       appID(st),
	})
	if err != nil {
		return c.fail(err, false)
	}
	c.dispatch(store.SetPendingCreate{Pending: true})
	return nil
}

// ConfirmCreate ends a pending create and reloads the selected view once
func (c *Controller) ConfirmCreate(ctx context.Context) error {
	if !c.store.State().PendingCreate {
		return c.fail(ErrNoPendingCreate, false)
	}
	c.CancelCreate()
	return c.Refresh(ctx)
}

// CancelCreate ends a pending create without reloading
func (c *Controller) CancelCreate() {
	c.dispatch(store.SetPendingCreate{Pending: false})
}

func appID(st store.State) string {
	if st.Config == nil {
		return ""
	}
	return st.Config.AppID
}
