package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekit/blogmeta"
)

func TestDispatch_Activate(t *testing.T) {
	f := newFixture(t)
	d := NewDispatcher(f.manager, nil)

	err := d.Dispatch(context.Background(), EventActivate, 0)
	require.NoError(t, err)

	exists, err := f.store.TableExists(context.Background())
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDispatch_SiteDeleted(t *testing.T) {
	f := newFixture(t)
	d := NewDispatcher(f.manager, nil)
	ctx := context.Background()

	require.NoError(t, d.Dispatch(ctx, EventActivate, 0))

	_, err := f.store.AddMeta(ctx, 7, "theme", "dark")
	require.NoError(t, err)

	err = d.Dispatch(ctx, EventSiteDeleted, 7)
	require.NoError(t, err)

	rows, err := f.store.ListSiteMeta(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDispatch_SiteEventsValidateSiteID(t *testing.T) {
	f := newFixture(t)
	d := NewDispatcher(f.manager, nil)

	err := d.Dispatch(context.Background(), EventSwitchSite, 0)
	assert.ErrorIs(t, err, blogmeta.ErrInvalidSiteID)

	err = d.Dispatch(context.Background(), EventSiteDeleted, -5)
	assert.ErrorIs(t, err, blogmeta.ErrInvalidSiteID)
}

func TestDispatch_UnknownEvent(t *testing.T) {
	f := newFixture(t)
	d := NewDispatcher(f.manager, nil)

	err := d.Dispatch(context.Background(), Event("uninstall"), 0)
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestDispatch_InitializeAndAdminEntered(t *testing.T) {
	f := newFixture(t)
	d := NewDispatcher(f.manager, nil)
	ctx := context.Background()

	require.NoError(t, d.Dispatch(ctx, EventInitialize, 0))
	assert.Equal(t, []string{blogmeta.MetaTable}, f.handle.GlobalTables())

	require.NoError(t, d.Dispatch(ctx, EventAdminEntered, 0))

	exists, err := f.store.TableExists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
}
