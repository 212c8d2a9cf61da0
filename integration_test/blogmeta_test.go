//go:build integration

package integration_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekit/blogmeta"
	"github.com/sitekit/blogmeta/lifecycle"
	"github.com/sitekit/blogmeta/options/sqloptions"
	"github.com/sitekit/blogmeta/schema"
)

// TestMain keeps integration tests sequential; they share a database.
func TestMain(m *testing.M) {
	os.Exit(m.Run())
}

func newManagers(t *testing.T, e *env) (*schema.Manager, *lifecycle.Manager) {
	t.Helper()

	sm, err := schema.New(schema.Config{Handle: e.handle, Store: e.schema, Options: e.options})
	require.NoError(t, err)

	lm, err := lifecycle.New(lifecycle.Config{Schema: sm, Meta: e.meta})
	require.NoError(t, err)

	return sm, lm
}

func runFreshInstall(t *testing.T, e *env) {
	ctx := context.Background()
	_, lm := newManagers(t, e)

	result, err := lm.OnActivate(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.OutcomeCreated, result.Outcome)
	assert.Equal(t, blogmeta.SchemaVersionTarget, result.ToVersion)

	// Second activation is a no-op.
	result, err = lm.OnActivate(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.OutcomeCurrent, result.Outcome)

	exists, err := e.schema.TableExists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
}

func runMetaRoundTrip(t *testing.T, e *env) {
	ctx := context.Background()
	_, lm := newManagers(t, e)

	_, err := lm.OnActivate(ctx)
	require.NoError(t, err)

	added, err := e.meta.AddMeta(ctx, 1, "site_title", "Integration Blog")
	require.NoError(t, err)
	assert.NotZero(t, added.MetaID)

	got, err := e.meta.GetMeta(ctx, 1, "site_title")
	require.NoError(t, err)
	assert.Equal(t, "Integration Blog", got.Value)

	updated, err := e.meta.UpdateMeta(ctx, 1, "site_title", "Renamed Blog")
	require.NoError(t, err)
	assert.Equal(t, added.MetaID, updated.MetaID)

	_, err = e.meta.AddMeta(ctx, 2, "site_title", "Other Blog")
	require.NoError(t, err)

	deleted, err := lm.OnSiteDeleted(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	rows, err := e.meta.ListSiteMeta(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func runLegacyUpgrade(t *testing.T, e *env, dialect sqloptions.Dialect) {
	ctx := context.Background()
	e.seedLegacyTable(t, dialect)

	sm, lm := newManagers(t, e)

	result, err := lm.OnActivate(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.OutcomeUpgraded, result.Outcome)
	assert.Equal(t, blogmeta.SchemaVersionLegacy, result.FromVersion)
	assert.Equal(t, blogmeta.SchemaVersionTarget, result.ToVersion)

	version, recorded, err := sm.StoredVersion(ctx)
	require.NoError(t, err)
	require.True(t, recorded)
	assert.Equal(t, blogmeta.SchemaVersionTarget, version)

	// The legacy row survives the rename and is readable through the
	// meta_id column.
	got, err := e.meta.GetMeta(ctx, 1, "legacy_key")
	require.NoError(t, err)
	assert.Equal(t, "legacy_value", got.Value)
	assert.NotZero(t, got.MetaID)
}

func TestPostgresFreshInstall(t *testing.T) {
	runFreshInstall(t, getPostgresEnv(t))
}

func TestPostgresMetaRoundTrip(t *testing.T) {
	runMetaRoundTrip(t, getPostgresEnv(t))
}

func TestPostgresLegacyUpgrade(t *testing.T) {
	runLegacyUpgrade(t, getPostgresEnv(t), sqloptions.DialectPostgres)
}

func TestMySQLFreshInstall(t *testing.T) {
	runFreshInstall(t, getMySQLEnv(t))
}

func TestMySQLMetaRoundTrip(t *testing.T) {
	runMetaRoundTrip(t, getMySQLEnv(t))
}

func TestMySQLLegacyUpgrade(t *testing.T) {
	runLegacyUpgrade(t, getMySQLEnv(t), sqloptions.DialectMySQL)
}
