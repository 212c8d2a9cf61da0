package memory

import (
	"context"
	"testing"

	"github.com/sitekit/blogmeta"
	"github.com/sitekit/blogmeta/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMeta_AssignsMonotonicIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.AddMeta(ctx, 5, "color", "blue")
	require.NoError(t, err)
	second, err := s.AddMeta(ctx, 5, "color", "green")
	require.NoError(t, err)

	assert.Greater(t, second.MetaID, first.MetaID)
}

func TestAddMeta_RejectsInvalidInput(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.AddMeta(ctx, 0, "color", "blue")
	assert.ErrorIs(t, err, blogmeta.ErrInvalidSiteID)

	_, err = s.AddMeta(ctx, 5, "", "blue")
	assert.ErrorIs(t, err, blogmeta.ErrEmptyMetaKey)
}

func TestGetMeta_ReturnsFirstByMetaID(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.AddMeta(ctx, 5, "color", "blue")
	require.NoError(t, err)
	_, err = s.AddMeta(ctx, 5, "color", "green")
	require.NoError(t, err)

	got, err := s.GetMeta(ctx, 5, "color")
	require.NoError(t, err)
	assert.Equal(t, first.MetaID, got.MetaID)
	assert.Equal(t, "blue", got.Value)
}

func TestGetMeta_NotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.GetMeta(ctx, 5, "missing")
	assert.ErrorIs(t, err, store.ErrMetaNotFound)
}

func TestUpdateMeta_UpsertsWhenAbsent(t *testing.T) {
	s := New()
	ctx := context.Background()

	m, err := s.UpdateMeta(ctx, 5, "color", "blue")
	require.NoError(t, err)
	assert.NotZero(t, m.MetaID)

	m, err = s.UpdateMeta(ctx, 5, "color", "green")
	require.NoError(t, err)

	got, err := s.GetMeta(ctx, 5, "color")
	require.NoError(t, err)
	assert.Equal(t, "green", got.Value)
	assert.Equal(t, m.MetaID, got.MetaID)
}

func TestDeleteMeta_NotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.DeleteMeta(ctx, 5, "missing")
	assert.ErrorIs(t, err, store.ErrMetaNotFound)
}

func TestListSiteMeta_OnlyOwnSite(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.AddMeta(ctx, 5, "color", "blue")
	require.NoError(t, err)
	_, err = s.AddMeta(ctx, 5, "theme", "dark")
	require.NoError(t, err)
	_, err = s.AddMeta(ctx, 6, "color", "red")
	require.NoError(t, err)

	metas, err := s.ListSiteMeta(ctx, 5)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "color", metas[0].Key)
	assert.Equal(t, "theme", metas[1].Key)
}

func TestDeleteSiteMeta_RemovesAllRowsForSite(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := s.AddMeta(ctx, 5, "key", "value")
		require.NoError(t, err)
	}
	_, err := s.AddMeta(ctx, 6, "key", "value")
	require.NoError(t, err)

	deleted, err := s.DeleteSiteMeta(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	metas, err := s.ListSiteMeta(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, metas)

	other, err := s.ListSiteMeta(ctx, 6)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestDeleteSiteMeta_NoRowsIsNotAnError(t *testing.T) {
	s := New()
	ctx := context.Background()

	deleted, err := s.DeleteSiteMeta(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestSchemaState_Transitions(t *testing.T) {
	s := New()
	ctx := context.Background()

	exists, err := s.TableExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.CreateMetaTable(ctx))
	require.NoError(t, s.CreateMetaTable(ctx))

	exists, err = s.TableExists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "meta_id", s.PKColumn())
}

func TestRenameLegacyMetaID(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.RenameLegacyMetaID(ctx)
	assert.Error(t, err, "rename without a table should fail")

	s.SeedLegacyTable()
	assert.Equal(t, "id", s.PKColumn())

	require.NoError(t, s.RenameLegacyMetaID(ctx))
	assert.Equal(t, "meta_id", s.PKColumn())
}
