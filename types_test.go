package blogmeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaVersion_Constants(t *testing.T) {
	t.Run("legacy version is below target", func(t *testing.T) {
		assert.Less(t, SchemaVersionLegacy, SchemaVersionTarget)
	})

	t.Run("versions are positive", func(t *testing.T) {
		assert.Greater(t, SchemaVersionLegacy, int64(0))
		assert.Greater(t, SchemaVersionTarget, int64(0))
	})

	t.Run("key index prefix fits within key length", func(t *testing.T) {
		assert.LessOrEqual(t, KeyIndexPrefix, MaxKeyLength)
	})
}

func TestMeta_ZeroValues(t *testing.T) {
	t.Run("zero value meta", func(t *testing.T) {
		var m Meta

		assert.Equal(t, int64(0), m.MetaID)
		assert.Equal(t, int64(0), m.SiteID)
		assert.Equal(t, "", m.Key)
		assert.Equal(t, "", m.Value)
	})

	t.Run("initialized meta", func(t *testing.T) {
		m := Meta{
			MetaID: 7,
			SiteID: 5,
			Key:    "color",
			Value:  "blue",
		}

		assert.Equal(t, int64(7), m.MetaID)
		assert.Equal(t, int64(5), m.SiteID)
		assert.Equal(t, "color", m.Key)
		assert.Equal(t, "blue", m.Value)
	})
}
