package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMigrationRunsTotal_Increment(t *testing.T) {
	before := testutil.ToFloat64(MigrationRunsTotal.WithLabelValues("test-store", "created"))
	MigrationRunsTotal.WithLabelValues("test-store", "created").Inc()
	after := testutil.ToFloat64(MigrationRunsTotal.WithLabelValues("test-store", "created"))

	assert.Equal(t, before+1, after)
}

func TestSchemaVersion_SetValue(t *testing.T) {
	SchemaVersion.WithLabelValues("test-store-2").Set(202003230001)
	value := testutil.ToFloat64(SchemaVersion.WithLabelValues("test-store-2"))

	assert.Equal(t, float64(202003230001), value)
}

func TestHookInvocationsTotal_Increment(t *testing.T) {
	before := testutil.ToFloat64(HookInvocationsTotal.WithLabelValues("test-store-3", "activate"))
	HookInvocationsTotal.WithLabelValues("test-store-3", "activate").Inc()
	after := testutil.ToFloat64(HookInvocationsTotal.WithLabelValues("test-store-3", "activate"))

	assert.Equal(t, before+1, after)
}

func TestSiteMetaRowsDeletedTotal_Add(t *testing.T) {
	before := testutil.ToFloat64(SiteMetaRowsDeletedTotal.WithLabelValues("test-store-4"))
	SiteMetaRowsDeletedTotal.WithLabelValues("test-store-4").Add(3)
	after := testutil.ToFloat64(SiteMetaRowsDeletedTotal.WithLabelValues("test-store-4"))

	assert.Equal(t, before+3, after)
}

func TestMigrationDuration_Observe(t *testing.T) {
	MigrationDuration.WithLabelValues("test-store-5").Observe(0.2)
	count := testutil.CollectAndCount(MigrationDuration)

	assert.Greater(t, count, 0)
}
