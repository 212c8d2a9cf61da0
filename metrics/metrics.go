package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MigrationRunsTotal tracks migration runs by outcome (created, upgraded,
// current, denied, no-path).
var MigrationRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blogmeta_migration_runs_total",
		Help: "Total schema migration runs by outcome",
	},
	[]string{"store", "outcome"},
)

// MigrationDuration tracks how long migration runs take.
var MigrationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "blogmeta_migration_duration_seconds",
		Help:    "Duration of schema migration runs",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"store"},
)

// SchemaVersion reports the currently recorded schema version.
var SchemaVersion = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "blogmeta_schema_version",
		Help: "Recorded blog-meta schema version",
	},
	[]string{"store"},
)

// HookInvocationsTotal tracks lifecycle hook invocations by hook name.
var HookInvocationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blogmeta_hook_invocations_total",
		Help: "Total lifecycle hook invocations",
	},
	[]string{"store", "hook"},
)

// SiteMetaRowsDeletedTotal tracks rows removed by site deletions.
var SiteMetaRowsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blogmeta_site_meta_rows_deleted_total",
		Help: "Total meta rows deleted on site removal",
	},
	[]string{"store"},
)

// TableRegistrationsTotal tracks table reference registrations on the
// shared handle.
var TableRegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blogmeta_table_registrations_total",
		Help: "Total table reference registrations",
	},
	[]string{"store"},
)
