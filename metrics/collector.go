package metrics

// Collector wraps metrics and provides helper methods with a pre-filled
// store label, e.g. "mysql" or "sqlite".
type Collector struct {
	store string
}

// NewCollector creates a new Collector for the given store name.
func NewCollector(store string) *Collector {
	return &Collector{store: store}
}

// IncMigrationRun increments the migration runs counter for an outcome.
func (c *Collector) IncMigrationRun(outcome string) {
	MigrationRunsTotal.WithLabelValues(c.store, outcome).Inc()
}

// ObserveMigrationDuration records a migration duration observation.
func (c *Collector) ObserveMigrationDuration(seconds float64) {
	MigrationDuration.WithLabelValues(c.store).Observe(seconds)
}

// SetSchemaVersion sets the recorded schema version gauge.
func (c *Collector) SetSchemaVersion(version int64) {
	SchemaVersion.WithLabelValues(c.store).Set(float64(version))
}

// IncHookInvocation increments the hook invocations counter.
func (c *Collector) IncHookInvocation(hook string) {
	HookInvocationsTotal.WithLabelValues(c.store, hook).Inc()
}

// AddSiteMetaRowsDeleted adds to the deleted rows counter.
func (c *Collector) AddSiteMetaRowsDeleted(rows int64) {
	SiteMetaRowsDeletedTotal.WithLabelValues(c.store).Add(float64(rows))
}

// IncTableRegistration increments the table registrations counter.
func (c *Collector) IncTableRegistration() {
	TableRegistrationsTotal.WithLabelValues(c.store).Inc()
}
