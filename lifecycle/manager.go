// Package lifecycle binds the schema manager and the meta store to the
// host platform's lifecycle hooks: activation, bootstrap, site switches,
// site deletion, and admin entry.
package lifecycle

import (
	"context"
	"log/slog"

	"github.com/sitekit/blogmeta"
	"github.com/sitekit/blogmeta/metrics"
	"github.com/sitekit/blogmeta/schema"
	"github.com/sitekit/blogmeta/store"
)

// Config holds configuration for the Manager.
type Config struct {
	// Schema drives table registration and migration (required).
	Schema *schema.Manager

	// Meta is the row store used for site-scoped deletion (required).
	Meta store.MetaStore

	// Logger is for observability (optional).
	Logger *slog.Logger

	// Collector records hook metrics (optional).
	Collector *metrics.Collector
}

// Manager implements the lifecycle hooks the host platform invokes.
type Manager struct {
	config Config
}

// New creates a new Manager with the given configuration.
func New(cfg Config) (*Manager, error) {
	if cfg.Schema == nil {
		return nil, blogmeta.ErrNilSchema
	}
	if cfg.Meta == nil {
		return nil, blogmeta.ErrNilStore
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Manager{config: cfg}, nil
}

// OnActivate handles plugin activation: it registers the table reference
// and runs the schema migration.
func (m *Manager) OnActivate(ctx context.Context) (schema.Result, error) {
	m.countHook("activate")

	m.config.Schema.RegisterTableReference()
	result, err := m.config.Schema.RunMigration(ctx)
	if err != nil {
		return schema.Result{}, err
	}

	m.config.Logger.InfoContext(ctx, "activation migration finished",
		"outcome", string(result.Outcome), "version", result.ToVersion)
	return result, nil
}

// OnInitialize handles bootstrap of a regular request: it registers the
// table reference so the handle resolves the blog-meta table. No DDL
// runs here.
func (m *Manager) OnInitialize(ctx context.Context) {
	m.countHook("init")
	m.config.Schema.RegisterTableReference()
}

// OnSwitchSite handles the host switching the active site. The blog-meta
// table is network-global, so the registration is simply re-applied for
// the new site context.
func (m *Manager) OnSwitchSite(ctx context.Context, siteID int64) error {
	if siteID <= 0 {
		return blogmeta.ErrInvalidSiteID
	}

	m.countHook("switch_site")
	m.config.Schema.RegisterTableReference()

	m.config.Logger.DebugContext(ctx, "re-registered table after site switch",
		"site_id", siteID)
	return nil
}

// OnSiteDeleted handles permanent removal of a site: every meta row the
// site owns is deleted. The table reference is re-applied first so the
// deletion resolves the right physical table even when the hook fires
// before bootstrap. Returns the number of rows removed; zero is not an
// error.
func (m *Manager) OnSiteDeleted(ctx context.Context, siteID int64) (int64, error) {
	if siteID <= 0 {
		return 0, blogmeta.ErrInvalidSiteID
	}

	m.countHook("site_deleted")
	m.config.Schema.RegisterTableReference()

	deleted, err := m.config.Meta.DeleteSiteMeta(ctx, siteID)
	if err != nil {
		return 0, err
	}

	m.config.Logger.InfoContext(ctx, "deleted site meta rows",
		"site_id", siteID, "rows", deleted)
	if m.config.Collector != nil {
		m.config.Collector.AddSiteMetaRowsDeleted(deleted)
	}
	return deleted, nil
}

// OnAdminEntered handles entry into the host's admin area, the catch-up
// point for networks upgraded by copying files: the migration runs again
// and applies whatever the stored version still needs.
func (m *Manager) OnAdminEntered(ctx context.Context) (schema.Result, error) {
	m.countHook("admin_entered")

	m.config.Schema.RegisterTableReference()
	return m.config.Schema.RunMigration(ctx)
}

func (m *Manager) countHook(hook string) {
	if m.config.Collector != nil {
		m.config.Collector.IncHookInvocation(hook)
	}
}
