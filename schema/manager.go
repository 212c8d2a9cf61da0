// Package schema owns the blog-meta table's registration on the shared
// database handle and its versioned migration. The migration is gated on
// the version scalar kept in the network option store, so it runs real
// DDL only when the stored version is behind the target.
package schema

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/sitekit/blogmeta"
	"github.com/sitekit/blogmeta/handle"
	"github.com/sitekit/blogmeta/metrics"
	"github.com/sitekit/blogmeta/options"
	"github.com/sitekit/blogmeta/store"
)

// Outcome classifies what a migration run did.
type Outcome string

const (
	// OutcomeCreated means the table was absent and was created fresh.
	OutcomeCreated Outcome = "created"

	// OutcomeUpgraded means at least one upgrade step was applied.
	OutcomeUpgraded Outcome = "upgraded"

	// OutcomeCurrent means the stored version already meets the target.
	OutcomeCurrent Outcome = "current"

	// OutcomeDenied means the migration policy refused to run here.
	OutcomeDenied Outcome = "denied"

	// OutcomeNoPath means no upgrade step covered the stored version.
	// The version and the table are left untouched.
	OutcomeNoPath Outcome = "no-path"
)

// Result describes a completed migration run.
type Result struct {
	// Outcome is the run's classification.
	Outcome Outcome

	// FromVersion is the version read before the run, zero if absent.
	FromVersion int64

	// ToVersion is the version recorded after the run. It equals
	// FromVersion when nothing was recorded.
	ToVersion int64
}

// Config holds configuration for the Manager.
type Config struct {
	// Handle is the shared database handle's registration surface (required).
	Handle handle.Context

	// Store executes the schema DDL (required).
	Store store.SchemaStore

	// Options holds the network-scoped version scalar (required).
	Options options.Store

	// AllowMigration gates whether DDL may run in the current context
	// (default: always allowed).
	AllowMigration func(ctx context.Context) bool

	// Steps is the ordered upgrade path (default: DefaultSteps).
	Steps []Step

	// Logger is for observability (optional).
	Logger *slog.Logger

	// Collector records migration metrics (optional).
	Collector *metrics.Collector
}

// Manager registers the blog-meta table on the handle and drives its
// schema migration.
type Manager struct {
	config Config
}

// New creates a new Manager with the given configuration.
func New(cfg Config) (*Manager, error) {
	if cfg.Handle == nil {
		return nil, blogmeta.ErrNilHandle
	}
	if cfg.Store == nil {
		return nil, blogmeta.ErrNilStore
	}
	if cfg.Options == nil {
		return nil, blogmeta.ErrNilOptions
	}
	if cfg.AllowMigration == nil {
		cfg.AllowMigration = func(context.Context) bool { return true }
	}
	if cfg.Steps == nil {
		cfg.Steps = DefaultSteps()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Manager{config: cfg}, nil
}

// RegisterTableReference publishes the blog-meta table on the shared
// handle: it records the physical name as the table alias and appends
// the table to the network-replicated table list. Safe to call more
// than once.
func (m *Manager) RegisterTableReference() {
	physical := m.config.Handle.TableName(blogmeta.MetaTable)
	m.config.Handle.SetTableAlias(blogmeta.MetaTable, physical)
	m.config.Handle.AppendGlobalTable(blogmeta.MetaTable)

	if m.config.Collector != nil {
		m.config.Collector.IncTableRegistration()
	}
}

// StoredVersion reads the schema version scalar from the option store.
// The boolean reports whether a version was recorded at all.
func (m *Manager) StoredVersion(ctx context.Context) (int64, bool, error) {
	raw, ok, err := m.config.Options.Get(ctx, blogmeta.VersionOption)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}

	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return version, true, nil
}

// RunMigration brings the blog-meta table to the target schema version.
//
// The run short-circuits when the stored version already meets the
// target, then consults the migration policy. An absent table is created
// with the current structure. Otherwise the ordered step list is walked
// and every step covering the stored version is applied. The version is
// recorded only after the DDL succeeded; a DDL or option-store error
// propagates to the caller with nothing recorded. A stored version no
// step covers leaves both the table and the version untouched.
func (m *Manager) RunMigration(ctx context.Context) (Result, error) {
	start := time.Now()

	stored, _, err := m.StoredVersion(ctx)
	if err != nil {
		return Result{}, err
	}

	result := Result{FromVersion: stored, ToVersion: stored}

	if stored >= blogmeta.SchemaVersionTarget {
		result.Outcome = OutcomeCurrent
		m.finish(ctx, start, result)
		return result, nil
	}

	if !m.config.AllowMigration(ctx) {
		result.Outcome = OutcomeDenied
		m.finish(ctx, start, result)
		return result, nil
	}

	exists, err := m.config.Store.TableExists(ctx)
	if err != nil {
		return Result{}, err
	}

	if !exists {
		if err := m.config.Store.CreateMetaTable(ctx); err != nil {
			return Result{}, err
		}
		if err := m.writeVersion(ctx, blogmeta.SchemaVersionTarget); err != nil {
			return Result{}, err
		}

		result.Outcome = OutcomeCreated
		result.ToVersion = blogmeta.SchemaVersionTarget
		m.finish(ctx, start, result)
		return result, nil
	}

	version := stored
	applied := false
	for _, step := range m.config.Steps {
		if version > step.From {
			continue
		}
		if err := step.Apply(ctx, m.config.Store); err != nil {
			return Result{}, err
		}
		m.config.Logger.InfoContext(ctx, "applied schema migration step",
			"step", step.Name, "from", version, "to", step.To)
		version = step.To
		applied = true
	}

	if !applied {
		result.Outcome = OutcomeNoPath
		m.config.Logger.WarnContext(ctx, "no migration step covers stored schema version",
			"stored", stored, "target", blogmeta.SchemaVersionTarget)
		m.finish(ctx, start, result)
		return result, nil
	}

	if err := m.writeVersion(ctx, version); err != nil {
		return Result{}, err
	}

	result.Outcome = OutcomeUpgraded
	result.ToVersion = version
	m.finish(ctx, start, result)
	return result, nil
}

func (m *Manager) writeVersion(ctx context.Context, version int64) error {
	return m.config.Options.Set(ctx, blogmeta.VersionOption, strconv.FormatInt(version, 10))
}

func (m *Manager) finish(ctx context.Context, start time.Time, result Result) {
	m.config.Logger.InfoContext(ctx, "schema migration run finished",
		"outcome", string(result.Outcome),
		"from", result.FromVersion,
		"to", result.ToVersion)

	if m.config.Collector == nil {
		return
	}
	m.config.Collector.IncMigrationRun(string(result.Outcome))
	m.config.Collector.ObserveMigrationDuration(time.Since(start).Seconds())
	m.config.Collector.SetSchemaVersion(result.ToVersion)
}
