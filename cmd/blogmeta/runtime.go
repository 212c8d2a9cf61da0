// Runtime wiring for the blogmeta CLI: one database connection, the
// shared handle, the driver-specific stores, and the managers on top.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sitekit/blogmeta/handle"
	"github.com/sitekit/blogmeta/lifecycle"
	"github.com/sitekit/blogmeta/metrics"
	"github.com/sitekit/blogmeta/options/sqloptions"
	"github.com/sitekit/blogmeta/schema"
	"github.com/sitekit/blogmeta/store"
	"github.com/sitekit/blogmeta/store/mysql"
	"github.com/sitekit/blogmeta/store/postgres"
	"github.com/sitekit/blogmeta/store/sqlite"
)

// runtime holds everything a subcommand needs. Initialized once by
// PersistentPreRunE.
type runtime struct {
	db        *sql.DB
	handle    *handle.Handle
	meta      store.MetaStore
	schema    *schema.Manager
	lifecycle *lifecycle.Manager
	options   *sqloptions.Store
	metrics   *metrics.Server
}

var rt *runtime

// initRuntime loads config and wires the runtime for the subcommand.
func initRuntime(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	v, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	driver := v.GetString(cfgKeyDriver)
	driverName, dialect, err := resolveDriver(driver)
	if err != nil {
		return err
	}

	db, err := sql.Open(driverName, v.GetString(cfgKeyDSN))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	h := handle.New(db, v.GetString(cfgKeyPrefix))
	h.Charset = v.GetString(cfgKeyCharset)
	h.Collate = v.GetString(cfgKeyCollate)

	metaStore, schemaStore, err := newStores(driver, h)
	if err != nil {
		db.Close()
		return err
	}

	opts := sqloptions.New(db, h.Prefix+"options", dialect)
	if err := opts.EnsureTable(context.Background()); err != nil {
		db.Close()
		return fmt.Errorf("ensure option table: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	collector := metrics.NewCollector(driver)

	sm, err := schema.New(schema.Config{
		Handle:    h,
		Store:     schemaStore,
		Options:   opts,
		Logger:    logger,
		Collector: collector,
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("create schema manager: %w", err)
	}

	lm, err := lifecycle.New(lifecycle.Config{
		Schema:    sm,
		Meta:      metaStore,
		Logger:    logger,
		Collector: collector,
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("create lifecycle manager: %w", err)
	}

	rt = &runtime{
		db:        db,
		handle:    h,
		meta:      metaStore,
		schema:    sm,
		lifecycle: lm,
		options:   opts,
	}

	if metricsAddr != "" {
		rt.metrics = metrics.NewServer(metricsAddr)
		rt.metrics.Start()
	}
	return nil
}

// closeRuntime stops the metrics server and releases the database
// connection.
func closeRuntime() error {
	if rt == nil {
		return nil
	}
	if rt.metrics != nil {
		if err := rt.metrics.Shutdown(context.Background()); err != nil {
			return err
		}
	}
	if rt.db != nil {
		return rt.db.Close()
	}
	return nil
}

func resolveDriver(driver string) (string, sqloptions.Dialect, error) {
	switch driver {
	case "mysql":
		return "mysql", sqloptions.DialectMySQL, nil
	case "postgres":
		return "postgres", sqloptions.DialectPostgres, nil
	case "sqlite":
		return "sqlite3", sqloptions.DialectSQLite, nil
	default:
		return "", "", fmt.Errorf("unsupported driver %q: use mysql, postgres, or sqlite", driver)
	}
}

func newStores(driver string, h *handle.Handle) (store.MetaStore, store.SchemaStore, error) {
	switch driver {
	case "mysql":
		s, err := mysql.New(h)
		if err != nil {
			return nil, nil, fmt.Errorf("create mysql store: %w", err)
		}
		return s, s, nil
	case "postgres":
		s, err := postgres.New(h)
		if err != nil {
			return nil, nil, fmt.Errorf("create postgres store: %w", err)
		}
		return s, s, nil
	case "sqlite":
		s, err := sqlite.New(h)
		if err != nil {
			return nil, nil, fmt.Errorf("create sqlite store: %w", err)
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unsupported driver %q", driver)
	}
}
