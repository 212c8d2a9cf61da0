//go:build integration

package integration_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/sitekit/blogmeta/handle"
	"github.com/sitekit/blogmeta/options/sqloptions"
	"github.com/sitekit/blogmeta/store"
	"github.com/sitekit/blogmeta/store/mysql"
	"github.com/sitekit/blogmeta/store/postgres"
)

const testPrefix = "it_"

// env holds the per-dialect pieces a scenario needs.
type env struct {
	db      *sql.DB
	handle  *handle.Handle
	meta    store.MetaStore
	schema  store.SchemaStore
	options *sqloptions.Store
}

// getPostgresEnv connects to the database named by DATABASE_URL and
// skips the test if it is not set. Integration tests share a database
// and must not run in parallel.
func getPostgresEnv(t *testing.T) *env {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h := handle.New(db, testPrefix)
	st, err := postgres.New(h)
	if err != nil {
		t.Fatalf("Failed to create postgres store: %v", err)
	}

	return newEnv(t, db, h, st, st, sqloptions.DialectPostgres)
}

// getMySQLEnv connects to the database named by MYSQL_DSN and skips the
// test if it is not set.
func getMySQLEnv(t *testing.T) *env {
	t.Helper()

	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("MYSQL_DSN not set, skipping MySQL integration test")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to MySQL: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h := handle.New(db, testPrefix)
	st, err := mysql.New(h)
	if err != nil {
		t.Fatalf("Failed to create mysql store: %v", err)
	}

	return newEnv(t, db, h, st, st, sqloptions.DialectMySQL)
}

func newEnv(t *testing.T, db *sql.DB, h *handle.Handle, meta store.MetaStore, schemaStore store.SchemaStore, dialect sqloptions.Dialect) *env {
	t.Helper()

	opts := sqloptions.New(db, testPrefix+"options", dialect)
	if err := opts.EnsureTable(context.Background()); err != nil {
		t.Fatalf("Failed to create option table: %v", err)
	}

	e := &env{db: db, handle: h, meta: meta, schema: schemaStore, options: opts}
	e.cleanup(t)
	t.Cleanup(func() { e.cleanup(t) })
	return e
}

// cleanup drops the test tables so every scenario starts from a fresh
// database.
func (e *env) cleanup(t *testing.T) {
	t.Helper()

	for _, table := range []string{testPrefix + "blogmeta", testPrefix + "options"} {
		if _, err := e.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			t.Fatalf("Failed to drop %s: %v", table, err)
		}
	}

	// The option table is recreated immediately; the meta table is the
	// migration's job.
	if err := e.options.EnsureTable(context.Background()); err != nil {
		t.Fatalf("Failed to recreate option table: %v", err)
	}
}

// seedLegacyTable creates the 1.0.1 table structure, whose primary key
// column is named "id", and records the legacy version.
func (e *env) seedLegacyTable(t *testing.T, dialect sqloptions.Dialect) {
	t.Helper()

	table := testPrefix + "blogmeta"
	var ddl string
	switch dialect {
	case sqloptions.DialectMySQL:
		ddl = fmt.Sprintf(`CREATE TABLE %s (
    id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
    site_id BIGINT NOT NULL,
    meta_key VARCHAR(255) DEFAULT NULL,
    meta_value LONGTEXT DEFAULT NULL,
    PRIMARY KEY (id),
    KEY site_id (site_id)
)`, table)
	default:
		ddl = fmt.Sprintf(`CREATE TABLE %s (
    id BIGSERIAL PRIMARY KEY,
    site_id BIGINT NOT NULL,
    meta_key VARCHAR(255),
    meta_value TEXT
)`, table)
	}

	if _, err := e.db.Exec(ddl); err != nil {
		t.Fatalf("Failed to create legacy table: %v", err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (site_id, meta_key, meta_value) VALUES (1, 'legacy_key', 'legacy_value')", table)
	if _, err := e.db.Exec(insert); err != nil {
		t.Fatalf("Failed to seed legacy row: %v", err)
	}

	if err := e.options.Set(context.Background(), "blogmeta_db_version", "201609100001"); err != nil {
		t.Fatalf("Failed to record legacy version: %v", err)
	}
}
