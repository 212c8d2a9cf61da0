// Package sqloptions provides a SQL-backed option store. In a real
// deployment the host platform owns the network option table; this
// implementation stands in for it in the admin CLI, examples, and
// integration tests.
package sqloptions

import (
	"context"
	"database/sql"
	"fmt"
)

// Dialect selects the SQL flavor for placeholders and upserts.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Store persists options in a single name/value table.
type Store struct {
	db      *sql.DB
	table   string
	dialect Dialect
}

// New creates a SQL-backed option store over db using the given physical
// table name and dialect.
func New(db *sql.DB, table string, dialect Dialect) *Store {
	return &Store{db: db, table: table, dialect: dialect}
}

// EnsureTable creates the option table if it does not exist. Safe to
// call repeatedly.
func (s *Store) EnsureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    option_name VARCHAR(191) NOT NULL,
    option_value TEXT,
    PRIMARY KEY (option_name)
)`, s.table)

	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("creating option table: %w", err)
	}
	return nil
}

// Get returns the value for name and whether it was present.
func (s *Store) Get(ctx context.Context, name string) (string, bool, error) {
	query := fmt.Sprintf("SELECT option_value FROM %s WHERE option_name = %s", s.table, s.placeholder(1))

	var value sql.NullString
	err := s.db.QueryRowContext(ctx, query, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading option %s: %w", name, err)
	}
	return value.String, true, nil
}

// Set writes the value for name, creating it if absent.
func (s *Store) Set(ctx context.Context, name, value string) error {
	var query string
	switch s.dialect {
	case DialectMySQL:
		query = fmt.Sprintf(`INSERT INTO %s (option_name, option_value) VALUES (?, ?)
    ON DUPLICATE KEY UPDATE option_value = VALUES(option_value)`, s.table)
	default:
		query = fmt.Sprintf(`INSERT INTO %s (option_name, option_value) VALUES (%s, %s)
    ON CONFLICT (option_name) DO UPDATE SET option_value = excluded.option_value`,
			s.table, s.placeholder(1), s.placeholder(2))
	}

	if _, err := s.db.ExecContext(ctx, query, name, value); err != nil {
		return fmt.Errorf("writing option %s: %w", name, err)
	}
	return nil
}

// placeholder returns the dialect's placeholder for the nth parameter.
func (s *Store) placeholder(n int) string {
	if s.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
