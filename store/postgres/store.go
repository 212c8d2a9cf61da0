// Package postgres is the PostgreSQL implementation of the meta and
// schema stores. Existence is checked against information_schema with a
// lower-cased LIKE, since unquoted identifiers fold to lower case.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sitekit/blogmeta"
	"github.com/sitekit/blogmeta/handle"
	"github.com/sitekit/blogmeta/store"
)

// Store is a PostgreSQL implementation of store.MetaStore and store.SchemaStore.
type Store struct {
	h     *handle.Handle
	table string
}

// New creates a PostgreSQL store over the shared handle.
func New(h *handle.Handle) (*Store, error) {
	table := h.TableName(blogmeta.MetaTable)
	if err := store.ValidateIdentifier(table); err != nil {
		return nil, fmt.Errorf("invalid meta table name: %w", err)
	}
	return &Store{h: h, table: table}, nil
}

// TableExists implements store.SchemaStore.
func (s *Store) TableExists(ctx context.Context) (bool, error) {
	query := `SELECT EXISTS (
    SELECT 1 FROM information_schema.tables
    WHERE table_schema = current_schema() AND table_name LIKE $1 ESCAPE '\'
)`

	var exists bool
	err := s.h.DB.QueryRowContext(ctx, query, store.EscapeLike(strings.ToLower(s.table))).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking table existence: %w", err)
	}
	return exists, nil
}

// CreateMetaTable implements store.SchemaStore.
func (s *Store) CreateMetaTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %[1]s (
    meta_id BIGSERIAL PRIMARY KEY,
    site_id BIGINT NOT NULL,
    meta_key VARCHAR(%[2]d),
    meta_value TEXT
);
CREATE INDEX IF NOT EXISTS idx_%[1]s_site_id ON %[1]s (site_id);
CREATE INDEX IF NOT EXISTS idx_%[1]s_meta_key ON %[1]s (left(meta_key, %[3]d));`,
		s.table, blogmeta.MaxKeyLength, blogmeta.KeyIndexPrefix)

	_, err := s.h.DB.ExecContext(ctx, ddl)
	return err
}

// RenameLegacyMetaID implements store.SchemaStore. RENAME COLUMN keeps
// the type and the attached sequence.
func (s *Store) RenameLegacyMetaID(ctx context.Context) error {
	ddl := fmt.Sprintf("ALTER TABLE %s RENAME COLUMN id TO meta_id", s.table)

	_, err := s.h.DB.ExecContext(ctx, ddl)
	return err
}

// AddMeta implements store.MetaStore.
func (s *Store) AddMeta(ctx context.Context, siteID int64, key, value string) (blogmeta.Meta, error) {
	if err := store.ValidateMeta(siteID, key); err != nil {
		return blogmeta.Meta{}, err
	}

	query := fmt.Sprintf(`INSERT INTO %s (site_id, meta_key, meta_value)
    VALUES ($1, $2, $3) RETURNING meta_id`, s.table)

	m := blogmeta.Meta{SiteID: siteID, Key: key, Value: value}
	if err := s.h.DB.QueryRowContext(ctx, query, siteID, key, value).Scan(&m.MetaID); err != nil {
		return blogmeta.Meta{}, fmt.Errorf("inserting meta: %w", err)
	}
	return m, nil
}

// GetMeta implements store.MetaStore.
func (s *Store) GetMeta(ctx context.Context, siteID int64, key string) (blogmeta.Meta, error) {
	if err := store.ValidateMeta(siteID, key); err != nil {
		return blogmeta.Meta{}, err
	}

	query := fmt.Sprintf(`SELECT meta_id, site_id, meta_key, meta_value FROM %s
    WHERE site_id = $1 AND meta_key = $2 ORDER BY meta_id LIMIT 1`, s.table)

	return scanMeta(s.h.DB.QueryRowContext(ctx, query, siteID, key))
}

// UpdateMeta implements store.MetaStore. The row is inserted when no
// existing row matches.
func (s *Store) UpdateMeta(ctx context.Context, siteID int64, key, value string) (blogmeta.Meta, error) {
	if err := store.ValidateMeta(siteID, key); err != nil {
		return blogmeta.Meta{}, err
	}

	query := fmt.Sprintf("UPDATE %s SET meta_value = $1 WHERE site_id = $2 AND meta_key = $3", s.table)

	result, err := s.h.DB.ExecContext(ctx, query, value, siteID, key)
	if err != nil {
		return blogmeta.Meta{}, fmt.Errorf("updating meta: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return blogmeta.Meta{}, fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return s.AddMeta(ctx, siteID, key, value)
	}

	return s.GetMeta(ctx, siteID, key)
}

// DeleteMeta implements store.MetaStore.
func (s *Store) DeleteMeta(ctx context.Context, siteID int64, key string) error {
	if err := store.ValidateMeta(siteID, key); err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE site_id = $1 AND meta_key = $2", s.table)

	result, err := s.h.DB.ExecContext(ctx, query, siteID, key)
	if err != nil {
		return fmt.Errorf("deleting meta: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrMetaNotFound
	}
	return nil
}

// ListSiteMeta implements store.MetaStore.
func (s *Store) ListSiteMeta(ctx context.Context, siteID int64) ([]blogmeta.Meta, error) {
	if siteID <= 0 {
		return nil, blogmeta.ErrInvalidSiteID
	}

	query := fmt.Sprintf(`SELECT meta_id, site_id, meta_key, meta_value FROM %s
    WHERE site_id = $1 ORDER BY meta_id`, s.table)

	rows, err := s.h.DB.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("listing site meta: %w", err)
	}
	defer rows.Close()

	metas := []blogmeta.Meta{}
	for rows.Next() {
		var m blogmeta.Meta
		var key, value sql.NullString
		if err := rows.Scan(&m.MetaID, &m.SiteID, &key, &value); err != nil {
			return nil, fmt.Errorf("scanning meta row: %w", err)
		}
		m.Key = key.String
		m.Value = value.String
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating site meta: %w", err)
	}
	return metas, nil
}

// DeleteSiteMeta implements store.MetaStore. Deleting zero rows is not
// an error.
func (s *Store) DeleteSiteMeta(ctx context.Context, siteID int64) (int64, error) {
	if siteID <= 0 {
		return 0, blogmeta.ErrInvalidSiteID
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE site_id = $1", s.table)

	result, err := s.h.DB.ExecContext(ctx, query, siteID)
	if err != nil {
		return 0, fmt.Errorf("deleting site meta: %w", err)
	}
	return result.RowsAffected()
}

func scanMeta(row *sql.Row) (blogmeta.Meta, error) {
	var m blogmeta.Meta
	var key, value sql.NullString
	err := row.Scan(&m.MetaID, &m.SiteID, &key, &value)
	if err == sql.ErrNoRows {
		return blogmeta.Meta{}, store.ErrMetaNotFound
	}
	if err != nil {
		return blogmeta.Meta{}, fmt.Errorf("scanning meta row: %w", err)
	}
	m.Key = key.String
	m.Value = value.String
	return m, nil
}
