// Package mysql is the MySQL implementation of the meta and schema
// stores. It issues the dialect's native catalog and alteration
// statements: SHOW TABLES LIKE for existence, CHANGE COLUMN for the
// legacy rename, and a prefix-limited key index at creation.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sitekit/blogmeta"
	"github.com/sitekit/blogmeta/handle"
	"github.com/sitekit/blogmeta/store"
)

// Store is a MySQL implementation of store.MetaStore and store.SchemaStore.
type Store struct {
	h     *handle.Handle
	table string
}

// New creates a MySQL store over the shared handle. The physical table
// name is resolved through the handle and validated before any SQL is
// built from it.
func New(h *handle.Handle) (*Store, error) {
	table := h.TableName(blogmeta.MetaTable)
	if err := store.ValidateIdentifier(table); err != nil {
		return nil, fmt.Errorf("invalid meta table name: %w", err)
	}
	return &Store{h: h, table: table}, nil
}

// TableExists implements store.SchemaStore.
func (s *Store) TableExists(ctx context.Context) (bool, error) {
	var name string
	err := s.h.DB.QueryRowContext(ctx, "SHOW TABLES LIKE ?", store.EscapeLike(s.table)).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking table existence: %w", err)
	}
	return true, nil
}

// CreateMetaTable implements store.SchemaStore. The charset clause is
// applied only when the handle carries non-empty defaults.
func (s *Store) CreateMetaTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    meta_id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
    site_id BIGINT NOT NULL,
    meta_key VARCHAR(%d) DEFAULT NULL,
    meta_value LONGTEXT DEFAULT NULL,
    PRIMARY KEY (meta_id),
    KEY site_id (site_id),
    KEY meta_key (meta_key(%d))
)%s`, s.table, blogmeta.MaxKeyLength, blogmeta.KeyIndexPrefix, s.charsetClause())

	_, err := s.h.DB.ExecContext(ctx, ddl)
	return err
}

// RenameLegacyMetaID implements store.SchemaStore. CHANGE COLUMN keeps
// the type, NOT NULL constraint, and auto-increment of the 1.0.1 column.
func (s *Store) RenameLegacyMetaID(ctx context.Context) error {
	ddl := fmt.Sprintf("ALTER TABLE %s CHANGE COLUMN id meta_id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT", s.table)

	_, err := s.h.DB.ExecContext(ctx, ddl)
	return err
}

func (s *Store) charsetClause() string {
	if s.h.Charset == "" {
		return ""
	}
	clause := " DEFAULT CHARACTER SET " + s.h.Charset
	if s.h.Collate != "" {
		clause += " COLLATE " + s.h.Collate
	}
	return clause
}

// AddMeta implements store.MetaStore.
func (s *Store) AddMeta(ctx context.Context, siteID int64, key, value string) (blogmeta.Meta, error) {
	if err := store.ValidateMeta(siteID, key); err != nil {
		return blogmeta.Meta{}, err
	}

	query := fmt.Sprintf("INSERT INTO %s (site_id, meta_key, meta_value) VALUES (?, ?, ?)", s.table)

	result, err := s.h.DB.ExecContext(ctx, query, siteID, key, value)
	if err != nil {
		return blogmeta.Meta{}, fmt.Errorf("inserting meta: %w", err)
	}

	metaID, err := result.LastInsertId()
	if err != nil {
		return blogmeta.Meta{}, fmt.Errorf("reading inserted meta id: %w", err)
	}

	return blogmeta.Meta{MetaID: metaID, SiteID: siteID, Key: key, Value: value}, nil
}

// GetMeta implements store.MetaStore.
func (s *Store) GetMeta(ctx context.Context, siteID int64, key string) (blogmeta.Meta, error) {
	if err := store.ValidateMeta(siteID, key); err != nil {
		return blogmeta.Meta{}, err
	}

	query := fmt.Sprintf(`SELECT meta_id, site_id, meta_key, meta_value FROM %s
    WHERE site_id = ? AND meta_key = ? ORDER BY meta_id LIMIT 1`, s.table)

	return scanMeta(s.h.DB.QueryRowContext(ctx, query, siteID, key))
}

// UpdateMeta implements store.MetaStore. The row is inserted when no
// existing row matches.
func (s *Store) UpdateMeta(ctx context.Context, siteID int64, key, value string) (blogmeta.Meta, error) {
	if err := store.ValidateMeta(siteID, key); err != nil {
		return blogmeta.Meta{}, err
	}

	query := fmt.Sprintf("UPDATE %s SET meta_value = ? WHERE site_id = ? AND meta_key = ?", s.table)

	result, err := s.h.DB.ExecContext(ctx, query, value, siteID, key)
	if err != nil {
		return blogmeta.Meta{}, fmt.Errorf("updating meta: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return blogmeta.Meta{}, fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		// MySQL also reports zero when the value is unchanged; confirm
		// absence before inserting.
		if existing, err := s.GetMeta(ctx, siteID, key); err == nil {
			return existing, nil
		} else if err != store.ErrMetaNotFound {
			return blogmeta.Meta{}, err
		}
		return s.AddMeta(ctx, siteID, key, value)
	}

	return s.GetMeta(ctx, siteID, key)
}

// DeleteMeta implements store.MetaStore.
func (s *Store) DeleteMeta(ctx context.Context, siteID int64, key string) error {
	if err := store.ValidateMeta(siteID, key); err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE site_id = ? AND meta_key = ?", s.table)

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
    WHERE site_id = ? ORDER BY meta_id`, s.table)

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

	query := fmt.Sprintf("DELETE FROM %s WHERE site_id = ?", s.table)

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
