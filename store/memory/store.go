// Package memory is an in-memory implementation of the meta and schema
// stores for testing. It models just enough schema state (table
// presence and the primary key column name) to exercise the migration
// gate without a database.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sitekit/blogmeta"
	"github.com/sitekit/blogmeta/store"
)

// Store is an in-memory implementation of store.MetaStore and
// store.SchemaStore. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	created  bool
	pkColumn string
	nextID   int64
	rows     map[int64]blogmeta.Meta // metaID -> row
}

// New creates an empty in-memory store with no table.
func New() *Store {
	return &Store{
		nextID: 1,
		rows:   make(map[int64]blogmeta.Meta),
	}
}

// SeedLegacyTable marks the table as existing with the 1.0.1 structure,
// whose primary key column is named "id".
func (s *Store) SeedLegacyTable() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.created = true
	s.pkColumn = "id"
}

// PKColumn returns the simulated primary key column name.
func (s *Store) PKColumn() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pkColumn
}

// TableExists implements store.SchemaStore.
func (s *Store) TableExists(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.created, nil
}

// CreateMetaTable implements store.SchemaStore. Re-creation of an
// existing table is a no-op, mirroring IF NOT EXISTS semantics.
func (s *Store) CreateMetaTable(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.created {
		return nil
	}
	s.created = true
	s.pkColumn = "meta_id"
	return nil
}

// RenameLegacyMetaID implements store.SchemaStore.
func (s *Store) RenameLegacyMetaID(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.created {
		return errors.New("meta table does not exist")
	}
	s.pkColumn = "meta_id"
	return nil
}

// AddMeta implements store.MetaStore.
func (s *Store) AddMeta(ctx context.Context, siteID int64, key, value string) (blogmeta.Meta, error) {
	if err := store.ValidateMeta(siteID, key); err != nil {
		return blogmeta.Meta{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := blogmeta.Meta{
		MetaID: s.nextID,
		SiteID: siteID,
		Key:    key,
		Value:  value,
	}
	s.nextID++
	s.rows[m.MetaID] = m
	return m, nil
}

// GetMeta implements store.MetaStore.
func (s *Store) GetMeta(ctx context.Context, siteID int64, key string) (blogmeta.Meta, error) {
	if err := store.ValidateMeta(siteID, key); err != nil {
		return blogmeta.Meta{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *blogmeta.Meta
	for _, m := range s.rows {
		if m.SiteID == siteID && m.Key == key {
			if found == nil || m.MetaID < found.MetaID {
				row := m
				found = &row
			}
		}
	}
	if found == nil {
		return blogmeta.Meta{}, store.ErrMetaNotFound
	}
	return *found, nil
}

// UpdateMeta implements store.MetaStore.
func (s *Store) UpdateMeta(ctx context.Context, siteID int64, key, value string) (blogmeta.Meta, error) {
	if err := store.ValidateMeta(siteID, key); err != nil {
		return blogmeta.Meta{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, m := range s.rows {
		if m.SiteID == siteID && m.Key == key {
			m.Value = value
			s.rows[id] = m
			return m, nil
		}
	}

	m := blogmeta.Meta{
		MetaID: s.nextID,
		SiteID: siteID,
		Key:    key,
		Value:  value,
	}
	s.nextID++
	s.rows[m.MetaID] = m
	return m, nil
}

// DeleteMeta implements store.MetaStore.
func (s *Store) DeleteMeta(ctx context.Context, siteID int64, key string) error {
	if err := store.ValidateMeta(siteID, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := false
	for id, m := range s.rows {
		if m.SiteID == siteID && m.Key == key {
			delete(s.rows, id)
			deleted = true
		}
	}
	if !deleted {
		return store.ErrMetaNotFound
	}
	return nil
}

// ListSiteMeta implements store.MetaStore.
func (s *Store) ListSiteMeta(ctx context.Context, siteID int64) ([]blogmeta.Meta, error) {
	if siteID <= 0 {
		return nil, blogmeta.ErrInvalidSiteID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	metas := []blogmeta.Meta{}
	for _, m := range s.rows {
		if m.SiteID == siteID {
			metas = append(metas, m)
		}
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].MetaID < metas[j].MetaID })
	return metas, nil
}

// DeleteSiteMeta implements store.MetaStore.
func (s *Store) DeleteSiteMeta(ctx context.Context, siteID int64) (int64, error) {
	if siteID <= 0 {
		return 0, blogmeta.ErrInvalidSiteID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, m := range s.rows {
		if m.SiteID == siteID {
			delete(s.rows, id)
			deleted++
		}
	}
	return deleted, nil
}
