package store

import (
	"context"
	"sync"

	"github.com/sitekit/blogmeta"
)

// MockMetaStore is a configurable mock implementation of MetaStore for
// use in tests. It allows setting up expected return values, tracking
// method calls, and injecting errors for testing error paths.
type MockMetaStore struct {
	mu sync.Mutex

	// AddMetaFunc is called by AddMeta if set.
	AddMetaFunc func(ctx context.Context, siteID int64, key, value string) (blogmeta.Meta, error)

	// GetMetaFunc is called by GetMeta if set.
	GetMetaFunc func(ctx context.Context, siteID int64, key string) (blogmeta.Meta, error)

	// UpdateMetaFunc is called by UpdateMeta if set.
	UpdateMetaFunc func(ctx context.Context, siteID int64, key, value string) (blogmeta.Meta, error)

	// DeleteMetaFunc is called by DeleteMeta if set.
	DeleteMetaFunc func(ctx context.Context, siteID int64, key string) error

	// ListSiteMetaFunc is called by ListSiteMeta if set.
	ListSiteMetaFunc func(ctx context.Context, siteID int64) ([]blogmeta.Meta, error)

	// DeleteSiteMetaFunc is called by DeleteSiteMeta if set.
	DeleteSiteMetaFunc func(ctx context.Context, siteID int64) (int64, error)

	// Call tracking
	AddMetaCalls        []MetaCall
	GetMetaCalls        []MetaCall
	UpdateMetaCalls     []MetaCall
	DeleteMetaCalls     []MetaCall
	ListSiteMetaCalls   []SiteCall
	DeleteSiteMetaCalls []SiteCall
}

// MetaCall records the arguments of a per-key meta operation.
type MetaCall struct {
	SiteID int64
	Key    string
	Value  string
}

// SiteCall records the arguments of a per-site operation.
type SiteCall struct {
	SiteID int64
}

// NewMockMetaStore creates a new mock meta store.
func NewMockMetaStore() *MockMetaStore {
	return &MockMetaStore{}
}

// AddMeta implements MetaStore.
func (m *MockMetaStore) AddMeta(ctx context.Context, siteID int64, key, value string) (blogmeta.Meta, error) {
	m.mu.Lock()
	m.AddMetaCalls = append(m.AddMetaCalls, MetaCall{SiteID: siteID, Key: key, Value: value})
	m.mu.Unlock()

	if m.AddMetaFunc != nil {
		return m.AddMetaFunc(ctx, siteID, key, value)
	}
	return blogmeta.Meta{SiteID: siteID, Key: key, Value: value}, nil
}

// GetMeta implements MetaStore.
func (m *MockMetaStore) GetMeta(ctx context.Context, siteID int64, key string) (blogmeta.Meta, error) {
	m.mu.Lock()
	m.GetMetaCalls = append(m.GetMetaCalls, MetaCall{SiteID: siteID, Key: key})
	m.mu.Unlock()

	if m.GetMetaFunc != nil {
		return m.GetMetaFunc(ctx, siteID, key)
	}
	return blogmeta.Meta{}, ErrMetaNotFound
}

// UpdateMeta implements MetaStore.
func (m *MockMetaStore) UpdateMeta(ctx context.Context, siteID int64, key, value string) (blogmeta.Meta, error) {
	m.mu.Lock()
	m.UpdateMetaCalls = append(m.UpdateMetaCalls, MetaCall{SiteID: siteID, Key: key, Value: value})
	m.mu.Unlock()

	if m.UpdateMetaFunc != nil {
		return m.UpdateMetaFunc(ctx, siteID, key, value)
	}
	return blogmeta.Meta{SiteID: siteID, Key: key, Value: value}, nil
}

// DeleteMeta implements MetaStore.
func (m *MockMetaStore) DeleteMeta(ctx context.Context, siteID int64, key string) error {
	m.mu.Lock()
	m.DeleteMetaCalls = append(m.DeleteMetaCalls, MetaCall{SiteID: siteID, Key: key})
	m.mu.Unlock()

	if m.DeleteMetaFunc != nil {
		return m.DeleteMetaFunc(ctx, siteID, key)
	}
	return nil
}

// ListSiteMeta implements MetaStore.
func (m *MockMetaStore) ListSiteMeta(ctx context.Context, siteID int64) ([]blogmeta.Meta, error) {
	m.mu.Lock()
	m.ListSiteMetaCalls = append(m.ListSiteMetaCalls, SiteCall{SiteID: siteID})
	m.mu.Unlock()

	if m.ListSiteMetaFunc != nil {
		return m.ListSiteMetaFunc(ctx, siteID)
	}
	return []blogmeta.Meta{}, nil
}

// DeleteSiteMeta implements MetaStore.
func (m *MockMetaStore) DeleteSiteMeta(ctx context.Context, siteID int64) (int64, error) {
	m.mu.Lock()
	m.DeleteSiteMetaCalls = append(m.DeleteSiteMetaCalls, SiteCall{SiteID: siteID})
	m.mu.Unlock()

	if m.DeleteSiteMetaFunc != nil {
		return m.DeleteSiteMetaFunc(ctx, siteID)
	}
	return 0, nil
}

// MockSchemaStore is a configurable mock implementation of SchemaStore
// for testing the schema manager's gating logic without a database.
type MockSchemaStore struct {
	mu sync.Mutex

	// TableExistsFunc is called by TableExists if set.
	TableExistsFunc func(ctx context.Context) (bool, error)

	// CreateMetaTableFunc is called by CreateMetaTable if set.
	CreateMetaTableFunc func(ctx context.Context) error

	// RenameLegacyMetaIDFunc is called by RenameLegacyMetaID if set.
	RenameLegacyMetaIDFunc func(ctx context.Context) error

	// Call counts
	TableExistsCalls        int
	CreateMetaTableCalls    int
	RenameLegacyMetaIDCalls int
}

// NewMockSchemaStore creates a new mock schema store.
func NewMockSchemaStore() *MockSchemaStore {
	return &MockSchemaStore{}
}

// TableExists implements SchemaStore.
func (m *MockSchemaStore) TableExists(ctx context.Context) (bool, error) {
	m.mu.Lock()
	m.TableExistsCalls++
	m.mu.Unlock()

	if m.TableExistsFunc != nil {
		return m.TableExistsFunc(ctx)
	}
	return false, nil
}

// CreateMetaTable implements SchemaStore.
func (m *MockSchemaStore) CreateMetaTable(ctx context.Context) error {
	m.mu.Lock()
	m.CreateMetaTableCalls++
	m.mu.Unlock()

	if m.CreateMetaTableFunc != nil {
		return m.CreateMetaTableFunc(ctx)
	}
	return nil
}

// RenameLegacyMetaID implements SchemaStore.
func (m *MockSchemaStore) RenameLegacyMetaID(ctx context.Context) error {
	m.mu.Lock()
	m.RenameLegacyMetaIDCalls++
	m.mu.Unlock()

	if m.RenameLegacyMetaIDFunc != nil {
		return m.RenameLegacyMetaIDFunc(ctx)
	}
	return nil
}
