package store

import (
	"context"

	"github.com/sitekit/blogmeta"
)

// MetaStore provides persistence for blog-meta rows. Implementations are
// request-scoped and synchronous; they add no retry or fallback logic,
// so storage-engine faults propagate to the caller.
type MetaStore interface {
	// AddMeta inserts a new row for the site and returns it with the
	// storage-assigned MetaID.
	AddMeta(ctx context.Context, siteID int64, key, value string) (blogmeta.Meta, error)

	// GetMeta returns the first row for the site and key, by MetaID order.
	// Returns ErrMetaNotFound if no row matches.
	GetMeta(ctx context.Context, siteID int64, key string) (blogmeta.Meta, error)

	// UpdateMeta sets the value for the site and key, inserting the row
	// when it does not exist yet.
	UpdateMeta(ctx context.Context, siteID int64, key, value string) (blogmeta.Meta, error)

	// DeleteMeta removes the rows for the site and key.
	// Returns ErrMetaNotFound if no row matched.
	DeleteMeta(ctx context.Context, siteID int64, key string) error

	// ListSiteMeta returns all rows for the site in MetaID order.
	// Returns an empty slice when the site has no meta.
	ListSiteMeta(ctx context.Context, siteID int64) ([]blogmeta.Meta, error)

	// DeleteSiteMeta removes every row owned by the site and returns the
	// number of rows deleted. Deleting zero rows is not an error.
	DeleteSiteMeta(ctx context.Context, siteID int64) (int64, error)
}

// SchemaStore executes the schema lifecycle DDL for the blog-meta table.
// Creation must be idempotent: concurrent first activations may race,
// and the only protection is re-applicable DDL.
type SchemaStore interface {
	// TableExists reports whether the physical table is present,
	// matching the escaped name against the engine's catalog.
	TableExists(ctx context.Context) (bool, error)

	// CreateMetaTable creates the table with the current structure.
	// Safe to invoke when the table already exists.
	CreateMetaTable(ctx context.Context) error

	// RenameLegacyMetaID renames the 1.0.1 primary key column "id" to
	// "meta_id", preserving its type, constraints, and auto-increment.
	RenameLegacyMetaID(ctx context.Context) error
}

// ValidateMeta applies the shared input rules for meta operations.
func ValidateMeta(siteID int64, key string) error {
	if siteID <= 0 {
		return blogmeta.ErrInvalidSiteID
	}
	if key == "" {
		return blogmeta.ErrEmptyMetaKey
	}
	if len(key) > blogmeta.MaxKeyLength {
		return blogmeta.ErrMetaKeyTooLong
	}
	return nil
}
