// Package blogmeta maintains the shared blog-meta table for a multisite
// deployment: one key/value table keyed by site ID, registered on the
// host platform's shared database handle and kept current through a
// version-gated schema migration.
package blogmeta

// MetaTable is the logical name of the blog-meta table. The physical
// table name is the shared handle's prefix followed by this name.
const MetaTable = "blogmeta"

// VersionOption is the key under which the applied schema version is
// stored in the host's network-scoped option store.
const VersionOption = "blogmeta_db_version"

// Schema versions use a date-encoded numeric format and are compared
// numerically, never lexically.
const (
	// SchemaVersionLegacy is the level of the original 1.0.1 structure,
	// whose primary key column was named "id".
	SchemaVersionLegacy int64 = 201609100001

	// SchemaVersionTarget is the level of the current structure with the
	// "meta_id" primary key column.
	SchemaVersionTarget int64 = 202003230001
)

// MaxKeyLength is the column limit for meta keys.
const MaxKeyLength = 255

// KeyIndexPrefix is the indexed prefix length for meta keys. It stays
// within the index size limit for 4-byte character sets.
const KeyIndexPrefix = 191

// Meta is one key/value annotation attached to a site.
type Meta struct {
	// MetaID is the storage-assigned identifier. It is immutable once
	// assigned and never reused.
	MetaID int64

	// SiteID identifies the owning site. Every row has exactly one owner.
	SiteID int64

	// Key is the lookup key, at most MaxKeyLength characters.
	Key string

	// Value is an opaque payload; its semantics belong to the caller.
	Value string
}
