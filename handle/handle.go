// Package handle models the host platform's shared database handle: one
// *sql.DB plus the global table prefix, default charset/collation, table
// aliases, and the list of tables replicated across a multisite network.
package handle

import (
	"database/sql"
	"sync"
)

// Context is the surface mutated when a component registers a shared
// table. The schema manager depends on this interface rather than on a
// concrete handle so registration is explicit dependency injection, not
// ambient global state.
type Context interface {
	// TableName resolves a logical table name to its physical name:
	// the registered alias if one exists, otherwise prefix + name.
	TableName(name string) string

	// SetTableAlias records the physical name for a logical table.
	SetTableAlias(name, physical string)

	// AppendGlobalTable adds a table to the network-replicated table
	// list. Appending an already-listed name is a no-op.
	AppendGlobalTable(name string)
}

// Handle is the shared database handle supplied by the host.
type Handle struct {
	// DB is the single shared connection pool.
	DB *sql.DB

	// Prefix is the global table prefix, e.g. "wp_".
	Prefix string

	// Charset and Collate are the handle's configured defaults. When
	// non-empty they are applied explicitly at table creation (MySQL).
	Charset string
	Collate string

	mu           sync.Mutex
	aliases      map[string]string
	globalTables []string
}

// New creates a Handle around db with the given table prefix.
func New(db *sql.DB, prefix string) *Handle {
	return &Handle{
		DB:      db,
		Prefix:  prefix,
		aliases: make(map[string]string),
	}
}

// TableName resolves a logical table name to its physical name.
func (h *Handle) TableName(name string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if physical, ok := h.aliases[name]; ok {
		return physical
	}
	return h.Prefix + name
}

// SetTableAlias records the physical name for a logical table. Setting
// the same alias again is harmless.
func (h *Handle) SetTableAlias(name, physical string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.aliases[name] = physical
}

// TableAlias returns the registered physical name for a logical table.
func (h *Handle) TableAlias(name string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	physical, ok := h.aliases[name]
	return physical, ok
}

// AppendGlobalTable adds a table to the network-replicated table list,
// checking presence first so repeated registration never duplicates.
func (h *Handle) AppendGlobalTable(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, existing := range h.globalTables {
		if existing == name {
			return
		}
	}
	h.globalTables = append(h.globalTables, name)
}

// GlobalTables returns a copy of the network-replicated table list.
func (h *Handle) GlobalTables() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	tables := make([]string, len(h.globalTables))
	copy(tables, h.globalTables)
	return tables
}
