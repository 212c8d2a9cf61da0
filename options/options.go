// Package options defines the network-scoped configuration store the
// schema manager reads its version scalar from. The host platform owns
// this store; the library consumes only scalar reads and writes keyed by
// a fixed name.
package options

import "context"

// Store provides scalar options scoped to the whole network of sites,
// not to an individual site.
type Store interface {
	// Get returns the value for name and whether it was present.
	Get(ctx context.Context, name string) (string, bool, error)

	// Set writes the value for name, creating it if absent.
	Set(ctx context.Context, name, value string) error
}
