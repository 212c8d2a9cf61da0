package schema

import (
	"context"

	"github.com/sitekit/blogmeta"
	"github.com/sitekit/blogmeta/store"
)

// Step is one entry in the ordered upgrade path. A step applies when the
// stored schema version is at most From, and advances the version to To
// once Apply succeeds.
type Step struct {
	// Name identifies the step in logs.
	Name string

	// From is the highest stored version the step applies to.
	From int64

	// To is the version recorded after the step succeeds.
	To int64

	// Apply performs the step's DDL against the schema store.
	Apply func(ctx context.Context, st store.SchemaStore) error
}

// DefaultSteps returns the built-in upgrade path: the single rename of
// the 1.0.1 primary key column "id" to "meta_id".
func DefaultSteps() []Step {
	return []Step{
		{
			Name: "rename-legacy-meta-id",
			From: blogmeta.SchemaVersionLegacy,
			To:   blogmeta.SchemaVersionTarget,
			Apply: func(ctx context.Context, st store.SchemaStore) error {
				return st.RenameLegacyMetaID(ctx)
			},
		},
	}
}
