// Migrate and status commands for the blogmeta CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitekit/blogmeta"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run the blog-meta schema migration",
	Long: `Migrate registers the blog-meta table on the handle and brings the
schema to the target version: it creates the table on a fresh install and
upgrades the legacy structure in place. Running it again is harmless.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := rt.lifecycle.OnActivate(cmd.Context())
		if err != nil {
			return fmt.Errorf("run migration: %w", err)
		}

		fmt.Printf("Migration finished: %s (version %d -> %d)\n",
			result.Outcome, result.FromVersion, result.ToVersion)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report the blog-meta schema status",
	RunE: func(cmd *cobra.Command, args []string) error {
		version, recorded, err := rt.schema.StoredVersion(cmd.Context())
		if err != nil {
			return fmt.Errorf("read stored version: %w", err)
		}

		fmt.Printf("Table:          %s\n", rt.handle.TableName(blogmeta.MetaTable))
		if recorded {
			fmt.Printf("Stored version: %d\n", version)
		} else {
			fmt.Println("Stored version: (none)")
		}
		fmt.Printf("Target version: %d\n", blogmeta.SchemaVersionTarget)

		switch {
		case version >= blogmeta.SchemaVersionTarget:
			fmt.Println("Status:         current")
		case recorded && version <= blogmeta.SchemaVersionLegacy:
			fmt.Println("Status:         legacy, run migrate")
		case recorded:
			fmt.Println("Status:         unrecognized version, no upgrade path")
		default:
			fmt.Println("Status:         not installed, run migrate")
		}
		return nil
	},
}
