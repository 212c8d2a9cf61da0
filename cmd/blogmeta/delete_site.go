// Delete-site command: removes every meta row a site owns.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteSiteCmd = &cobra.Command{
	Use:   "delete-site <site-id>",
	Short: "Delete all meta rows owned by a site",
	Long: `Delete-site permanently removes every blog-meta row the given site
owns, the same cleanup the host runs when a site is deleted. Deleting a
site with no rows succeeds and reports zero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		siteID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid site id %q", args[0])
		}

		deleted, err := rt.lifecycle.OnSiteDeleted(cmd.Context(), siteID)
		if err != nil {
			return fmt.Errorf("delete site meta: %w", err)
		}

		fmt.Printf("Deleted %d meta row(s) for site %d\n", deleted, siteID)
		return nil
	},
}
