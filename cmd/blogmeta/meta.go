// Meta subcommands: direct row access for operators.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sitekit/blogmeta/store"
)

var metaJSON bool

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Read and write per-site meta rows",
}

func init() {
	metaCmd.PersistentFlags().BoolVar(&metaJSON, "json", false, "output as JSON")

	metaCmd.AddCommand(metaGetCmd)
	metaCmd.AddCommand(metaSetCmd)
	metaCmd.AddCommand(metaDeleteCmd)
	metaCmd.AddCommand(metaListCmd)
}

func parseSiteID(arg string) (int64, error) {
	siteID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid site id %q", arg)
	}
	return siteID, nil
}

var metaGetCmd = &cobra.Command{
	Use:   "get <site-id> <key>",
	Short: "Retrieve a meta value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		siteID, err := parseSiteID(args[0])
		if err != nil {
			return err
		}

		meta, err := rt.meta.GetMeta(cmd.Context(), siteID, args[1])
		if errors.Is(err, store.ErrMetaNotFound) {
			return fmt.Errorf("meta %q not found for site %d", args[1], siteID)
		}
		if err != nil {
			return fmt.Errorf("get meta: %w", err)
		}

		if metaJSON {
			return json.NewEncoder(os.Stdout).Encode(meta)
		}
		fmt.Println(meta.Value)
		return nil
	},
}

var metaSetCmd = &cobra.Command{
	Use:   "set <site-id> <key> <value>",
	Short: "Set a meta value, inserting the row if absent",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		siteID, err := parseSiteID(args[0])
		if err != nil {
			return err
		}

		meta, err := rt.meta.UpdateMeta(cmd.Context(), siteID, args[1], args[2])
		if err != nil {
			return fmt.Errorf("set meta: %w", err)
		}

		if metaJSON {
			return json.NewEncoder(os.Stdout).Encode(meta)
		}
		fmt.Printf("Set %q for site %d (meta_id %d)\n", meta.Key, meta.SiteID, meta.MetaID)
		return nil
	},
}

var metaDeleteCmd = &cobra.Command{
	Use:   "delete <site-id> <key>",
	Short: "Delete the rows for a site and key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		siteID, err := parseSiteID(args[0])
		if err != nil {
			return err
		}

		err = rt.meta.DeleteMeta(cmd.Context(), siteID, args[1])
		if errors.Is(err, store.ErrMetaNotFound) {
			return fmt.Errorf("meta %q not found for site %d", args[1], siteID)
		}
		if err != nil {
			return fmt.Errorf("delete meta: %w", err)
		}

		fmt.Printf("Deleted %q for site %d\n", args[1], siteID)
		return nil
	},
}

var metaListCmd = &cobra.Command{
	Use:   "list <site-id>",
	Short: "List all meta rows for a site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		siteID, err := parseSiteID(args[0])
		if err != nil {
			return err
		}

		rows, err := rt.meta.ListSiteMeta(cmd.Context(), siteID)
		if err != nil {
			return fmt.Errorf("list site meta: %w", err)
		}

		if metaJSON {
			return json.NewEncoder(os.Stdout).Encode(rows)
		}

		if len(rows) == 0 {
			fmt.Printf("No meta rows for site %d\n", siteID)
			return nil
		}
		for _, row := range rows {
			fmt.Printf("%d\t%s\t%s\n", row.MetaID, row.Key, row.Value)
		}
		return nil
	},
}
