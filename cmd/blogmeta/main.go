// Package main provides the blogmeta admin CLI: a harness around the
// schema manager and the meta store for operators running migrations and
// inspecting site meta outside the host platform.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// configFile and metricsAddr are set by persistent flags.
var (
	configFile  string
	metricsAddr string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blogmeta",
	Short: "blogmeta manages the multisite blog-meta table",
	Long: `blogmeta is the admin harness for the blog-meta plugin. It runs the
versioned schema migration, reports schema status, and reads and writes
per-site meta rows directly against the configured database.`,
	PersistentPreRunE: initRuntime,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeRuntime()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: .blogmeta.yaml)")
	rootCmd.PersistentFlags().String("driver", "", "database driver: mysql, postgres, or sqlite")
	rootCmd.PersistentFlags().String("dsn", "", "database connection string")
	rootCmd.PersistentFlags().String("prefix", "", "global table prefix, e.g. wp_")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "expose Prometheus metrics on this address while the command runs")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(deleteSiteCmd)
	rootCmd.AddCommand(metaCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("blogmeta v1.0.0")
	},
}
