// Command migrate-gen generates SQL migration files for the blog-meta table.
//
// Usage:
//
//	go run github.com/sitekit/blogmeta/cmd/migrate-gen -output migrations -filename create_blogmeta.sql
//
// Or with go generate:
//
//	//go:generate go run github.com/sitekit/blogmeta/cmd/migrate-gen -output migrations
//
// Generate migrations for different database adapters:
//
//	go run github.com/sitekit/blogmeta/cmd/migrate-gen -adapter postgres -output migrations
//	go run github.com/sitekit/blogmeta/cmd/migrate-gen -adapter mysql -output migrations
//	go run github.com/sitekit/blogmeta/cmd/migrate-gen -adapter sqlite -output migrations
//
// Customize the table prefix:
//
//	go run github.com/sitekit/blogmeta/cmd/migrate-gen -prefix wp_ -output migrations
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sitekit/blogmeta/pkg/migrations"
)

func main() {
	var (
		adapter        = flag.String("adapter", "mysql", "Database adapter: postgres, mysql, or sqlite")
		outputFolder   = flag.String("output", "migrations", "Output folder for migration file")
		outputFilename = flag.String("filename", "", "Output filename (default: timestamp-based)")
		tablePrefix    = flag.String("prefix", "wp_", "Global table prefix (may be empty)")
		charset        = flag.String("charset", "utf8mb4", "Table character set (MySQL only)")
		collate        = flag.String("collate", "utf8mb4_unicode_ci", "Table collation (MySQL only)")
	)

	flag.Parse()

	config := migrations.DefaultConfig()
	config.OutputFolder = *outputFolder
	config.TablePrefix = *tablePrefix
	config.Charset = *charset
	config.Collate = *collate

	if *outputFilename != "" {
		config.OutputFilename = *outputFilename
	}

	var err error
	switch *adapter {
	case "postgres":
		err = migrations.GeneratePostgres(&config)
	case "mysql":
		err = migrations.GenerateMySQL(&config)
	case "sqlite":
		err = migrations.GenerateSQLite(&config)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported adapter '%s'. Supported adapters are: postgres, mysql, sqlite\n", *adapter)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating migration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s migration: %s/%s\n", *adapter, config.OutputFolder, config.OutputFilename)
}
