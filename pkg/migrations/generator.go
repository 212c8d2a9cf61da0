package migrations

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var prefixRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// validatePrefix ensures a table prefix contains only safe characters for SQL.
// An empty prefix is allowed; the migration then targets the bare table name.
func validatePrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if !prefixRegex.MatchString(prefix) {
		return fmt.Errorf("TablePrefix must start with a letter and contain only letters, numbers, and underscores (got: %s)", prefix)
	}
	return nil
}

// Config configures migration generation for the blog-meta table.
type Config struct {
	// OutputFolder is the directory where the migration file will be written
	OutputFolder string

	// OutputFilename is the name of the migration file
	OutputFilename string

	// TablePrefix is the host's global table prefix, e.g. "wp_". May be empty.
	TablePrefix string

	// Charset is the table character set for MySQL (default: utf8mb4)
	Charset string

	// Collate is the table collation for MySQL (default: utf8mb4_unicode_ci)
	Collate string
}

// DefaultConfig returns the default configuration for blog-meta migrations.
func DefaultConfig() Config {
	timestamp := time.Now().Format("20060102150405")
	return Config{
		OutputFolder:   "migrations",
		OutputFilename: fmt.Sprintf("%s_create_blogmeta.sql", timestamp),
		TablePrefix:    "wp_",
		Charset:        "utf8mb4",
		Collate:        "utf8mb4_unicode_ci",
	}
}

func (c *Config) table() string {
	return c.TablePrefix + "blogmeta"
}

func writeMigration(config *Config, sql string) error {
	if err := os.MkdirAll(config.OutputFolder, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	outputPath := filepath.Join(config.OutputFolder, config.OutputFilename)
	if err := os.WriteFile(outputPath, []byte(sql), 0o600); err != nil {
		return fmt.Errorf("failed to write migration file: %w", err)
	}

	return nil
}

// GeneratePostgres generates a PostgreSQL migration file.
func GeneratePostgres(config *Config) error {
	if err := validatePrefix(config.TablePrefix); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return writeMigration(config, generatePostgresSQL(config))
}

func generatePostgresSQL(config *Config) string {
	return fmt.Sprintf(`-- Blog Meta Table Migration
-- Generated: %s
-- Database: PostgreSQL

-- Key/value rows per site, keyed by the network-wide site ID.
-- meta_id is the storage-assigned row identity; duplicate keys per
-- site are allowed and readers take the first row in meta_id order.
CREATE TABLE IF NOT EXISTS %[2]s (
    meta_id BIGSERIAL PRIMARY KEY,
    site_id BIGINT NOT NULL,
    meta_key VARCHAR(255),
    meta_value TEXT
);

-- Index for site-scoped reads and deletion
CREATE INDEX IF NOT EXISTS idx_%[2]s_site_id
    ON %[2]s (site_id);

-- Prefix index for key lookups, matching the MySQL key length cap
CREATE INDEX IF NOT EXISTS idx_%[2]s_meta_key
    ON %[2]s (left(meta_key, 191));
`,
		time.Now().Format(time.RFC3339),
		config.table(),
	)
}

// GenerateMySQL generates a MySQL/MariaDB migration file.
func GenerateMySQL(config *Config) error {
	if err := validatePrefix(config.TablePrefix); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	charset := config.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	collate := config.Collate
	if collate == "" {
		collate = "utf8mb4_unicode_ci"
	}

	return writeMigration(config, generateMySQLSQL(config, charset, collate))
}

func generateMySQLSQL(config *Config, charset, collate string) string {
	return fmt.Sprintf(`-- Blog Meta Table Migration
-- Generated: %s
-- Database: MySQL/MariaDB

-- Key/value rows per site, keyed by the network-wide site ID.
-- meta_id is the storage-assigned row identity; duplicate keys per
-- site are allowed and readers take the first row in meta_id order.
-- The meta_key index is capped at 191 characters so it fits the
-- utf8mb4 index byte limit of older InnoDB row formats.
CREATE TABLE IF NOT EXISTS %s (
    meta_id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
    site_id BIGINT NOT NULL,
    meta_key VARCHAR(255) DEFAULT NULL,
    meta_value LONGTEXT DEFAULT NULL,
    PRIMARY KEY (meta_id),
    KEY site_id (site_id),
    KEY meta_key (meta_key(191))
) ENGINE=InnoDB DEFAULT CHARSET=%s COLLATE=%s;
`,
		time.Now().Format(time.RFC3339),
		config.table(),
		charset, collate,
	)
}

// GenerateSQLite generates a SQLite migration file.
func GenerateSQLite(config *Config) error {
	if err := validatePrefix(config.TablePrefix); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return writeMigration(config, generateSQLiteSQL(config))
}

func generateSQLiteSQL(config *Config) string {
	return fmt.Sprintf(`-- Blog Meta Table Migration
-- Generated: %s
-- Database: SQLite

-- Key/value rows per site, keyed by the network-wide site ID.
-- meta_id is the storage-assigned row identity; duplicate keys per
-- site are allowed and readers take the first row in meta_id order.
CREATE TABLE IF NOT EXISTS %[2]s (
    meta_id INTEGER PRIMARY KEY AUTOINCREMENT,
    site_id INTEGER NOT NULL,
    meta_key TEXT,
    meta_value TEXT
);

-- Index for site-scoped reads and deletion
CREATE INDEX IF NOT EXISTS idx_%[2]s_site_id
    ON %[2]s (site_id);

-- Index for key lookups; SQLite has no prefix indexes, so the full
-- column is indexed
CREATE INDEX IF NOT EXISTS idx_%[2]s_meta_key
    ON %[2]s (meta_key);
`,
		time.Now().Format(time.RFC3339),
		config.table(),
	)
}
