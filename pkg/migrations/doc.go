// Package migrations provides SQL migration file generation for the
// blog-meta table. It writes standalone .sql files for hosts that apply
// schema changes through an external migration pipeline instead of the
// runtime schema manager, covering PostgreSQL, MySQL/MariaDB, and SQLite.
package migrations
