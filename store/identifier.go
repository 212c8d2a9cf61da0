package store

import (
	"fmt"
	"regexp"
	"strings"
)

var identifierRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// ValidateIdentifier ensures a table name contains only safe characters
// for interpolation into DDL. Physical table names are built from the
// handle's prefix, which is operator-supplied, so they are checked
// before any statement is formed.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("identifier cannot be empty")
	}
	if !identifierRegex.MatchString(name) {
		return fmt.Errorf("identifier must start with a letter and contain only letters, numbers, and underscores (got: %s)", name)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards in s so a catalog lookup matches the
// literal table name.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
