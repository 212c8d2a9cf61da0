package store

import "errors"

var (
	// ErrMetaNotFound indicates no meta row matches the site and key.
	ErrMetaNotFound = errors.New("meta not found")
)
