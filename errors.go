package blogmeta

import "errors"

var (
	// ErrInvalidSiteID indicates a site identifier that is zero or negative.
	ErrInvalidSiteID = errors.New("invalid site id")

	// ErrEmptyMetaKey indicates an empty meta key was passed to an operation
	// that requires one.
	ErrEmptyMetaKey = errors.New("empty meta key")

	// ErrMetaKeyTooLong indicates a meta key longer than MaxKeyLength.
	ErrMetaKeyTooLong = errors.New("meta key too long")

	// ErrNilHandle indicates a component was configured without the
	// shared database handle.
	ErrNilHandle = errors.New("nil database handle")

	// ErrNilStore indicates a component was configured without its
	// backing store.
	ErrNilStore = errors.New("nil store")

	// ErrNilOptions indicates a component was configured without the
	// network option store.
	ErrNilOptions = errors.New("nil option store")

	// ErrNilSchema indicates a component was configured without the
	// schema manager.
	ErrNilSchema = errors.New("nil schema manager")
)
