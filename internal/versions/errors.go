package versions

import "errors"

var (
	// ErrVersionNotFound is returned when an operation names a version id that is not in the collection.
	ErrVersionNotFound = errors.New("version not found")
	// ErrLastVersion is returned when deleting would leave the collection empty.
	ErrLastVersion = errors.New("cannot delete the last remaining version")
	// ErrUnknownSection is returned for section ids outside the registry.
	ErrUnknownSection = errors.New("unknown section")
)
