package resource

import "errors"

// Errors for the resource package.
var (
	// ErrNotFound is returned when the bridge answers a single-resource
	// lookup with an empty data list.
	ErrNotFound = errors.New("resource: not found")

	// ErrInvalidID is returned when a resource id is not a well-formed
	// UUID. Caught before any request is built so malformed ids never
	// reach the wire.
	ErrInvalidID = errors.New("resource: invalid id")
)
