package graph

import "errors"

// Errors for the graph package.
var (
	// ErrUnknownResource is returned when a queried id is absent from the
	// current snapshot entirely.
	ErrUnknownResource = errors.New("graph: unknown resource")

	// ErrOrphanedResource is returned when a resource exists but a
	// reference it carries points at something missing from the snapshot
	// (e.g. a light whose owning device was removed between fetches).
	// Orphans are tolerated: callers choose a fallback display, they do
	// not abort.
	ErrOrphanedResource = errors.New("graph: orphaned resource reference")
)
