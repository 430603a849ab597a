package bridge

import "errors"

// Transport errors for the bridge package.
//
// Callers classify failures with errors.Is():
//
//	if errors.Is(err, bridge.ErrUnreachable) {
//	    // network-level failure, safe to surface as "bridge offline"
//	}
var (
	// ErrUnreachable is returned when the bridge cannot be reached over the
	// network after the configured retry policy (reads) or on the first
	// attempt (writes, which are never retried).
	ErrUnreachable = errors.New("bridge: unreachable")

	// ErrUnauthorized is returned when the bridge rejects the application key.
	ErrUnauthorized = errors.New("bridge: unauthorized")

	// ErrNotFound is returned when the bridge has no resource for the
	// requested id.
	ErrNotFound = errors.New("bridge: resource not found")

	// ErrLinkButtonNotPressed is returned by Pair when the physical link
	// button was not pressed within the pairing window.
	ErrLinkButtonNotPressed = errors.New("bridge: link button not pressed")

	// ErrNoBridgeFound is returned by Discover when the discovery service
	// reports no bridges on the local network.
	ErrNoBridgeFound = errors.New("bridge: no bridge discovered")

	// ErrNoCredential is returned when a client is constructed without an
	// application key.
	ErrNoCredential = errors.New("bridge: application key not configured")
)
