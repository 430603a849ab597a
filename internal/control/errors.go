package control

import "errors"

// Errors for the control package.
var (
	// ErrOutOfRange is returned when a requested value falls outside the
	// valid range for its field. Out-of-range values are rejected before
	// any network traffic, never clamped.
	ErrOutOfRange = errors.New("control: value out of range")

	// ErrUnsupported is returned when a requested update needs a
	// capability the target light does not advertise.
	ErrUnsupported = errors.New("control: capability not supported by target")

	// ErrInvalidTarget is returned when a target id is not a valid UUID.
	ErrInvalidTarget = errors.New("control: invalid target id")

	// ErrEmptyState is returned when a dispatch carries no fields at all.
	ErrEmptyState = errors.New("control: empty state")

	// ErrPartialFailure is returned by a fan-out dispatch in which some
	// targets succeeded and at least one failed. The Dispatch result
	// carries the per-target outcomes.
	ErrPartialFailure = errors.New("control: partial failure")
)
