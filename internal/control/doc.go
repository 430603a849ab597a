// Package control translates desired-state documents into resource
// updates against the bridge.
//
// Validation is strictly local and runs to completion before any network
// traffic: out-of-range values are rejected with ErrOutOfRange, never
// clamped, and updates a light cannot honor are rejected with
// ErrUnsupported. Payloads are partial documents carrying exactly the
// requested fields, so an unrelated property is never disturbed.
//
// Group control prefers the aggregate grouped_light endpoint: one update,
// bridge-side fan-out. Only groups without one fall back to bounded
// concurrent per-member updates, where each target succeeds or fails on
// its own and a mixed outcome surfaces ErrPartialFailure alongside the
// per-target results. Updates are never auto-retried.
package control
