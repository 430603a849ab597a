// Package logging provides structured logging for huecore.
//
// It is a thin wrapper over log/slog: handler selection (JSON or text),
// level filtering, and default service/version fields come from
// configuration. Components that log accept a narrow Logger interface with
// a no-op default, so library consumers are never forced to wire one.
//
// Logs go to stderr by default: stdout is reserved for command output.
package logging
