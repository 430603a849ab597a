// Package config loads and validates huecore configuration.
//
// Configuration lives in a single YAML file (bridge address and credential,
// API base path, timeouts, retry policy, dispatch concurrency, logging) with
// environment-variable overrides under the HUECORE_ prefix. Validation runs
// at load time: a config that cannot produce a working bridge session is
// rejected before any operation starts.
//
// The application key is a credential; Save writes the file with owner-only
// permissions.
package config
