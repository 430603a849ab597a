// Package bridge implements the session/transport layer for talking to a
// Hue-style bridge over its CLIP v2 API.
//
// The bridge is a constrained embedded device reachable only on the local
// network, presenting a self-signed TLS certificate and authenticating every
// request via the hue-application-key header. This package owns:
//
//   - Client: authenticated HTTPS request execution with separate request
//     and connection-establish timeouts
//   - retry policy: exponential backoff for idempotent GETs only; PUTs are
//     never retried (an ambiguous write failure must not be replayed)
//   - error classification into ErrUnreachable / ErrUnauthorized /
//     ErrNotFound sentinels
//   - Pair: the v1 link-button handshake that mints an application key
//   - Discover: bridge address lookup via the vendor discovery service
//
// Everything above this package (resource store, graph, dispatcher) works
// in terms of the Envelope type and the sentinel errors; no other package
// touches net/http.
//
// # Usage
//
//	client, err := bridge.New(cfg)
//	if err != nil {
//	    return err
//	}
//	client.SetLogger(log)
//
//	env, err := client.Get(ctx, "/resource/light")
//	if errors.Is(err, bridge.ErrUnauthorized) {
//	    // application key revoked; re-pair
//	}
package bridge
