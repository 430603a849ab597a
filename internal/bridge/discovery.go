package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// discoveryURL is the vendor cloud discovery service. It lists bridges that
// have phoned home from the caller's public address. Variable so tests can
// point it at a local server.
var discoveryURL = "https://discovery.meethue.com/"

// discoveryTimeout bounds the discovery request.
const discoveryTimeout = 10 * time.Second

// discoveredBridge is one entry of the discovery response.
type discoveredBridge struct {
	ID                string `json:"id"`
	InternalIPAddress string `json:"internalipaddress"`
}

// Discover finds a bridge on the local network via the vendor discovery
// service and returns its address. Returns ErrNoBridgeFound when the
// service reports no bridges.
//
// Unlike bridge traffic, discovery talks to a public endpoint with a real
// certificate, so normal TLS validation applies.
func Discover(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, nil)
	if err != nil {
		return "", fmt.Errorf("building discovery request: %w", err)
	}

	httpc := &http.Client{Timeout: discoveryTimeout}
	resp, err := httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: discovery: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("discovery service returned %d", resp.StatusCode)
	}

	var bridges []discoveredBridge
	if err := json.NewDecoder(resp.Body).Decode(&bridges); err != nil {
		return "", fmt.Errorf("decoding discovery response: %w", err)
	}
	if len(bridges) == 0 {
		return "", ErrNoBridgeFound
	}

	return bridges[0].InternalIPAddress, nil
}
