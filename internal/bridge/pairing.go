package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Pairing constants.
const (
	// pairTimeout bounds the link-button handshake request.
	pairTimeout = 10 * time.Second

	// pairConnectTimeout bounds connection establishment during pairing.
	pairConnectTimeout = 5 * time.Second

	// linkButtonErrorType is the bridge error code for "link button not
	// pressed" on the v1 pairing endpoint.
	linkButtonErrorType = 101
)

// Credentials is the result of a successful link-button pairing.
type Credentials struct {
	// ApplicationKey authenticates all CLIP v2 requests
	// (the v1 API calls this "username").
	ApplicationKey string

	// ClientKey is the entertainment-streaming key. Stored for
	// completeness; nothing in this module uses it.
	ClientKey string
}

// pairRequest is the v1 pairing payload.
type pairRequest struct {
	DeviceType        string `json:"devicetype"`
	GenerateClientKey bool   `json:"generateclientkey"`
}

// pairResponse is one entry of the v1 pairing response array.
type pairResponse struct {
	Success *struct {
		Username  string `json:"username"`
		ClientKey string `json:"clientkey"`
	} `json:"success,omitempty"`
	Error *struct {
		Type        int    `json:"type"`
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

// Pair performs the link-button handshake against a bridge and returns a
// fresh application key.
//
// The physical link button must be pressed on the bridge within ~30 seconds
// before calling; otherwise the bridge answers with error type 101 and Pair
// returns ErrLinkButtonNotPressed.
//
// This talks to the v1 endpoint (POST https://{ip}/api), which is the only
// place key generation exists; everything else in this module is CLIP v2.
// The instance name distinguishes credentials minted for different
// installations ("huecore#<instance>" in the bridge's whitelist).
func Pair(ctx context.Context, ip, instance string) (*Credentials, error) {
	if ip == "" {
		return nil, fmt.Errorf("bridge address is required")
	}
	if instance == "" {
		instance = "cli"
	}

	payload, err := json.Marshal(pairRequest{
		DeviceType:        fmt.Sprintf("huecore#%s", instance),
		GenerateClientKey: true,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding pairing request: %w", err)
	}

	url := fmt.Sprintf("https://%s/api", ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building pairing request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Pairing happens before any key exists, so this uses its own
	// unauthenticated client. The bridge cert is self-signed here too.
	httpc := newHTTPClient(pairTimeout, pairConnectTimeout, false)

	resp, err := httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: pairing with %s: %v", ErrUnreachable, ip, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var results []pairResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding pairing response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("empty pairing response from %s", ip)
	}

	first := results[0]
	if first.Error != nil {
		if first.Error.Type == linkButtonErrorType {
			return nil, ErrLinkButtonNotPressed
		}
		return nil, fmt.Errorf("pairing rejected: %s", first.Error.Description)
	}
	if first.Success == nil || first.Success.Username == "" {
		return nil, fmt.Errorf("pairing response missing application key")
	}

	return &Credentials{
		ApplicationKey: first.Success.Username,
		ClientKey:      first.Success.ClientKey,
	}, nil
}
