package resource

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/fennwald/huecore/internal/bridge"
)

// fakeTransport serves canned envelopes keyed by endpoint and records
// every call.
type fakeTransport struct {
	mu        sync.Mutex
	responses map[string]string
	err       error
	calls     []string
}

func (f *fakeTransport) Get(ctx context.Context, endpoint string) (*bridge.Envelope, error) {
	f.mu.Lock()
	f.calls = append(f.calls, endpoint)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.responses[endpoint]
	if !ok {
		body = `{"errors":[],"data":[]}`
	}
	var env bridge.Envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (f *fakeTransport) Put(ctx context.Context, endpoint string, payload any) (*bridge.Envelope, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "PUT "+endpoint)
	f.mu.Unlock()
	return &bridge.Envelope{}, f.err
}

func (f *fakeTransport) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

const testLightID = "11111111-2222-3333-4444-555555555555"

func TestDevicesDecode(t *testing.T) {
	transport := &fakeTransport{responses: map[string]string{
		"/resource/device": `{"errors":[],"data":[
			{"id":"d1","type":"device",
			 "metadata":{"name":"Desk Lamp","archetype":"table_shade"},
			 "product_data":{"model_id":"LCT012","product_name":"Hue candle","product_archetype":"candle_bulb"},
			 "services":[{"rid":"l1","rtype":"light"},{"rid":"z1","rtype":"zigbee_connectivity"}]}
		]}`,
	}}
	store := NewStore(transport)

	devices, err := store.Devices(context.Background())
	if err != nil {
		t.Fatalf("Devices() error = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("len(devices) = %d, want 1", len(devices))
	}

	d := devices[0]
	if d.Metadata.Name != "Desk Lamp" {
		t.Errorf("Name = %q, want %q", d.Metadata.Name, "Desk Lamp")
	}
	if d.ProductData.ProductArchetype != "candle_bulb" {
		t.Errorf("ProductArchetype = %q, want %q", d.ProductData.ProductArchetype, "candle_bulb")
	}
	if len(d.Services) != 2 || d.Services[0].RType != TypeLight {
		t.Errorf("Services = %+v, want light + zigbee_connectivity refs", d.Services)
	}
}

func TestLightDecodeAndReachable(t *testing.T) {
	transport := &fakeTransport{responses: map[string]string{
		"/resource/light/" + testLightID: `{"errors":[],"data":[
			{"id":"` + testLightID + `","type":"light",
			 "owner":{"rid":"d1","rtype":"device"},
			 "on":{"on":true},
			 "dimming":{"brightness":75.5,"min_dim_level":2},
			 "color_temperature":{"mirek":366,"mirek_schema":{"mirek_minimum":153,"mirek_maximum":454}},
			 "status":"connectivity_issue"}
		]}`,
	}}
	store := NewStore(transport)

	light, err := store.Light(context.Background(), testLightID)
	if err != nil {
		t.Fatalf("Light() error = %v", err)
	}
	if !light.On.On {
		t.Error("On = false, want true")
	}
	if light.Dimming == nil || light.Dimming.Brightness != 75.5 {
		t.Errorf("Dimming = %+v, want brightness 75.5", light.Dimming)
	}
	if light.ColorTemperature == nil || light.ColorTemperature.MirekSchema.MirekMaximum != 454 {
		t.Errorf("ColorTemperature = %+v, want schema max 454", light.ColorTemperature)
	}
	if light.Reachable() {
		t.Error("Reachable() = true for connectivity_issue status")
	}
}

func TestFetchOneInvalidID(t *testing.T) {
	transport := &fakeTransport{}
	store := NewStore(transport)

	_, err := store.FetchOne(context.Background(), TypeLight, "not-a-uuid")
	if !errors.Is(err, ErrInvalidID) {
		t.Fatalf("FetchOne() error = %v, want ErrInvalidID", err)
	}
	if transport.callCount() != 0 {
		t.Error("invalid id must be rejected before any request is made")
	}
}

func TestFetchOneNotFound(t *testing.T) {
	// Valid id, but the bridge answers with an empty data list.
	transport := &fakeTransport{}
	store := NewStore(transport)

	_, err := store.FetchOne(context.Background(), TypeLight, testLightID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FetchOne() error = %v, want ErrNotFound", err)
	}
}

func TestSnapshotFetchesAllCollections(t *testing.T) {
	transport := &fakeTransport{responses: map[string]string{
		"/resource/light": `{"errors":[],"data":[{"id":"l1","owner":{"rid":"d1","rtype":"device"},"on":{"on":false}}]}`,
		"/resource/room":  `{"errors":[],"data":[{"id":"r1","type":"room","metadata":{"name":"Office"}}]}`,
	}}
	store := NewStore(transport)

	snap, err := store.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if len(snap.Lights) != 1 || len(snap.Rooms) != 1 {
		t.Errorf("snapshot = %d lights / %d rooms, want 1 / 1", len(snap.Lights), len(snap.Rooms))
	}
	if transport.callCount() != 5 {
		t.Errorf("calls = %d, want 5 collection fetches", transport.callCount())
	}

	want := map[string]bool{
		"/resource/device": false, "/resource/light": false, "/resource/room": false,
		"/resource/zone": false, "/resource/scene": false,
	}
	transport.mu.Lock()
	for _, call := range transport.calls {
		want[call] = true
	}
	transport.mu.Unlock()
	for endpoint, seen := range want {
		if !seen {
			t.Errorf("collection %s was never fetched", endpoint)
		}
	}
}

func TestSnapshotPropagatesFailure(t *testing.T) {
	transport := &fakeTransport{err: bridge.ErrUnauthorized}
	store := NewStore(transport)

	_, err := store.Snapshot(context.Background())
	if !errors.Is(err, bridge.ErrUnauthorized) {
		t.Errorf("Snapshot() error = %v, want ErrUnauthorized", err)
	}
}

func TestDecodeAllRejectsMalformedRecord(t *testing.T) {
	transport := &fakeTransport{responses: map[string]string{
		"/resource/light": `{"errors":[],"data":[{"id":"l1","on":{"on":"yes"}}]}`,
	}}
	store := NewStore(transport)

	if _, err := store.Lights(context.Background()); err == nil {
		t.Error("Lights() should fail when a record no longer matches the schema")
	}
}
