package resource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fennwald/huecore/internal/bridge"
)

// Transport executes CLIP v2 calls. Satisfied by *bridge.Client.
type Transport interface {
	Get(ctx context.Context, endpoint string) (*bridge.Envelope, error)
	Put(ctx context.Context, endpoint string, payload any) (*bridge.Envelope, error)
}

// Store fetches typed resource collections from the bridge.
//
// The store performs no implicit caching: every call hits the bridge, and
// downstream components must tolerate a fresh empty collection. Consumers
// that need a consistent multi-collection view use Snapshot.
type Store struct {
	transport Transport
}

// NewStore creates a resource store over a transport.
func NewStore(transport Transport) *Store {
	return &Store{transport: transport}
}

// FetchAll returns the raw records of one resource collection.
func (s *Store) FetchAll(ctx context.Context, typ Type) ([]json.RawMessage, error) {
	env, err := s.transport.Get(ctx, fmt.Sprintf("/resource/%s", typ))
	if err != nil {
		return nil, fmt.Errorf("fetching %s collection: %w", typ, err)
	}
	return env.Data, nil
}

// FetchOne returns the raw record for a specific resource id.
// Returns ErrInvalidID for malformed ids (no request is made) and
// ErrNotFound when the bridge has no such resource.
func (s *Store) FetchOne(ctx context.Context, typ Type, id string) (json.RawMessage, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	env, err := s.transport.Get(ctx, fmt.Sprintf("/resource/%s/%s", typ, id))
	if err != nil {
		return nil, fmt.Errorf("fetching %s %s: %w", typ, id, err)
	}
	if len(env.Data) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, typ, id)
	}
	return env.Data[0], nil
}

// decodeAll unmarshals every raw record of a collection into T.
// A record that fails to decode aborts the batch: a shape mismatch means
// the client no longer understands the bridge, not a degraded entry.
func decodeAll[T any](raw []json.RawMessage, typ Type) ([]T, error) {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, fmt.Errorf("decoding %s record: %w", typ, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Devices fetches the device collection.
func (s *Store) Devices(ctx context.Context) ([]Device, error) {
	raw, err := s.FetchAll(ctx, TypeDevice)
	if err != nil {
		return nil, err
	}
	return decodeAll[Device](raw, TypeDevice)
}

// Lights fetches the light collection.
func (s *Store) Lights(ctx context.Context) ([]Light, error) {
	raw, err := s.FetchAll(ctx, TypeLight)
	if err != nil {
		return nil, err
	}
	return decodeAll[Light](raw, TypeLight)
}

// Light fetches a single light by id.
func (s *Store) Light(ctx context.Context, id string) (*Light, error) {
	raw, err := s.FetchOne(ctx, TypeLight, id)
	if err != nil {
		return nil, err
	}
	var l Light
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("decoding light record: %w", err)
	}
	return &l, nil
}

// Rooms fetches the room collection.
func (s *Store) Rooms(ctx context.Context) ([]Group, error) {
	raw, err := s.FetchAll(ctx, TypeRoom)
	if err != nil {
		return nil, err
	}
	return decodeAll[Group](raw, TypeRoom)
}

// Zones fetches the zone collection.
func (s *Store) Zones(ctx context.Context) ([]Group, error) {
	raw, err := s.FetchAll(ctx, TypeZone)
	if err != nil {
		return nil, err
	}
	return decodeAll[Group](raw, TypeZone)
}

// Scenes fetches the scene collection.
func (s *Store) Scenes(ctx context.Context) ([]Scene, error) {
	raw, err := s.FetchAll(ctx, TypeScene)
	if err != nil {
		return nil, err
	}
	return decodeAll[Scene](raw, TypeScene)
}

// Bridges fetches the bridge singleton collection.
func (s *Store) Bridges(ctx context.Context) ([]Bridge, error) {
	raw, err := s.FetchAll(ctx, TypeBridge)
	if err != nil {
		return nil, err
	}
	return decodeAll[Bridge](raw, TypeBridge)
}

// Snapshot is a point-in-time view of the collections the graph resolver
// joins across. It is treated as immutable once fetched: shared read-only
// for the duration of one logical operation and rebuilt, never patched,
// for the next.
type Snapshot struct {
	Devices []Device
	Lights  []Light
	Rooms   []Group
	Zones   []Group
	Scenes  []Scene
}

// Snapshot fetches all graph collections concurrently and returns them as
// one immutable value. The collections are fetched in parallel because the
// bridge serves them independently; the first failing fetch cancels the
// rest and is returned.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Devices, err = s.Devices(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Lights, err = s.Lights(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Rooms, err = s.Rooms(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Zones, err = s.Zones(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Scenes, err = s.Scenes(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching snapshot: %w", err)
	}
	return snap, nil
}
