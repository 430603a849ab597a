// Package resource models the bridge's CLIP v2 resource records and
// provides the Resource Store that fetches them.
//
// Every entity is identified by an opaque UUID and relates to others only
// through Ref values (rid + rtype); the bridge never embeds one resource
// inside another. A light does not know its name, a device has no
// controllable state, a room lists member devices rather than lights;
// joining these collections into something usable is the graph package's
// job; this package only fetches and decodes.
//
// # Key Types
//
//   - Device, Light, Group (room/zone), Scene, GroupedLight, Bridge:
//     typed views of the JSON records
//   - Ref: an indirect resource reference
//   - Store: FetchAll / FetchOne plus typed collection accessors
//   - Snapshot: a concurrent fetch of all graph collections, immutable
//     once built
//
// The store never caches: a fresh snapshot is fetched for each top-level
// operation so local state cannot race the bridge's actual state.
package resource
