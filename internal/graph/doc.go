// Package graph builds the cross-referenced, in-memory view over one
// resource snapshot and answers the join queries nothing else can:
// light to owning device name, room or zone to controllable target, and
// device to capability set, plus name search and the detailed light listing.
//
// # Design
//
// The bridge's resource graph is indirect by construction: a device lists
// its services by UUID, a light points back at its device, a room lists
// member devices and (usually) a grouped_light control point. No single
// record is self-sufficient. The graph joins the independently-fetched
// collections into four indices:
//
//   - device-by-id, light-by-id, group-by-id, scene-by-id
//   - service-owner: service id to owning device id
//   - group-control: room/zone id to grouped_light id
//   - device-rooms: device id to room names (listings only)
//
// Two fetches of the bridge are never guaranteed consistent, so dangling
// references are expected, not exceptional: resolution returns an explicit
// ErrOrphanedResource (or skips the entry in batch listings) instead of
// assuming referential integrity. The graph is rebuilt from scratch per
// snapshot, never patched incrementally, so removals and re-pairings
// cannot leave stale edges.
package graph
