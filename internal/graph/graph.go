package graph

import (
	"fmt"
	"sort"

	"github.com/fennwald/huecore/internal/resource"
)

// Graph is an indexed, cross-referenced view over one resource snapshot.
//
// It is built from scratch on every snapshot refresh, with no incremental
// mutation, so a device removed or re-paired between fetches can never
// leave a stale cross-reference behind. All lookups are pure, in-memory
// joins; the graph never touches the network.
//
// Thread Safety: a Graph is immutable after Build and safe for concurrent
// readers.
type Graph struct {
	devices map[string]*resource.Device
	lights  map[string]*resource.Light
	groups  map[string]*resource.Group
	scenes  map[string]*resource.Scene

	// serviceOwner maps a service id to its owning device id, for every
	// service listed by a device in the snapshot.
	serviceOwner map[string]string

	// groupControl maps a room/zone id to its grouped_light id, when the
	// group advertises one.
	groupControl map[string]string

	// deviceRooms maps a device id to the names of rooms listing it as a
	// member. Used by listings; a device in no room is simply absent.
	deviceRooms map[string][]string
}

// Build constructs the graph indices from a snapshot.
func Build(snap *resource.Snapshot) *Graph {
	g := &Graph{
		devices:      make(map[string]*resource.Device, len(snap.Devices)),
		lights:       make(map[string]*resource.Light, len(snap.Lights)),
		groups:       make(map[string]*resource.Group, len(snap.Rooms)+len(snap.Zones)),
		scenes:       make(map[string]*resource.Scene, len(snap.Scenes)),
		serviceOwner: make(map[string]string),
		groupControl: make(map[string]string),
		deviceRooms:  make(map[string][]string),
	}

	for i := range snap.Devices {
		d := &snap.Devices[i]
		g.devices[d.ID] = d
		for _, svc := range d.Services {
			g.serviceOwner[svc.RID] = d.ID
		}
	}

	for i := range snap.Lights {
		l := &snap.Lights[i]
		g.lights[l.ID] = l
	}

	for i := range snap.Rooms {
		g.indexGroup(&snap.Rooms[i], true)
	}
	for i := range snap.Zones {
		g.indexGroup(&snap.Zones[i], false)
	}

	for i := range snap.Scenes {
		s := &snap.Scenes[i]
		g.scenes[s.ID] = s
	}

	return g
}

// indexGroup registers a room or zone and its control/membership indices.
func (g *Graph) indexGroup(grp *resource.Group, isRoom bool) {
	g.groups[grp.ID] = grp

	if id, ok := grp.GroupedLightRef(); ok {
		g.groupControl[grp.ID] = id
	}

	if !isRoom {
		return
	}
	for _, child := range grp.Children {
		if child.RType == resource.TypeDevice {
			g.deviceRooms[child.RID] = append(g.deviceRooms[child.RID], grp.Metadata.Name)
		}
	}
}

// Device returns a device by id.
func (g *Graph) Device(id string) (*resource.Device, bool) {
	d, ok := g.devices[id]
	return d, ok
}

// Light returns a light by id.
func (g *Graph) Light(id string) (*resource.Light, bool) {
	l, ok := g.lights[id]
	return l, ok
}

// Group returns a room or zone by id.
func (g *Graph) Group(id string) (*resource.Group, bool) {
	grp, ok := g.groups[id]
	return grp, ok
}

// Scene returns a scene by id.
func (g *Graph) Scene(id string) (*resource.Scene, bool) {
	s, ok := g.scenes[id]
	return s, ok
}

// DeviceName resolves a light to its owning device's configured name.
//
// Lights carry no name of their own; the only route to one is
// light, then its owner reference, then device metadata. Returns ErrUnknownResource
// when the light id is not in the snapshot, and ErrOrphanedResource when
// the owner reference points at a device the snapshot does not contain
// (removed or re-paired between fetches). Callers decide the fallback
// display (conventionally "Unknown") rather than treating an orphan as
// fatal.
func (g *Graph) DeviceName(lightID string) (string, error) {
	light, ok := g.lights[lightID]
	if !ok {
		return "", fmt.Errorf("%w: light %s", ErrUnknownResource, lightID)
	}

	device, ok := g.devices[light.Owner.RID]
	if !ok {
		return "", fmt.Errorf("%w: light %s owner %s", ErrOrphanedResource, lightID, light.Owner.RID)
	}
	return device.Metadata.Name, nil
}

// Target is the concrete controllable resolution of a room or zone.
// Exactly one of the two forms is populated.
type Target struct {
	// GroupedLight is the aggregate control endpoint id, when the group
	// has one. Controlling the group MUST go through it: one request, and
	// the bridge handles the fan-out.
	GroupedLight string

	// Lights is the per-member fallback: the deduplicated set of light
	// service ids reachable through the group's members. Only used when
	// no grouped_light exists. May be empty: a group with no lights is a
	// valid, empty target, not an error.
	Lights []string
}

// Grouped reports whether the target is the aggregate endpoint.
func (t Target) Grouped() bool {
	return t.GroupedLight != ""
}

// Empty reports whether there is nothing to control.
func (t Target) Empty() bool {
	return t.GroupedLight == "" && len(t.Lights) == 0
}

// ControlTarget resolves a room or zone id into its controllable form.
//
// When the group advertises a grouped_light service that single id is the
// whole answer, regardless of member count. Otherwise the group's members
// are walked: device members contribute every light service on their
// service list, light-service members (zones can hold bare services)
// contribute themselves. The result is deduplicated and sorted so repeated
// resolutions of the same snapshot are identical.
func (g *Graph) ControlTarget(groupID string) (Target, error) {
	grp, ok := g.groups[groupID]
	if !ok {
		return Target{}, fmt.Errorf("%w: group %s", ErrUnknownResource, groupID)
	}

	if id, ok := g.groupControl[groupID]; ok {
		return Target{GroupedLight: id}, nil
	}

	seen := make(map[string]struct{})
	var lights []string
	add := func(id string) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		lights = append(lights, id)
	}

	for _, child := range grp.Children {
		switch child.RType {
		case resource.TypeLight:
			add(child.RID)
		case resource.TypeDevice:
			device, ok := g.devices[child.RID]
			if !ok {
				// Dangling member reference; skip it and control the rest.
				continue
			}
			for _, svc := range device.Services {
				if svc.RType == resource.TypeLight {
					add(svc.RID)
				}
			}
		}
	}

	sort.Strings(lights)
	return Target{Lights: lights}, nil
}

// Capabilities projects a device's service list onto its service-type set,
// deduplicated and sorted. This is the authoritative answer to "what can
// this device do": the classifier keys off it, and the dispatcher uses it
// to reject updates a device cannot honor.
func (g *Graph) Capabilities(deviceID string) ([]resource.Type, error) {
	device, ok := g.devices[deviceID]
	if !ok {
		return nil, fmt.Errorf("%w: device %s", ErrUnknownResource, deviceID)
	}

	seen := make(map[resource.Type]struct{}, len(device.Services))
	var types []resource.Type
	for _, svc := range device.Services {
		if _, dup := seen[svc.RType]; dup {
			continue
		}
		seen[svc.RType] = struct{}{}
		types = append(types, svc.RType)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types, nil
}

// OwnerDevice resolves any service id to its owning device id.
func (g *Graph) OwnerDevice(serviceID string) (string, bool) {
	id, ok := g.serviceOwner[serviceID]
	return id, ok
}

// RoomNames returns the names of rooms that list the device as a member.
func (g *Graph) RoomNames(deviceID string) []string {
	return g.deviceRooms[deviceID]
}
