package graph

import (
	"errors"
	"reflect"
	"testing"

	"github.com/fennwald/huecore/internal/resource"
)

// testSnapshot builds a small but representative home:
//
//	d1 "Desk Lamp"   -> light l1 (dimmable, ct)     in room r1 "Office"
//	d2 "Shelf Strip" -> light l2 (color)            in room r1 "Office"
//	d3 "Hall Spot"   -> light l3                    in room r2 "Hallway"
//	r1 has a grouped_light g1; r2 has none
//	z1 "Evening" zone holds l1 directly and d3 as a device member
//	orphan light lx points at a device the snapshot does not contain
func testSnapshot() *resource.Snapshot {
	mirek := 366
	return &resource.Snapshot{
		Devices: []resource.Device{
			{
				ID:       "d1",
				Metadata: resource.Metadata{Name: "Desk Lamp"},
				ProductData: resource.ProductData{
					ModelID:          "LCT012",
					ProductArchetype: "candle_bulb",
				},
				Services: []resource.Ref{
					{RID: "l1", RType: resource.TypeLight},
					{RID: "zc1", RType: resource.TypeZigbeeConnectivity},
				},
			},
			{
				ID:       "d2",
				Metadata: resource.Metadata{Name: "Shelf Strip"},
				ProductData: resource.ProductData{
					ModelID:     "LST002",
					ProductName: "Hue lightstrip plus",
				},
				Services: []resource.Ref{
					{RID: "l2", RType: resource.TypeLight},
				},
			},
			{
				ID:       "d3",
				Metadata: resource.Metadata{Name: "Hall Spot"},
				Services: []resource.Ref{
					{RID: "l3", RType: resource.TypeLight},
					{RID: "zc3", RType: resource.TypeZigbeeConnectivity},
				},
			},
		},
		Lights: []resource.Light{
			{
				ID:    "l1",
				Owner: resource.Ref{RID: "d1", RType: resource.TypeDevice},
				On:    resource.On{On: true},
				Dimming: &resource.Dimming{Brightness: 80},
				ColorTemperature: &resource.ColorTemperature{
					Mirek:       &mirek,
					MirekSchema: resource.MirekSchema{MirekMinimum: 153, MirekMaximum: 454},
				},
			},
			{
				ID:    "l2",
				Owner: resource.Ref{RID: "d2", RType: resource.TypeDevice},
				Color: &resource.Color{XY: resource.XY{X: 0.45, Y: 0.41}},
			},
			{
				ID:     "l3",
				Owner:  resource.Ref{RID: "d3", RType: resource.TypeDevice},
				Status: "connectivity_issue",
			},
			{
				ID:    "lx",
				Owner: resource.Ref{RID: "d-gone", RType: resource.TypeDevice},
			},
		},
		Rooms: []resource.Group{
			{
				ID:       "r1",
				Type:     resource.TypeRoom,
				Metadata: resource.Metadata{Name: "Office"},
				Children: []resource.Ref{
					{RID: "d1", RType: resource.TypeDevice},
					{RID: "d2", RType: resource.TypeDevice},
				},
				Services: []resource.Ref{
					{RID: "g1", RType: resource.TypeGroupedLight},
				},
			},
			{
				ID:       "r2",
				Type:     resource.TypeRoom,
				Metadata: resource.Metadata{Name: "Hallway"},
				Children: []resource.Ref{
					{RID: "d3", RType: resource.TypeDevice},
					{RID: "d-gone", RType: resource.TypeDevice},
				},
			},
		},
		Zones: []resource.Group{
			{
				ID:       "z1",
				Type:     resource.TypeZone,
				Metadata: resource.Metadata{Name: "Evening"},
				Children: []resource.Ref{
					{RID: "l1", RType: resource.TypeLight},
					{RID: "d3", RType: resource.TypeDevice},
				},
			},
		},
		Scenes: []resource.Scene{
			{
				ID:       "s1",
				Type:     resource.TypeScene,
				Metadata: resource.Metadata{Name: "Relax"},
				Group:    resource.Ref{RID: "r1", RType: resource.TypeRoom},
			},
		},
	}
}

func TestDeviceName(t *testing.T) {
	g := Build(testSnapshot())

	name, err := g.DeviceName("l1")
	if err != nil {
		t.Fatalf("DeviceName(l1) error = %v", err)
	}
	if name != "Desk Lamp" {
		t.Errorf("DeviceName(l1) = %q, want %q", name, "Desk Lamp")
	}
}

func TestDeviceNameUnknownLight(t *testing.T) {
	g := Build(testSnapshot())

	if _, err := g.DeviceName("nope"); !errors.Is(err, ErrUnknownResource) {
		t.Errorf("DeviceName(nope) error = %v, want ErrUnknownResource", err)
	}
}

func TestDeviceNameOrphanedLight(t *testing.T) {
	g := Build(testSnapshot())

	if _, err := g.DeviceName("lx"); !errors.Is(err, ErrOrphanedResource) {
		t.Errorf("DeviceName(lx) error = %v, want ErrOrphanedResource", err)
	}
}

func TestControlTargetPrefersGroupedLight(t *testing.T) {
	g := Build(testSnapshot())

	target, err := g.ControlTarget("r1")
	if err != nil {
		t.Fatalf("ControlTarget(r1) error = %v", err)
	}
	if !target.Grouped() || target.GroupedLight != "g1" {
		t.Errorf("target = %+v, want grouped_light g1", target)
	}
	if len(target.Lights) != 0 {
		t.Error("grouped target must not also carry member lights")
	}
}

func TestControlTargetMemberFallback(t *testing.T) {
	g := Build(testSnapshot())

	// r2 has no grouped_light: expect its member lights, with the dangling
	// d-gone member skipped rather than failing the resolution.
	target, err := g.ControlTarget("r2")
	if err != nil {
		t.Fatalf("ControlTarget(r2) error = %v", err)
	}
	if target.Grouped() {
		t.Fatal("r2 has no grouped_light, target must be member lights")
	}
	if want := []string{"l3"}; !reflect.DeepEqual(target.Lights, want) {
		t.Errorf("Lights = %v, want %v", target.Lights, want)
	}
}

func TestControlTargetZoneMixedMembers(t *testing.T) {
	g := Build(testSnapshot())

	// z1 holds a bare light service and a device member.
	target, err := g.ControlTarget("z1")
	if err != nil {
		t.Fatalf("ControlTarget(z1) error = %v", err)
	}
	if want := []string{"l1", "l3"}; !reflect.DeepEqual(target.Lights, want) {
		t.Errorf("Lights = %v, want %v", target.Lights, want)
	}
}

func TestControlTargetUnknownGroup(t *testing.T) {
	g := Build(testSnapshot())

	if _, err := g.ControlTarget("nope"); !errors.Is(err, ErrUnknownResource) {
		t.Errorf("ControlTarget(nope) error = %v, want ErrUnknownResource", err)
	}
}

func TestControlTargetEmptyGroup(t *testing.T) {
	snap := testSnapshot()
	snap.Rooms = append(snap.Rooms, resource.Group{
		ID:       "r-empty",
		Type:     resource.TypeRoom,
		Metadata: resource.Metadata{Name: "Attic"},
	})
	g := Build(snap)

	target, err := g.ControlTarget("r-empty")
	if err != nil {
		t.Fatalf("ControlTarget(r-empty) error = %v, an empty group is not an error", err)
	}
	if !target.Empty() {
		t.Errorf("target = %+v, want empty", target)
	}
}

func TestCapabilities(t *testing.T) {
	g := Build(testSnapshot())

	caps, err := g.Capabilities("d1")
	if err != nil {
		t.Fatalf("Capabilities(d1) error = %v", err)
	}
	want := []resource.Type{resource.TypeLight, resource.TypeZigbeeConnectivity}
	if !reflect.DeepEqual(caps, want) {
		t.Errorf("Capabilities(d1) = %v, want %v", caps, want)
	}

	if _, err := g.Capabilities("nope"); !errors.Is(err, ErrUnknownResource) {
		t.Errorf("Capabilities(nope) error = %v, want ErrUnknownResource", err)
	}
}

func TestOwnerDevice(t *testing.T) {
	g := Build(testSnapshot())

	owner, ok := g.OwnerDevice("l2")
	if !ok || owner != "d2" {
		t.Errorf("OwnerDevice(l2) = %q, %v, want d2, true", owner, ok)
	}
	if _, ok := g.OwnerDevice("nope"); ok {
		t.Error("OwnerDevice(nope) should report false")
	}
}

func TestLightDeviceRoundTrip(t *testing.T) {
	g := Build(testSnapshot())

	// light -> owning device -> service list -> same light id.
	owner, ok := g.OwnerDevice("l1")
	if !ok {
		t.Fatal("OwnerDevice(l1) should resolve")
	}
	device, ok := g.Device(owner)
	if !ok {
		t.Fatalf("Device(%s) should resolve", owner)
	}

	found := false
	for _, svc := range device.Services {
		if svc.RType == resource.TypeLight && svc.RID == "l1" {
			found = true
		}
	}
	if !found {
		t.Errorf("device %s services do not lead back to l1", owner)
	}
}

func TestRoomNames(t *testing.T) {
	g := Build(testSnapshot())

	if rooms := g.RoomNames("d1"); !reflect.DeepEqual(rooms, []string{"Office"}) {
		t.Errorf("RoomNames(d1) = %v, want [Office]", rooms)
	}
	if rooms := g.RoomNames("d-unknown"); rooms != nil {
		t.Errorf("RoomNames(d-unknown) = %v, want nil", rooms)
	}
}

func TestSearchByName(t *testing.T) {
	g := Build(testSnapshot())

	tests := []struct {
		name   string
		query  string
		types  []resource.Type
		wantID string
		wantN  int
	}{
		{"light by device name", "desk", nil, "l1", 1},
		{"case insensitive", "OFFICE", []resource.Type{resource.TypeRoom}, "r1", 1},
		{"scene", "relax", nil, "s1", 1},
		{"zone", "evening", []resource.Type{resource.TypeZone}, "z1", 1},
		{"substring", "lax", []resource.Type{resource.TypeScene}, "s1", 1},
		{"no hit", "bathroom", nil, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := g.SearchByName(tt.query, tt.types...)
			if len(matches) != tt.wantN {
				t.Fatalf("SearchByName(%q) = %d matches, want %d", tt.query, len(matches), tt.wantN)
			}
			if tt.wantN > 0 && matches[0].ID != tt.wantID {
				t.Errorf("first match = %s, want %s", matches[0].ID, tt.wantID)
			}
		})
	}
}

func TestSearchByNameFindsOrphanAsUnknown(t *testing.T) {
	g := Build(testSnapshot())

	matches := g.SearchByName("unknown", resource.TypeLight)
	if len(matches) != 1 || matches[0].ID != "lx" {
		t.Fatalf("matches = %+v, want the orphan light under the fallback name", matches)
	}
}

func TestLightDetails(t *testing.T) {
	g := Build(testSnapshot())

	details := g.LightDetails()
	if len(details) != 4 {
		t.Fatalf("len(details) = %d, want 4 (orphan included)", len(details))
	}

	byID := make(map[string]LightDetail, len(details))
	for _, d := range details {
		byID[d.ID] = d
	}

	l1 := byID["l1"]
	if l1.Name != "Desk Lamp" || !l1.On || !l1.Reachable {
		t.Errorf("l1 = %+v, want on, reachable, named Desk Lamp", l1)
	}
	if l1.Brightness == nil || *l1.Brightness != 80 {
		t.Errorf("l1.Brightness = %v, want 80", l1.Brightness)
	}
	if l1.Mirek == nil || *l1.Mirek != 366 {
		t.Errorf("l1.Mirek = %v, want 366", l1.Mirek)
	}
	if !reflect.DeepEqual(l1.Rooms, []string{"Office"}) {
		t.Errorf("l1.Rooms = %v, want [Office]", l1.Rooms)
	}
	// d1 has no product_name; the model table supplies it.
	if l1.Product == "" {
		t.Error("l1.Product should fall back to the model table")
	}

	if l2 := byID["l2"]; l2.XY == nil || l2.XY.X != 0.45 {
		t.Errorf("l2.XY = %v, want x 0.45", l2.XY)
	}
	if l3 := byID["l3"]; l3.Reachable {
		t.Error("l3 should be unreachable")
	}

	lx := byID["lx"]
	if !lx.Orphaned || lx.Name != "Unknown" {
		t.Errorf("lx = %+v, want orphaned with fallback name", lx)
	}
}

func TestLightDetailsSorted(t *testing.T) {
	g := Build(testSnapshot())

	details := g.LightDetails()
	for i := 1; i < len(details); i++ {
		if details[i-1].Name > details[i].Name {
			t.Fatalf("details not sorted by name: %q before %q", details[i-1].Name, details[i].Name)
		}
	}
}
