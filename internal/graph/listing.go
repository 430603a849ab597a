package graph

import (
	"sort"
	"strings"

	"github.com/fennwald/huecore/internal/models"
	"github.com/fennwald/huecore/internal/resource"
)

// unknownName is the fallback display name for orphaned entries.
const unknownName = "Unknown"

// Match is one search hit.
type Match struct {
	Type resource.Type `json:"type"`
	ID   string        `json:"id"`
	Name string        `json:"name"`
}

// SearchByName finds resources whose display name contains the query,
// case-insensitively. With no type filter it searches lights, rooms,
// zones, and scenes. Lights are matched by their owning device's name,
// since lights carry no name of their own; an orphaned light matches under
// the fallback name.
func (g *Graph) SearchByName(query string, types ...resource.Type) []Match {
	query = strings.ToLower(query)
	if len(types) == 0 {
		types = []resource.Type{resource.TypeLight, resource.TypeRoom, resource.TypeZone, resource.TypeScene}
	}

	var matches []Match
	for _, typ := range types {
		switch typ {
		case resource.TypeLight:
			for id := range g.lights {
				name, err := g.DeviceName(id)
				if err != nil {
					name = unknownName
				}
				if strings.Contains(strings.ToLower(name), query) {
					matches = append(matches, Match{Type: resource.TypeLight, ID: id, Name: name})
				}
			}
		case resource.TypeRoom, resource.TypeZone:
			for id, grp := range g.groups {
				if grp.Type != typ {
					continue
				}
				if strings.Contains(strings.ToLower(grp.Metadata.Name), query) {
					matches = append(matches, Match{Type: typ, ID: id, Name: grp.Metadata.Name})
				}
			}
		case resource.TypeScene:
			for id, scene := range g.scenes {
				if strings.Contains(strings.ToLower(scene.Metadata.Name), query) {
					matches = append(matches, Match{Type: resource.TypeScene, ID: id, Name: scene.Metadata.Name})
				}
			}
		}
	}

	// Map iteration order is random; pin the output.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Type != matches[j].Type {
			return matches[i].Type < matches[j].Type
		}
		return matches[i].ID < matches[j].ID
	})
	return matches
}

// LightDetail is the joined per-light view: everything a caller needs to
// show one light, pulled from three collections.
type LightDetail struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	On         bool         `json:"on"`
	Brightness *float64     `json:"brightness,omitempty"`
	Mirek      *int         `json:"color_temp_mirek,omitempty"`
	XY         *resource.XY `json:"color_xy,omitempty"`
	Reachable  bool         `json:"reachable"`
	Rooms      []string     `json:"rooms,omitempty"`
	Product    string       `json:"product,omitempty"`
	Orphaned   bool         `json:"orphaned,omitempty"`
}

// LightDetails returns the joined view for every light in the snapshot,
// sorted by name then id.
//
// A light whose owner is missing from the snapshot degrades to the
// fallback name with Orphaned set; one bad entry never aborts the
// listing. Product names come from the device record, falling back to the
// static model table.
func (g *Graph) LightDetails() []LightDetail {
	details := make([]LightDetail, 0, len(g.lights))

	for id, light := range g.lights {
		d := LightDetail{
			ID:        id,
			On:        light.On.On,
			Reachable: light.Reachable(),
		}

		if light.Dimming != nil {
			bri := light.Dimming.Brightness
			d.Brightness = &bri
		}
		if light.ColorTemperature != nil && light.ColorTemperature.Mirek != nil {
			mirek := *light.ColorTemperature.Mirek
			d.Mirek = &mirek
		}
		if light.Color != nil {
			xy := light.Color.XY
			d.XY = &xy
		}

		device, ok := g.devices[light.Owner.RID]
		if !ok {
			d.Name = unknownName
			d.Orphaned = true
		} else {
			d.Name = device.Metadata.Name
			d.Rooms = g.RoomNames(device.ID)
			d.Product = device.ProductData.ProductName
			if d.Product == "" {
				if info, found := models.Lookup(device.ProductData.ModelID); found {
					d.Product = info.ProductName
				}
			}
		}

		details = append(details, d)
	}

	sort.Slice(details, func(i, j int) bool {
		if details[i].Name != details[j].Name {
			return details[i].Name < details[j].Name
		}
		return details[i].ID < details[j].ID
	})
	return details
}
