package resource

// Type identifies a CLIP v2 resource kind.
type Type string

// Resource type constants.
//
// These match the `type` discriminator the bridge returns in every resource
// record and the path segment used to address the collection
// (GET /resource/{type}).
const (
	TypeDevice             Type = "device"
	TypeLight              Type = "light"
	TypeRoom               Type = "room"
	TypeZone               Type = "zone"
	TypeScene              Type = "scene"
	TypeGroupedLight       Type = "grouped_light"
	TypeBridge             Type = "bridge"
	TypeMotion             Type = "motion"
	TypeTemperature        Type = "temperature"
	TypeLightLevel         Type = "light_level"
	TypeButton             Type = "button"
	TypeRelativeRotary     Type = "relative_rotary"
	TypeContact            Type = "contact"
	TypeDevicePower        Type = "device_power"
	TypeZigbeeConnectivity Type = "zigbee_connectivity"
	TypeEntertainment      Type = "entertainment"
)

// Ref is an indirect reference to another resource.
// All relationships in the resource graph are expressed this way; the bridge
// never embeds one resource inside another.
type Ref struct {
	RID   string `json:"rid"`
	RType Type   `json:"rtype"`
}

// Metadata holds the user-visible name and archetype of a resource.
type Metadata struct {
	Name      string `json:"name"`
	Archetype string `json:"archetype,omitempty"`
}

// ProductData describes the physical product behind a device.
// ProductArchetype is a free-form vendor string ("sultan_bulb",
// "hue_lightstrip", ...) and is the primary classification signal.
type ProductData struct {
	ModelID          string `json:"model_id"`
	ManufacturerName string `json:"manufacturer_name,omitempty"`
	ProductName      string `json:"product_name"`
	ProductArchetype string `json:"product_archetype"`
	SoftwareVersion  string `json:"software_version,omitempty"`
	Certified        bool   `json:"certified,omitempty"`
}

// Device is a physical unit. It has no controllable state of its own; the
// Services list is the authoritative record of which capability resources
// exist for it.
type Device struct {
	ID          string      `json:"id"`
	Type        Type        `json:"type"`
	Metadata    Metadata    `json:"metadata"`
	ProductData ProductData `json:"product_data"`
	Services    []Ref       `json:"services"`
}

// On is the on/off portion of a light state.
type On struct {
	On bool `json:"on"`
}

// Dimming holds brightness as a percentage. MinDimLevel is the lowest
// brightness the hardware can render; values below it are rounded up by the
// bridge, not by this client.
type Dimming struct {
	Brightness  float64 `json:"brightness"`
	MinDimLevel float64 `json:"min_dim_level,omitempty"`
}

// MirekSchema bounds the valid color temperature range for a light.
type MirekSchema struct {
	MirekMinimum int `json:"mirek_minimum"`
	MirekMaximum int `json:"mirek_maximum"`
}

// ColorTemperature holds the current mirek value and its valid range.
// Mirek is a pointer because the bridge omits it when the light is in
// color mode.
type ColorTemperature struct {
	Mirek       *int        `json:"mirek,omitempty"`
	MirekSchema MirekSchema `json:"mirek_schema"`
}

// XY is a CIE 1931 color point.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Gamut is the triangle of reproducible colors for a light.
type Gamut struct {
	Red   XY `json:"red"`
	Green XY `json:"green"`
	Blue  XY `json:"blue"`
}

// Color holds the current color point and the device gamut.
type Color struct {
	XY        XY     `json:"xy"`
	Gamut     *Gamut `json:"gamut,omitempty"`
	GamutType string `json:"gamut_type,omitempty"`
}

// Dynamics holds transition behaviour for state changes.
type Dynamics struct {
	Status   string  `json:"status,omitempty"`
	Speed    float64 `json:"speed,omitempty"`
	Duration int     `json:"duration,omitempty"`
}

// Light is the controllable illumination service of a device.
// Owner points back at the owning device; the light itself carries no
// human-readable name.
type Light struct {
	ID               string            `json:"id"`
	Type             Type              `json:"type"`
	Owner            Ref               `json:"owner"`
	On               On                `json:"on"`
	Dimming          *Dimming          `json:"dimming,omitempty"`
	ColorTemperature *ColorTemperature `json:"color_temperature,omitempty"`
	Color            *Color            `json:"color,omitempty"`
	Dynamics         *Dynamics         `json:"dynamics,omitempty"`
	Status           string            `json:"status,omitempty"`
}

// Reachable reports whether the bridge can currently talk to the light.
func (l *Light) Reachable() bool {
	return l.Status != "connectivity_issue"
}

// Group is a room or zone. Children are the member references (devices for
// a room, arbitrary services for a zone); Services may include the
// grouped_light control point for the whole group.
type Group struct {
	ID       string   `json:"id"`
	Type     Type     `json:"type"`
	Metadata Metadata `json:"metadata"`
	Children []Ref    `json:"children"`
	Services []Ref    `json:"services"`
}

// GroupedLightRef returns the grouped_light service id for the group,
// or false when the group has no aggregate control point.
func (g *Group) GroupedLightRef() (string, bool) {
	for _, svc := range g.Services {
		if svc.RType == TypeGroupedLight {
			return svc.RID, true
		}
	}
	return "", false
}

// GroupedLight is the synthetic "all lights in this group" control endpoint.
type GroupedLight struct {
	ID      string   `json:"id"`
	Type    Type     `json:"type"`
	Owner   Ref      `json:"owner"`
	On      On       `json:"on"`
	Dimming *Dimming `json:"dimming,omitempty"`
}

// SceneStatus reports whether a scene is currently applied.
type SceneStatus struct {
	Active string `json:"active"`
}

// Scene is a named, pre-computed state snapshot scoped to a room or zone.
// Activation happens on the scene resource itself; the bridge fans the
// stored states out to the member lights.
type Scene struct {
	ID       string       `json:"id"`
	Type     Type         `json:"type"`
	Metadata Metadata     `json:"metadata"`
	Group    Ref          `json:"group"`
	Status   *SceneStatus `json:"status,omitempty"`
	Speed    float64      `json:"speed,omitempty"`
}

// Bridge describes the hub hardware itself.
type Bridge struct {
	ID       string `json:"id"`
	Type     Type   `json:"type"`
	BridgeID string `json:"bridge_id"`
	TimeZone struct {
		TimeZone string `json:"time_zone"`
	} `json:"time_zone"`
}
