package classify

import (
	"strings"

	"github.com/fennwald/huecore/internal/models"
	"github.com/fennwald/huecore/internal/resource"
)

// Category is the normalized device category derived from classification.
type Category string

// Category constants.
const (
	CategoryLightBulb    Category = "light_bulb"
	CategoryLightStrip   Category = "light_strip"
	CategoryCeilingLight Category = "ceiling_light"
	CategoryLamp         Category = "lamp"
	CategoryOutdoorLight Category = "outdoor_light"
	CategoryAccentLight  Category = "accent_light"
	CategorySmartPlug    Category = "smart_plug"
	CategoryMotionSensor Category = "motion_sensor"
	CategoryButtonSwitch Category = "button_switch"
	CategoryBridge       Category = "bridge"
	CategoryLightDevice  Category = "light_device"
	CategoryUnknown      Category = "unknown"
)

// Input carries the overlapping signals classification is derived from.
// Archetype strings are free-form vendor strings and any of the fields may
// be empty.
type Input struct {
	// ProductArchetype is the vendor-reported product archetype
	// (product_data.product_archetype). Primary signal.
	ProductArchetype string

	// UserArchetype is the user-assigned archetype (metadata.archetype).
	// Display/room context only; it never determines the category, since
	// users reassign it freely when moving devices between rooms.
	UserArchetype string

	// ModelID is the vendor model identifier, matched exactly against the
	// static reference table when the archetype gives no answer.
	ModelID string

	// Services is the device's service-type set.
	Services []resource.Type
}

// archetypeRule is one entry of the priority-ordered keyword table.
type archetypeRule struct {
	category Category
	keywords []string
}

// archetypeRules is evaluated top to bottom, first keyword hit wins.
//
// The order is load-bearing: archetype strings are free-form and multiple
// keywords can co-occur ("outdoor_bulb" matches both bulb and outdoor), so
// the table fixes which signal dominates. Bulb-ness outranks placement.
var archetypeRules = []archetypeRule{
	{CategoryLightBulb, []string{"bulb", "spot", "candle", "luster", "globe"}},
	{CategoryLightStrip, []string{"strip"}},
	{CategoryCeilingLight, []string{"ceiling", "pendant", "recessed"}},
	{CategoryLamp, []string{"lamp", "shade"}},
	{CategoryOutdoorLight, []string{"outdoor", "lantern", "bollard", "pedestal", "lily"}},
	{CategoryAccentLight, []string{"accent", "play", "bloom", "iris", "huego", "signe", "lightguide", "wall"}},
	{CategorySmartPlug, []string{"plug"}},
	{CategoryBridge, []string{"bridge"}},
}

// Classify derives the normalized category for a device.
//
// Signals are consulted in a fixed order:
//  1. product archetype, matched against the keyword table
//  2. the reference-table archetype for the exact model id
//  3. service-type presence (motion, button, light)
//
// If nothing matches, the category is Unknown. The user-assigned archetype
// is deliberately ignored here.
func Classify(in Input) Category {
	if cat, ok := matchArchetype(in.ProductArchetype); ok {
		return cat
	}

	// Some SKUs (early sensors, bare-metadata devices) report no usable
	// archetype but are in the reference table.
	if info, ok := models.Lookup(in.ModelID); ok {
		if cat, ok := matchArchetype(info.Archetype); ok {
			return cat
		}
	}

	return classifyByServices(in.Services)
}

// matchArchetype runs the keyword table over an archetype string.
func matchArchetype(archetype string) (Category, bool) {
	archetype = strings.ToLower(strings.TrimSpace(archetype))
	if archetype == "" {
		return CategoryUnknown, false
	}

	for _, rule := range archetypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(archetype, kw) {
				return rule.category, true
			}
		}
	}
	return CategoryUnknown, false
}

// classifyByServices falls back to the service-type set when archetype
// signals give no answer.
func classifyByServices(services []resource.Type) Category {
	set := make(map[resource.Type]struct{}, len(services))
	for _, s := range services {
		set[s] = struct{}{}
	}

	switch {
	case has(set, resource.TypeBridge):
		return CategoryBridge
	case has(set, resource.TypeMotion):
		return CategoryMotionSensor
	case has(set, resource.TypeButton):
		return CategoryButtonSwitch
	case has(set, resource.TypeLight):
		return CategoryLightDevice
	default:
		return CategoryUnknown
	}
}

func has(set map[resource.Type]struct{}, t resource.Type) bool {
	_, ok := set[t]
	return ok
}

// Capability is a normalized statement of what a device can do, derived
// from its service-type set.
type Capability string

// Capability constants.
const (
	CapLightControl  Capability = "light_control"
	CapGroupControl  Capability = "group_control"
	CapMotionSense   Capability = "motion_sense"
	CapTemperature   Capability = "temperature_read"
	CapLightLevel    Capability = "light_level_read"
	CapButtonInput   Capability = "button_input"
	CapRotaryInput   Capability = "rotary_input"
	CapContactSense  Capability = "contact_sense"
	CapBatteryStatus Capability = "battery_status"
	CapConnectivity  Capability = "connectivity_status"
	CapEntertainment Capability = "entertainment"
)

// serviceCapabilities maps service types to capabilities. Service types
// with no control/read meaning (the device record itself, software update
// services and the like) are simply absent.
var serviceCapabilities = map[resource.Type]Capability{
	resource.TypeLight:              CapLightControl,
	resource.TypeGroupedLight:       CapGroupControl,
	resource.TypeMotion:             CapMotionSense,
	resource.TypeTemperature:        CapTemperature,
	resource.TypeLightLevel:         CapLightLevel,
	resource.TypeButton:             CapButtonInput,
	resource.TypeRelativeRotary:     CapRotaryInput,
	resource.TypeContact:            CapContactSense,
	resource.TypeDevicePower:        CapBatteryStatus,
	resource.TypeZigbeeConnectivity: CapConnectivity,
	resource.TypeEntertainment:      CapEntertainment,
}

// Capabilities projects a service-type set onto the normalized capability
// set. Duplicate service entries collapse; order follows the input.
func Capabilities(services []resource.Type) []Capability {
	seen := make(map[Capability]struct{}, len(services))
	var caps []Capability
	for _, s := range services {
		c, ok := serviceCapabilities[s]
		if !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		caps = append(caps, c)
	}
	return caps
}
