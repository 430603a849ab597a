package models

// Info is the descriptive metadata for a known product model.
type Info struct {
	// ProductName is the marketing name for the SKU.
	ProductName string

	// Archetype is the vendor archetype string the product normally
	// reports. Used as a classification signal when a live device record
	// carries no archetype of its own.
	Archetype string
}

// table maps vendor model identifiers to product metadata.
//
// This is a static reference: entries are never written at runtime and the
// set only grows when new SKUs are added here. Unknown models simply miss.
var table = map[string]Info{
	// White and color ambiance bulbs
	"LCT001": {ProductName: "Hue white and color ambiance A19", Archetype: "sultan_bulb"},
	"LCT007": {ProductName: "Hue white and color ambiance A19", Archetype: "sultan_bulb"},
	"LCT010": {ProductName: "Hue white and color ambiance A19", Archetype: "sultan_bulb"},
	"LCT012": {ProductName: "Hue white and color ambiance candle", Archetype: "candle_bulb"},
	"LCA003": {ProductName: "Hue white and color ambiance A19", Archetype: "sultan_bulb"},
	"LCA005": {ProductName: "Hue white and color ambiance A19", Archetype: "sultan_bulb"},
	"LCE002": {ProductName: "Hue white and color ambiance candle", Archetype: "candle_bulb"},

	// White ambiance / white bulbs
	"LTW012": {ProductName: "Hue white ambiance candle", Archetype: "candle_bulb"},
	"LTA001": {ProductName: "Hue white ambiance A19", Archetype: "sultan_bulb"},
	"LWB010": {ProductName: "Hue white A19", Archetype: "classic_bulb"},
	"LWA017": {ProductName: "Hue white A19", Archetype: "classic_bulb"},

	// Spots
	"LCG002": {ProductName: "Hue white and color ambiance GU10", Archetype: "spot_bulb"},
	"LTG002": {ProductName: "Hue white ambiance GU10", Archetype: "spot_bulb"},

	// Strips
	"LST001": {ProductName: "Hue lightstrip", Archetype: "hue_lightstrip"},
	"LST002": {ProductName: "Hue lightstrip plus", Archetype: "hue_lightstrip"},
	"LCL001": {ProductName: "Hue lightstrip plus v4", Archetype: "hue_lightstrip"},

	// Luminaires and portable lights
	"LLC020": {ProductName: "Hue Go", Archetype: "huego"},
	"LCT024": {ProductName: "Hue Play", Archetype: "hue_play"},
	"LLC011": {ProductName: "Hue Bloom", Archetype: "hue_bloom"},
	"LCT026": {ProductName: "Hue Go portable light", Archetype: "huego"},

	// Outdoor
	"LCS001": {ProductName: "Hue Lily outdoor spot", Archetype: "hue_lily_spot"},
	"LWO003": {ProductName: "Hue white filament bulb", Archetype: "vintage_bulb"},

	// Plugs and accessories
	"LOM001": {ProductName: "Hue smart plug", Archetype: "plug"},
	"LOM007": {ProductName: "Hue smart plug", Archetype: "plug"},
	"SML001": {ProductName: "Hue motion sensor", Archetype: ""},
	"SML003": {ProductName: "Hue motion sensor", Archetype: ""},
	"RWL021": {ProductName: "Hue dimmer switch", Archetype: ""},
	"RWL022": {ProductName: "Hue dimmer switch", Archetype: ""},

	// Hub hardware
	"BSB001": {ProductName: "Hue bridge v1", Archetype: "bridge_v2"},
	"BSB002": {ProductName: "Hue bridge", Archetype: "bridge_v2"},
}

// Lookup returns the reference metadata for a model identifier.
func Lookup(modelID string) (Info, bool) {
	info, ok := table[modelID]
	return info, ok
}
