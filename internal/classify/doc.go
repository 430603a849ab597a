// Package classify derives a normalized device category and capability set
// from the overlapping, sometimes-missing signals a bridge snapshot
// provides: the vendor product archetype, the exact model identifier, and
// the device's service-type set.
//
// Classification is a pure function over an Input record. The archetype
// keyword table is explicit, priority-ordered data (bulb, strip, ceiling,
// lamp/shade, outdoor, accent, plug, bridge); the first match wins
// deterministically, which matters because vendor archetype strings are
// free-form and several keywords can co-occur. Service-type fallbacks only
// apply when no archetype signal matched.
package classify
