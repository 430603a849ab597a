// Package models is the static device-model reference table: a read-only
// lookup from vendor model identifier (e.g. "LCT001") to descriptive
// product metadata.
//
// The classifier consults it when a live device record reports no usable
// archetype, and listings use it as a product-name fallback. The table is
// deliberately partial; an unknown model is a normal miss, not an error.
package models
