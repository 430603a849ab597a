package models

import "testing"

func TestLookupKnownModel(t *testing.T) {
	info, ok := Lookup("LCT012")
	if !ok {
		t.Fatal("Lookup(LCT012) should hit")
	}
	if info.Archetype != "candle_bulb" {
		t.Errorf("Archetype = %q, want %q", info.Archetype, "candle_bulb")
	}
	if info.ProductName == "" {
		t.Error("ProductName should not be empty for a table entry")
	}
}

func TestLookupUnknownModel(t *testing.T) {
	if _, ok := Lookup("XYZ999"); ok {
		t.Error("Lookup(XYZ999) should miss")
	}
}

func TestLookupEmptyArchetypeEntries(t *testing.T) {
	// Sensors and switches are listed for their product names even though
	// they carry no archetype signal.
	info, ok := Lookup("SML001")
	if !ok {
		t.Fatal("Lookup(SML001) should hit")
	}
	if info.Archetype != "" {
		t.Errorf("Archetype = %q, want empty for a sensor", info.Archetype)
	}
	if info.ProductName == "" {
		t.Error("ProductName should still be present")
	}
}
