package model

import "testing"

func TestRegistryDefaults(t *testing.T) {
	reg, err := NewRegistry([]Crew{{ID: "a", Name: "Alpha"}})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	c, ok := reg.Get("a")
	if !ok {
		t.Fatalf("crew missing")
	}
	if c.MaxDailyHours != DefaultMaxDailyHours || c.DayStartHours != DefaultDayStartHours {
		t.Fatalf("defaults not applied: %+v", c)
	}
}

func TestRegistryRejectsBadRoster(t *testing.T) {
	if _, err := NewRegistry([]Crew{{Name: "anon"}}); err == nil {
		t.Fatalf("expected error for missing id")
	}
	if _, err := NewRegistry([]Crew{{ID: "a"}, {ID: "a"}}); err == nil {
		t.Fatalf("expected error for duplicate id")
	}
}

func TestRegistryOrderAndZones(t *testing.T) {
	reg, err := NewRegistry([]Crew{
		{ID: "c", Zone: "Zone 2"},
		{ID: "a", Zone: "Zone 1"},
		{ID: "b", Zone: "Zone 2"},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	ids := reg.IDs()
	if ids[0] != "c" || ids[1] != "a" || ids[2] != "b" {
		t.Fatalf("roster order not kept: %v", ids)
	}
	zones := reg.Zones()
	if len(zones) != 2 || zones[0] != "Zone 1" || zones[1] != "Zone 2" {
		t.Fatalf("zones = %v", zones)
	}
}
