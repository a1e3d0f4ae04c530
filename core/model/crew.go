package model

import (
	"fmt"
	"sort"
)

// Crew represents a field team that owns one job queue per day.
type Crew struct {
	ID            string
	Name          string
	Zone          string
	Members       []string
	MaxDailyHours float64 // capacity of the working day, hours
	DayStartHours float64 // first job start, hours since midnight
}

// Registry is the read-only crew roster the board plans against.
type Registry struct {
	crews map[string]Crew
	order []string
}

// NewRegistry builds a registry from the configured roster. Crews missing
// capacity or day start get the defaults. Duplicate IDs are rejected.
func NewRegistry(crews []Crew) (*Registry, error) {
	r := &Registry{crews: make(map[string]Crew, len(crews))}
	for _, c := range crews {
		if c.ID == "" {
			return nil, fmt.Errorf("crew %q has no id", c.Name)
		}
		if _, ok := r.crews[c.ID]; ok {
			return nil, fmt.Errorf("duplicate crew id %s", c.ID)
		}
		if c.MaxDailyHours == 0 {
			c.MaxDailyHours = DefaultMaxDailyHours
		}
		if c.DayStartHours == 0 {
			c.DayStartHours = DefaultDayStartHours
		}
		r.crews[c.ID] = c
		r.order = append(r.order, c.ID)
	}
	return r, nil
}

// Get returns the crew for the given id.
func (r *Registry) Get(id string) (Crew, bool) {
	c, ok := r.crews[id]
	return c, ok
}

// All returns the crews in roster order.
func (r *Registry) All() []Crew {
	out := make([]Crew, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.crews[id])
	}
	return out
}

// IDs returns the crew ids in roster order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Zones returns the distinct zones covered by the roster, sorted.
func (r *Registry) Zones() []string {
	seen := make(map[string]struct{})
	var zones []string
	for _, id := range r.order {
		z := r.crews[id].Zone
		if z == "" {
			continue
		}
		if _, ok := seen[z]; ok {
			continue
		}
		seen[z] = struct{}{}
		zones = append(zones, z)
	}
	sort.Strings(zones)
	return zones
}
