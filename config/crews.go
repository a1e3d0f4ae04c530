package config

import (
	"fmt"

	"github.com/fieldline/dayboard/core/model"
)

// CrewConfig is one roster entry.
type CrewConfig struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Zone          string   `json:"zone"`
	Members       []string `json:"members"`
	MaxDailyHours float64  `json:"max_daily_hours"`
	// DayStart overrides the board default, 24h clock.
	DayStart string `json:"day_start"`
}

// ValidateCrews checks roster entries for usable ids and clock values.
func ValidateCrews(crews []CrewConfig) error {
	for _, c := range crews {
		if c.ID == "" {
			return fmt.Errorf("crew %q has no id", c.Name)
		}
		if c.DayStart != "" {
			if _, err := model.ParseClock(c.DayStart); err != nil {
				return fmt.Errorf("crew %s: %w", c.ID, err)
			}
		}
	}
	return nil
}

// BuildRegistry converts the roster into the model registry, filling board
// defaults for missing capacity and day start.
func (c *Config) BuildRegistry() (*model.Registry, error) {
	crews := make([]model.Crew, 0, len(c.Crews))
	for _, cc := range c.Crews {
		crew := model.Crew{
			ID:            cc.ID,
			Name:          cc.Name,
			Zone:          cc.Zone,
			Members:       cc.Members,
			MaxDailyHours: cc.MaxDailyHours,
			DayStartHours: c.Board.DayStartHours(),
		}
		if crew.MaxDailyHours == 0 {
			crew.MaxDailyHours = c.Board.MaxDailyHours
		}
		if cc.DayStart != "" {
			h, err := model.ParseClock(cc.DayStart)
			if err != nil {
				return nil, fmt.Errorf("crew %s: %w", cc.ID, err)
			}
			crew.DayStartHours = h
		}
		crews = append(crews, crew)
	}
	return model.NewRegistry(crews)
}

// JobTypeConfig is one catalog entry.
type JobTypeConfig struct {
	Hours     float64  `json:"hours"`
	Urgent    bool     `json:"urgent"`
	Checklist []string `json:"checklist"`
}

// BuildCatalog converts the configured job types into the model catalog,
// falling back to the built-in catalog when none are configured.
func (c *Config) BuildCatalog() model.Catalog {
	if len(c.JobTypes) == 0 {
		return model.DefaultCatalog()
	}
	cat := make(model.Catalog, len(c.JobTypes))
	for name, jt := range c.JobTypes {
		cat[name] = model.JobTypeSpec{Hours: jt.Hours, Urgent: jt.Urgent, Checklist: jt.Checklist}
	}
	return cat
}
