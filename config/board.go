package config

import (
	"fmt"

	"github.com/fieldline/dayboard/core/model"
)

// BoardConfig holds the working-day parameters shared by the interactive
// board and the reconstruction service.
type BoardConfig struct {
	// DayStart is the default first-job start, 24h clock ("08:00").
	DayStart string `json:"day_start"`
	// MaxDailyHours is the default crew capacity.
	MaxDailyHours float64 `json:"max_daily_hours"`
}

// SetDefaults applies sane defaults.
func (c *BoardConfig) SetDefaults() {
	if c.DayStart == "" {
		c.DayStart = "08:00"
	}
	if c.MaxDailyHours == 0 {
		c.MaxDailyHours = model.DefaultMaxDailyHours
	}
}

// Validate checks the clock value parses.
func (c BoardConfig) Validate() error {
	if _, err := model.ParseClock(c.DayStart); err != nil {
		return fmt.Errorf("board.day_start: %w", err)
	}
	return nil
}

// DayStartHours returns the configured day start in hours since midnight.
// Call Validate first; a bad value falls back to the model default here.
func (c BoardConfig) DayStartHours() float64 {
	h, err := model.ParseClock(c.DayStart)
	if err != nil {
		return model.DefaultDayStartHours
	}
	return h
}
