package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Default working day parameters applied when a crew does not override them.
const (
	DefaultDayStartHours = 8.0
	DefaultMaxDailyHours = 8.0
)

// ParseClock converts a 24h "HH:MM" string into hours since midnight.
func ParseClock(s string) (float64, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return float64(h) + float64(m)/60, nil
}

// FormatClock renders hours since midnight as a 24h "HH:MM" string.
// Values are rounded to the nearest minute.
func FormatClock(hours float64) string {
	total := int(math.Round(hours * 60))
	h := total / 60
	m := total % 60
	if m < 0 {
		m += 60
		h--
	}
	h %= 24
	if h < 0 {
		h += 24
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}
