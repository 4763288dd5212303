package world

import (
	"fmt"
	"slices"
)

const (
	MinutesPerHour = 60
	HoursPerDay    = 24
	DaysPerWeek    = 7
)

var weekdayNames = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Clock is the in-game calendar. One turn is one minute.
type Clock struct {
	Minute     int   `json:"minute"`
	Hour       int   `json:"hour"`
	Day        int   `json:"day"`
	DayOfWeek  int   `json:"dayOfWeek"`
	TotalTurns int64 `json:"totalTurns"`
}

// NewClock returns the fixed start: day 1, 08:00, Monday.
func NewClock() Clock {
	return Clock{Hour: 8, Day: 1}
}

// TimeKey formats the hour as a schedule key, e.g. "0800".
func TimeKey(hour int) string {
	return fmt.Sprintf("%02d00", hour)
}

// Valid reports whether every field is inside its calendar range.
func (c Clock) Valid() bool {
	return c.Minute >= 0 && c.Minute < MinutesPerHour &&
		c.Hour >= 0 && c.Hour < HoursPerDay &&
		c.Day >= 1 &&
		c.DayOfWeek >= 0 && c.DayOfWeek < DaysPerWeek &&
		c.TotalTurns >= 0
}

func (c Clock) String() string {
	dow := "???"
	if c.DayOfWeek >= 0 && c.DayOfWeek < DaysPerWeek {
		dow = weekdayNames[c.DayOfWeek]
	}
	return fmt.Sprintf("Day %d (%s) %02d:%02d", c.Day, dow, c.Hour, c.Minute)
}

// Era is the macroscopic mode of the simulation. It lives on the World
// rather than in a global so every system sees the same value and it is
// saved with the snapshot.
type Era string

const (
	EraRitual     Era = "RITUAL"
	EraHeroic     Era = "HEROIC"
	EraDemocratic Era = "DEMOCRATIC"
)

var eras = []Era{EraRitual, EraHeroic, EraDemocratic}

func (e Era) Valid() bool { return slices.Contains(eras, e) }
