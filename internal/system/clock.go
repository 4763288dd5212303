package system

import (
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/core/event"
	"github.com/MTvrimPossible/simulation-game/internal/world"
)

// ClockSystem advances world.Clock by one minute per turn. Rollover is by
// repeated subtraction so a large jump still announces every hour and day
// boundary it crosses, each exactly once.
type ClockSystem struct{}

func NewClockSystem() *ClockSystem { return &ClockSystem{} }

func (s *ClockSystem) Name() string                  { return "clock" }
func (s *ClockSystem) Required() []ecs.ComponentType { return nil }

func (s *ClockSystem) Update(w *world.World, _ []ecs.EntityID, turns int) {
	if turns <= 0 {
		return
	}
	c := &w.Clock
	c.TotalTurns += int64(turns)
	c.Minute += turns

	for c.Minute >= world.MinutesPerHour {
		c.Minute -= world.MinutesPerHour
		c.Hour++
		newDay := false
		if c.Hour >= world.HoursPerDay {
			c.Hour -= world.HoursPerDay
			c.Day++
			c.DayOfWeek = (c.DayOfWeek + 1) % world.DaysPerWeek
			newDay = true
		}
		// Hour first: schedule lookups must see 00:00 before day handlers run.
		w.Publish(event.HourChanged, event.HourChangedEvent{Hour: c.Hour, Day: c.Day})
		if newDay {
			w.Publish(event.DayChanged, event.DayChangedEvent{Day: c.Day, DayOfWeek: c.DayOfWeek})
			w.Publish(event.DayOfWeekChanged, event.DayOfWeekChangedEvent{DayOfWeek: c.DayOfWeek})
		}
	}
}
