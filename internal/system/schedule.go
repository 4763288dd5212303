package system

import (
	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/core/event"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// ScheduleSystem starts timed tasks. Every HourChanged queues a time key;
// the next update applies each queued key in order.
type ScheduleSystem struct {
	pending event.Queue[string]
	log     *zap.Logger
}

func NewScheduleSystem(w *world.World, log *zap.Logger) *ScheduleSystem {
	s := &ScheduleSystem{log: log}
	event.On(w.Bus(), event.HourChanged, func(ev event.HourChangedEvent) {
		s.pending.Push(world.TimeKey(ev.Hour))
	})
	return s
}

func (s *ScheduleSystem) Name() string { return "schedule" }
func (s *ScheduleSystem) Required() []ecs.ComponentType {
	return []ecs.ComponentType{component.TypeSchedule, component.TypePosition}
}
func (s *ScheduleSystem) Reset() { s.pending.Reset() }

func (s *ScheduleSystem) Update(w *world.World, entities []ecs.EntityID, _ int) {
	keys := s.pending.Drain()
	if len(keys) == 0 {
		return
	}
	store := w.Store()
	for _, key := range keys {
		for _, id := range entities {
			sched, ok := ecs.Get[component.Schedule](store, id)
			if !ok {
				continue
			}
			task, ok := sched.Tasks[key]
			if !ok {
				continue
			}
			sched.CurrentAction = task.Action
			if task.Action == component.TaskMoveTo {
				ecs.Add(store, id, component.Destination{X: task.X, Y: task.Y})
			}
			s.log.Debug("task started",
				zap.Uint64("entity", uint64(id)),
				zap.String("time", key),
				zap.String("action", task.Action))
		}
	}
}
