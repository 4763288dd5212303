package system

import (
	"testing"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func walker(w *world.World, x, y, dx, dy int) ecs.EntityID {
	id := w.CreateEntity()
	ecs.Add(w.Store(), id, component.Position{X: x, Y: y})
	ecs.Add(w.Store(), id, component.Destination{X: dx, Y: dy})
	return id
}

func TestMovementArrives(t *testing.T) {
	w := newWorld(t)
	w.RegisterSystem(NewMovementSystem())
	id := walker(w, 0, 0, 2, 1)

	w.UpdateSystems(1)
	pos, _ := ecs.Get[component.Position](w.Store(), id)
	assert.Equal(t, component.Position{X: 1, Y: 1}, *pos)
	assert.True(t, w.Store().Has(id, component.TypeDestination))

	w.UpdateSystems(1)
	assert.Equal(t, component.Position{X: 2, Y: 1}, *pos)
	assert.False(t, w.Store().Has(id, component.TypeDestination))
}

func TestMovementBlockedByWall(t *testing.T) {
	w := newWorld(t)
	tm, err := world.NewTileMap(world.MapRef{ID: "t"}, []string{".#.", "...", "..."})
	require.NoError(t, err)
	w.Map = tm
	w.RegisterSystem(NewMovementSystem())
	id := walker(w, 0, 0, 2, 0)

	w.UpdateSystems(1)
	pos, _ := ecs.Get[component.Position](w.Store(), id)
	assert.Equal(t, component.Position{X: 0, Y: 0}, *pos)
	assert.True(t, w.Store().Has(id, component.TypeDestination))
}

func TestScheduleStartsTaskOnTheHour(t *testing.T) {
	w := newWorld(t)
	w.RegisterSystem(NewClockSystem())
	w.RegisterSystem(NewScheduleSystem(w, zap.NewNop()))
	w.RegisterSystem(NewMovementSystem())

	npc := w.CreateEntity()
	ecs.Add(w.Store(), npc, component.Position{X: 0, Y: 0})
	ecs.Add(w.Store(), npc, component.Schedule{Tasks: map[string]component.Task{
		"0900": {Action: component.TaskMoveTo, X: 5, Y: 5},
	}})

	w.UpdateSystems(59)
	assert.False(t, w.Store().Has(npc, component.TypeDestination))

	w.UpdateSystems(1)
	dest, ok := ecs.Get[component.Destination](w.Store(), npc)
	require.True(t, ok)
	assert.Equal(t, component.Destination{X: 5, Y: 5}, *dest)
	sched, _ := ecs.Get[component.Schedule](w.Store(), npc)
	assert.Equal(t, component.TaskMoveTo, sched.CurrentAction)

	for i := 0; i < 5; i++ {
		w.UpdateSystems(1)
	}
	pos, _ := ecs.Get[component.Position](w.Store(), npc)
	assert.Equal(t, component.Position{X: 5, Y: 5}, *pos)
}
