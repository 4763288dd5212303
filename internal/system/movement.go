package system

import (
	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/world"
)

// MovementSystem walks entities toward their Destination: at most one tile
// per axis per turn, both axes at once. A blocked step is skipped, not
// rerouted. The Destination is removed on arrival.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem { return &MovementSystem{} }

func (s *MovementSystem) Name() string { return "movement" }
func (s *MovementSystem) Required() []ecs.ComponentType {
	return []ecs.ComponentType{component.TypePosition, component.TypeDestination}
}

func (s *MovementSystem) Update(w *world.World, entities []ecs.EntityID, turns int) {
	if turns <= 0 {
		return
	}
	store := w.Store()
	for _, id := range entities {
		pos, ok := ecs.Get[component.Position](store, id)
		if !ok {
			continue
		}
		dest, ok := ecs.Get[component.Destination](store, id)
		if !ok {
			continue
		}
		if pos.X == dest.X && pos.Y == dest.Y {
			ecs.Remove[component.Destination](store, id)
			continue
		}

		nx, ny := pos.X+step(pos.X, dest.X), pos.Y+step(pos.Y, dest.Y)
		if !passable(w, nx, ny) {
			continue
		}
		pos.X, pos.Y = nx, ny
		if pos.X == dest.X && pos.Y == dest.Y {
			ecs.Remove[component.Destination](store, id)
		}
	}
}

func step(from, to int) int {
	switch {
	case from < to:
		return 1
	case from > to:
		return -1
	}
	return 0
}

// passable treats a world without a map as open ground.
func passable(w *world.World, x, y int) bool {
	if w.Map == nil {
		return true
	}
	return w.Map.Passable(x, y)
}
