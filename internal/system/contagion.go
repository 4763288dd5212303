package system

import (
	"sort"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// ContagionSystem spreads conditions between carriers standing on the same
// or an adjacent tile. Every pair is checked every turn, in both directions.
type ContagionSystem struct {
	rng world.Roller
	log *zap.Logger
}

func NewContagionSystem(rng world.Roller, log *zap.Logger) *ContagionSystem {
	return &ContagionSystem{rng: rng, log: log}
}

func (s *ContagionSystem) Name() string { return "contagion" }
func (s *ContagionSystem) Required() []ecs.ComponentType {
	return []ecs.ComponentType{component.TypeContagion, component.TypePosition}
}

func (s *ContagionSystem) Update(w *world.World, entities []ecs.EntityID, turns int) {
	if turns <= 0 {
		return
	}
	store := w.Store()
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			a, b := entities[i], entities[j]
			pa, _ := ecs.Get[component.Position](store, a)
			pb, _ := ecs.Get[component.Position](store, b)
			if abs(pa.X-pb.X)+abs(pa.Y-pb.Y) > 1 {
				continue
			}
			s.transmit(store, a, b)
			s.transmit(store, b, a)
		}
	}
}

func (s *ContagionSystem) transmit(store *ecs.World, from, to ecs.EntityID) {
	src, _ := ecs.Get[component.Contagion](store, from)
	dst, _ := ecs.Get[component.Contagion](store, to)

	// Sorted so the RNG stream is consumed in a stable order.
	names := make([]string, 0, len(src.Conditions))
	for name := range src.Conditions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, has := dst.Conditions[name]; has {
			continue
		}
		cond := src.Conditions[name]
		if s.rng.Float64() >= cond.Transmissibility {
			continue
		}
		if dst.Conditions == nil {
			dst.Conditions = make(map[string]component.Condition)
		}
		dst.Conditions[name] = cond
		s.log.Debug("condition transmitted",
			zap.String("condition", name),
			zap.Uint64("from", uint64(from)),
			zap.Uint64("to", uint64(to)))
	}
}
