package system

import (
	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/core/event"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// DefaultStolenLifespan is the countdown, in turns, given to a stolen item.
const DefaultStolenLifespan = 100

// OwnershipSystem flags items taken from someone else as stolen and
// destroys them when their countdown runs out.
type OwnershipSystem struct {
	lifespan int
	pending  event.Queue[event.ItemPickedUpEvent]
	log      *zap.Logger
}

func NewOwnershipSystem(w *world.World, lifespan int, log *zap.Logger) *OwnershipSystem {
	if lifespan <= 0 {
		lifespan = DefaultStolenLifespan
	}
	s := &OwnershipSystem{lifespan: lifespan, log: log}
	event.Enqueue(w.Bus(), event.ItemPickedUp, &s.pending)
	return s
}

func (s *OwnershipSystem) Name() string { return "ownership" }
func (s *OwnershipSystem) Required() []ecs.ComponentType {
	return []ecs.ComponentType{component.TypeInventory}
}
func (s *OwnershipSystem) Reset() { s.pending.Reset() }

func (s *OwnershipSystem) Update(w *world.World, entities []ecs.EntityID, turns int) {
	store := w.Store()
	for _, ev := range s.pending.Drain() {
		s.flag(store, ev)
	}
	if turns <= 0 {
		return
	}
	for _, id := range entities {
		inv, ok := ecs.Get[component.Inventory](store, id)
		if !ok {
			continue
		}
		kept := inv.Items[:0]
		for _, it := range inv.Items {
			if it.Stolen {
				it.StolenTimer -= turns
				if it.StolenTimer <= 0 {
					s.log.Debug("stolen item crumbled",
						zap.Uint64("holder", uint64(id)),
						zap.String("def", it.DefID))
					continue
				}
			}
			kept = append(kept, it)
		}
		inv.Items = kept
	}
}

func (s *OwnershipSystem) flag(store *ecs.World, ev event.ItemPickedUpEvent) {
	inv, ok := ecs.Get[component.Inventory](store, ev.Entity)
	if !ok {
		s.log.Debug("pickup by entity without inventory", zap.Uint64("entity", uint64(ev.Entity)))
		return
	}
	for i := range inv.Items {
		it := &inv.Items[i]
		if it.UID != ev.UID {
			continue
		}
		if it.Owner == component.OwnerPublic || it.Owner == ev.Entity {
			return
		}
		it.Stolen = true
		if it.StolenTimer <= 0 {
			it.StolenTimer = s.lifespan
		}
		return
	}
	s.log.Debug("pickup of unknown item", zap.String("uid", ev.UID))
}
