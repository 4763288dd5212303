package system

import (
	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/core/event"
	"github.com/MTvrimPossible/simulation-game/internal/rules"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// IrreversibleLoadSystem adds each consumed item's add_load to the consumer.
// Load only ever grows.
type IrreversibleLoadSystem struct {
	items   ItemLookup
	pending event.Queue[event.ItemConsumedEvent]
	log     *zap.Logger
}

func NewIrreversibleLoadSystem(w *world.World, items ItemLookup, log *zap.Logger) *IrreversibleLoadSystem {
	s := &IrreversibleLoadSystem{items: items, log: log}
	event.Enqueue(w.Bus(), event.ItemConsumed, &s.pending)
	return s
}

func (s *IrreversibleLoadSystem) Name() string                  { return "irreversible_load" }
func (s *IrreversibleLoadSystem) Required() []ecs.ComponentType { return nil }
func (s *IrreversibleLoadSystem) Reset()                        { s.pending.Reset() }

func (s *IrreversibleLoadSystem) Update(w *world.World, _ []ecs.EntityID, _ int) {
	for _, ev := range s.pending.Drain() {
		def := s.items.Get(ev.DefID)
		if def == nil {
			s.log.Debug("consumed unknown item", zap.String("def", ev.DefID))
			continue
		}
		amount := rules.Sum(def.OnUse, rules.EffectAddLoad)
		if amount <= 0 {
			continue
		}
		load, ok := ecs.Get[component.IrreversibleLoad](w.Store(), ev.Entity)
		if !ok {
			s.log.Debug("consumer has no load", zap.Uint64("entity", uint64(ev.Entity)))
			continue
		}
		load.Amount += amount
	}
}
