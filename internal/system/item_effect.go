package system

import (
	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/core/event"
	"github.com/MTvrimPossible/simulation-game/internal/rules"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// ItemEffectSystem applies the need effects of consumed items. Scripted
// effects return stat deltas; needs are clamped to [0, 100] and a "load"
// delta only ever adds.
type ItemEffectSystem struct {
	items   ItemLookup
	scripts EffectRunner
	pending event.Queue[event.ItemConsumedEvent]
	log     *zap.Logger
}

func NewItemEffectSystem(w *world.World, items ItemLookup, scripts EffectRunner, log *zap.Logger) *ItemEffectSystem {
	s := &ItemEffectSystem{items: items, scripts: scripts, log: log}
	event.Enqueue(w.Bus(), event.ItemConsumed, &s.pending)
	return s
}

func (s *ItemEffectSystem) Name() string                  { return "item_effect" }
func (s *ItemEffectSystem) Required() []ecs.ComponentType { return nil }
func (s *ItemEffectSystem) Reset()                        { s.pending.Reset() }

func (s *ItemEffectSystem) Update(w *world.World, _ []ecs.EntityID, _ int) {
	for _, ev := range s.pending.Drain() {
		def := s.items.Get(ev.DefID)
		if def == nil {
			s.log.Debug("consumed unknown item", zap.String("def", ev.DefID))
			continue
		}
		for _, eff := range def.OnUse {
			switch eff.Kind {
			case rules.EffectSatisfyNeed:
				s.satisfy(w, ev.Entity, eff.Target, eff.Amount)
			case rules.EffectScript:
				s.script(w, ev.Entity, eff.Script)
			}
		}
	}
}

func (s *ItemEffectSystem) satisfy(w *world.World, id ecs.EntityID, need string, amount float64) {
	kind, ok := component.ParseNeed(need)
	if !ok {
		s.log.Debug("unknown need", zap.String("need", need))
		return
	}
	needs, ok := ecs.Get[component.Needs](w.Store(), id)
	if !ok {
		return
	}
	needs.Values[kind] = clamp(needs.Values[kind]+amount, 0, component.NeedMax)
}

func (s *ItemEffectSystem) script(w *world.World, id ecs.EntityID, fn string) {
	if s.scripts == nil {
		s.log.Warn("scripted item effect without script engine", zap.String("script", fn))
		return
	}
	deltas, err := s.scripts.Effect(fn, w.Subject(id))
	if err != nil {
		s.log.Error("item effect script failed", zap.String("script", fn), zap.Error(err))
		return
	}
	for stat, d := range deltas {
		if stat == "load" {
			if l, ok := ecs.Get[component.IrreversibleLoad](w.Store(), id); ok && d > 0 {
				l.Amount += d
			}
			continue
		}
		s.satisfy(w, id, stat, d)
	}
}
