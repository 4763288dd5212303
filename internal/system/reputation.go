package system

import (
	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/core/event"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

const (
	ReputationMin = -100
	ReputationMax = 100
)

// ReputationRules sets how much lies and truths move reputation. With
// Sign = 1 lying raises it and honesty lowers it; Sign = -1 flips both.
type ReputationRules struct {
	LieGain   int
	TruthLoss int
	Sign      int
}

func DefaultReputationRules() ReputationRules {
	return ReputationRules{LieGain: 5, TruthLoss: 3, Sign: 1}
}

// ReputationSystem applies social actions to reputation.
type ReputationSystem struct {
	rules   ReputationRules
	pending event.Queue[event.SocialActionEvent]
	log     *zap.Logger
}

func NewReputationSystem(w *world.World, r ReputationRules, log *zap.Logger) *ReputationSystem {
	if r.Sign != -1 {
		r.Sign = 1
	}
	s := &ReputationSystem{rules: r, log: log}
	event.Enqueue(w.Bus(), event.SocialAction, &s.pending)
	return s
}

func (s *ReputationSystem) Name() string { return "reputation" }
func (s *ReputationSystem) Required() []ecs.ComponentType {
	return []ecs.ComponentType{component.TypeReputation}
}
func (s *ReputationSystem) Reset() { s.pending.Reset() }

func (s *ReputationSystem) Update(w *world.World, _ []ecs.EntityID, _ int) {
	for _, ev := range s.pending.Drain() {
		rep, ok := ecs.Get[component.Reputation](w.Store(), ev.Entity)
		if !ok {
			s.log.Debug("social action without reputation", zap.Uint64("entity", uint64(ev.Entity)))
			continue
		}
		var delta int
		switch ev.Kind {
		case event.SocialLie:
			delta = s.rules.LieGain
		case event.SocialTruth:
			delta = -s.rules.TruthLoss
		default:
			s.log.Debug("unknown social action", zap.String("kind", string(ev.Kind)))
			continue
		}
		v := rep.Value + s.rules.Sign*delta
		if v < ReputationMin {
			v = ReputationMin
		}
		if v > ReputationMax {
			v = ReputationMax
		}
		rep.Value = v
	}
}
