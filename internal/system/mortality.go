package system

import (
	"context"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/legacy"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// DeathHandler takes over once the player dies. *legacy.Manager implements it.
type DeathHandler interface {
	HandleDeath(ctx context.Context, w *world.World, player ecs.EntityID, cause string) legacy.Outcome
}

// MortalitySystem watches the player's hunger and thirst. The terminal
// sequence runs at most once until Reset, which the host calls after a
// respawn and the world calls after a load.
type MortalitySystem struct {
	handler DeathHandler
	fired   bool
	log     *zap.Logger
}

func NewMortalitySystem(handler DeathHandler, log *zap.Logger) *MortalitySystem {
	return &MortalitySystem{handler: handler, log: log}
}

func (s *MortalitySystem) Name() string                  { return "mortality" }
func (s *MortalitySystem) Required() []ecs.ComponentType { return nil }

// Fired reports whether the terminal sequence has run since the last Reset.
func (s *MortalitySystem) Fired() bool { return s.fired }

func (s *MortalitySystem) Reset() { s.fired = false }

func (s *MortalitySystem) Update(w *world.World, _ []ecs.EntityID, _ int) {
	if s.fired || w.Player.IsZero() {
		return
	}
	needs, ok := ecs.Get[component.Needs](w.Store(), w.Player)
	if !ok {
		return
	}
	var cause string
	switch {
	case needs.Values[component.NeedHunger] <= 0:
		cause = "starvation"
	case needs.Values[component.NeedThirst] <= 0:
		cause = "dehydration"
	default:
		return
	}

	s.fired = true
	s.log.Info("player died", zap.Uint64("entity", uint64(w.Player)), zap.String("cause", cause), zap.Int64("turn", w.Turn))
	outcome := s.handler.HandleDeath(context.Background(), w, w.Player, cause)
	s.log.Info("death handled", zap.Stringer("outcome", outcome))
}
