package system

import (
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred entity destruction queue. Registered
// last so every other system sees a stable entity set during the turn.
type CleanupSystem struct {
	log *zap.Logger
}

func NewCleanupSystem(log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{log: log}
}

func (s *CleanupSystem) Name() string                  { return "cleanup" }
func (s *CleanupSystem) Required() []ecs.ComponentType { return nil }

func (s *CleanupSystem) Update(w *world.World, _ []ecs.EntityID, _ int) {
	if n := w.Store().FlushDestroyQueue(); n > 0 {
		s.log.Debug("entities destroyed", zap.Int("count", n))
	}
}
