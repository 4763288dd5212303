package system

import (
	"context"
	"time"

	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/persist"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// Saver writes a world snapshot to a named slot. *persist.SaveLoad implements it.
type Saver interface {
	SaveTo(ctx context.Context, slot string, w *world.World) (persist.Status, error)
}

// AutosaveSystem periodically writes the world to the autosave slot.
type AutosaveSystem struct {
	saver     Saver
	slot      string
	interval  int // turns between saves; <= 0 disables
	turnCount int
	log       *zap.Logger
}

func NewAutosaveSystem(saver Saver, slot string, intervalTurns int, log *zap.Logger) *AutosaveSystem {
	return &AutosaveSystem{saver: saver, slot: slot, interval: intervalTurns, log: log}
}

func (s *AutosaveSystem) Name() string                  { return "autosave" }
func (s *AutosaveSystem) Required() []ecs.ComponentType { return nil }

// Reset restarts the countdown, so a freshly loaded world is not saved
// over immediately.
func (s *AutosaveSystem) Reset() { s.turnCount = 0 }

func (s *AutosaveSystem) Update(w *world.World, _ []ecs.EntityID, turns int) {
	if s.interval <= 0 || turns <= 0 {
		return
	}
	s.turnCount += turns
	if s.turnCount < s.interval {
		return
	}
	s.turnCount = 0
	s.Save(w)
}

// Save writes immediately. Called on graceful shutdown as well.
func (s *AutosaveSystem) Save(w *world.World) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.saver.SaveTo(ctx, s.slot, w); err != nil {
		s.log.Error("autosave failed", zap.String("slot", s.slot), zap.Error(err))
	}
}
