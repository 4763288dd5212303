// Package legacy decides what happens after the player dies: another life
// in the same lineage, or the end of the run.
package legacy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/core/event"
	"github.com/MTvrimPossible/simulation-game/internal/persist"
	"github.com/MTvrimPossible/simulation-game/internal/scripting"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// DefaultMaxLoad is the load at which respawn always fails.
const DefaultMaxLoad = 1000.0

// ReasonGeneticFailure is the GameOver reason when the respawn roll fails.
const ReasonGeneticFailure = "CATASTROPHIC_GENETIC_FAILURE"

type Outcome int

const (
	OutcomeRespawn Outcome = iota
	OutcomeGameOver
)

func (o Outcome) String() string {
	if o == OutcomeGameOver {
		return "game_over"
	}
	return "respawn"
}

// Grave is one buried ancestor.
type Grave struct {
	Entity  ecs.EntityID `json:"entity"`
	Turn    int64        `json:"turn"`
	Clock   string       `json:"clock"`
	Load    float64      `json:"load"`
	Cause   string       `json:"cause"`
	Epitaph string       `json:"epitaph,omitempty"`
}

// Epitapher writes the line on a gravestone. Optional.
type Epitapher interface {
	Epitaph(ctx scripting.EpitaphContext) string
}

// Manager runs the respawn roll and keeps the graveyard.
type Manager struct {
	store    persist.SlotStore
	key      string
	maxLoad  float64
	rng      world.Roller
	epitaphs Epitapher
	log      *zap.Logger
}

func NewManager(store persist.SlotStore, graveyardKey string, maxLoad float64, rng world.Roller, log *zap.Logger) *Manager {
	if maxLoad <= 0 {
		maxLoad = DefaultMaxLoad
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, key: graveyardKey, maxLoad: maxLoad, rng: rng, log: log}
}

// SetEpitapher attaches a gravestone writer, typically the Lua engine.
func (m *Manager) SetEpitapher(e Epitapher) { m.epitaphs = e }

// FailChance is min(1, load/maxLoad). Negative load counts as zero.
func (m *Manager) FailChance(load float64) float64 {
	if load <= 0 {
		return 0
	}
	return math.Min(1, load/m.maxLoad)
}

// HandleDeath rolls once. On failure it publishes GameOver and nothing is
// buried. On success it buries the player and publishes RespawnRequested.
// A graveyard write error is logged; the respawn still happens.
func (m *Manager) HandleDeath(ctx context.Context, w *world.World, player ecs.EntityID, cause string) Outcome {
	var load float64
	if l, ok := ecs.Get[component.IrreversibleLoad](w.Store(), player); ok {
		load = l.Amount
	}
	chance := m.FailChance(load)
	roll := m.rng.Float64()

	w.Publish(event.PlayerDied, event.PlayerDiedEvent{Entity: player, Load: load, Turn: w.Turn})

	if roll < chance {
		m.log.Info("respawn failed",
			zap.Float64("load", load),
			zap.Float64("fail_chance", chance),
			zap.Float64("roll", roll))
		w.Publish(event.GameOver, event.GameOverEvent{Reason: ReasonGeneticFailure})
		return OutcomeGameOver
	}

	grave := Grave{
		Entity: player,
		Turn:   w.Turn,
		Clock:  w.Clock.String(),
		Load:   load,
		Cause:  cause,
	}
	if m.epitaphs != nil {
		grave.Epitaph = m.epitaphs.Epitaph(scripting.EpitaphContext{
			Turn: w.Turn, Day: w.Clock.Day, Load: load, Cause: cause,
		})
	}
	if err := m.bury(ctx, grave); err != nil {
		m.log.Warn("graveyard write failed", zap.Error(err))
	}
	m.log.Info("respawn granted", zap.Float64("load", load), zap.Float64("fail_chance", chance))
	w.Publish(event.RespawnRequested, event.RespawnRequestedEvent{Previous: player})
	return OutcomeRespawn
}

// Graveyard returns every buried ancestor, oldest first.
func (m *Manager) Graveyard(ctx context.Context) ([]Grave, error) {
	raw, err := m.store.Get(ctx, m.key)
	if errors.Is(err, persist.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read graveyard: %w", err)
	}
	var graves []Grave
	if err := json.Unmarshal(raw, &graves); err != nil {
		return nil, fmt.Errorf("decode graveyard: %w", err)
	}
	return graves, nil
}

func (m *Manager) bury(ctx context.Context, g Grave) error {
	graves, err := m.Graveyard(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(append(graves, g))
	if err != nil {
		return fmt.Errorf("encode graveyard: %w", err)
	}
	return m.store.Set(ctx, m.key, raw)
}
