package system

import (
	"context"
	"testing"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/data"
	"github.com/MTvrimPossible/simulation-game/internal/legacy"
	"github.com/MTvrimPossible/simulation-game/internal/persist"
	"github.com/MTvrimPossible/simulation-game/internal/rules"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

func newWorld(t *testing.T) *world.World {
	t.Helper()
	return world.New(zap.NewNop())
}

type itemBook map[string]*data.ItemDef

func (b itemBook) Get(id string) *data.ItemDef { return b[id] }

type questBook map[string]map[string]*data.StageDef

func (b questBook) Stage(q, s string) *data.StageDef {
	if stages, ok := b[q]; ok {
		return stages[s]
	}
	return nil
}

type fixedRoll float64

func (f fixedRoll) Float64() float64 { return float64(f) }

type countingDeaths struct {
	calls  int
	causes []string
}

func (c *countingDeaths) HandleDeath(_ context.Context, _ *world.World, _ ecs.EntityID, cause string) legacy.Outcome {
	c.calls++
	c.causes = append(c.causes, cause)
	return legacy.OutcomeRespawn
}

type fakeEffects map[string]map[string]float64

func (f fakeEffects) Effect(fn string, _ rules.Capabilities) (map[string]float64, error) {
	return f[fn], nil
}

type countingSaver struct {
	slots []string
}

func (c *countingSaver) SaveTo(_ context.Context, slot string, _ *world.World) (persist.Status, error) {
	c.slots = append(c.slots, slot)
	return persist.Status{OK: true}, nil
}

func spawnPlayer(w *world.World, x, y int) ecs.EntityID {
	store := w.Store()
	p := w.CreateEntity()
	ecs.Add(store, p, component.Position{X: x, Y: y})
	ecs.Add(store, p, component.NewNeeds())
	ecs.Add(store, p, component.Inventory{Capacity: component.DefaultCapacity})
	ecs.Add(store, p, component.Currency{Amount: 20})
	ecs.Add(store, p, component.Reputation{})
	ecs.Add(store, p, component.IrreversibleLoad{})
	w.Player = p
	return p
}
