package system

import (
	"testing"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func mortalWorld(t *testing.T) (*world.World, *MortalitySystem, *countingDeaths) {
	w := newWorld(t)
	spawnPlayer(w, 0, 0)
	deaths := &countingDeaths{}
	m := NewMortalitySystem(deaths, zap.NewNop())
	w.RegisterSystem(NewNeedsSystem(DefaultBeelineThreshold, zap.NewNop()))
	w.RegisterSystem(m)
	return w, m, deaths
}

func TestMortalityFiresOnceInOneLongUpdate(t *testing.T) {
	w, m, deaths := mortalWorld(t)
	w.UpdateSystems(2000)
	assert.Equal(t, 1, deaths.calls)
	assert.True(t, m.Fired())

	w.UpdateSystems(10)
	assert.Equal(t, 1, deaths.calls)
}

func TestMortalityFiresOnceOverManyTurns(t *testing.T) {
	w, _, deaths := mortalWorld(t)
	for i := 0; i < 2000; i++ {
		w.UpdateSystems(1)
	}
	assert.Equal(t, 1, deaths.calls)
	assert.Equal(t, []string{"dehydration"}, deaths.causes)
}

func TestMortalityRearmsAfterReset(t *testing.T) {
	w, m, deaths := mortalWorld(t)
	w.UpdateSystems(2000)
	assert.Equal(t, 1, deaths.calls)

	m.Reset()
	n, _ := ecs.Get[component.Needs](w.Store(), w.Player)
	*n = component.NewNeeds()
	w.UpdateSystems(1)
	assert.Equal(t, 1, deaths.calls)

	n.Values[component.NeedHunger] = 0
	w.UpdateSystems(1)
	assert.Equal(t, 2, deaths.calls)
	assert.Equal(t, "starvation", deaths.causes[1])
}

func TestMortalityIgnoresHealthyPlayer(t *testing.T) {
	w, _, deaths := mortalWorld(t)
	w.UpdateSystems(100)
	assert.Zero(t, deaths.calls)
}

// hungerOnly leaves hunger as the only decaying gauge: 100 at 0.05/turn.
func hungerOnly(t *testing.T) (*world.World, *countingDeaths, *component.Needs) {
	w, _, deaths := mortalWorld(t)
	n, ok := ecs.Get[component.Needs](w.Store(), w.Player)
	if !ok {
		t.Fatal("player has no needs")
	}
	for i := range n.Decay {
		if component.NeedKind(i) != component.NeedHunger {
			n.Decay[i] = 0
		}
	}
	return w, deaths, n
}

func TestStarvationAtExactlyTurn2000(t *testing.T) {
	t.Run("steps", func(t *testing.T) {
		w, deaths, n := hungerOnly(t)
		for i := 0; i < 1999; i++ {
			w.UpdateSystems(1)
		}
		assert.Greater(t, n.Values[component.NeedHunger], 0.0)
		assert.Zero(t, deaths.calls)

		w.UpdateSystems(1)
		assert.Equal(t, 0.0, n.Values[component.NeedHunger])
		assert.Equal(t, []string{"starvation"}, deaths.causes)

		for i := 0; i < 50; i++ {
			w.UpdateSystems(1)
		}
		assert.Equal(t, 1, deaths.calls)
	})

	t.Run("batch", func(t *testing.T) {
		w, deaths, n := hungerOnly(t)
		w.UpdateSystems(1999)
		assert.Greater(t, n.Values[component.NeedHunger], 0.0)
		assert.Zero(t, deaths.calls)

		w, deaths, n = hungerOnly(t)
		w.UpdateSystems(2000)
		assert.Equal(t, 0.0, n.Values[component.NeedHunger])
		assert.Equal(t, []string{"starvation"}, deaths.causes)
		assert.Equal(t, int64(2000), w.Turn)
	})
}
