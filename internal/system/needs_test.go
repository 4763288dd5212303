package system

import (
	"testing"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDecay(t *testing.T) {
	n := component.NewNeeds()
	Decay(&n, 10)
	assert.InDelta(t, 99.5, n.Values[component.NeedHunger], 1e-9)
	assert.InDelta(t, 99.2, n.Values[component.NeedThirst], 1e-9)

	Decay(&n, 5000)
	for _, v := range n.Values {
		assert.Equal(t, 0.0, v)
	}
}

func TestStrongestNeedTieBreak(t *testing.T) {
	n := component.NewNeeds()
	n.Values[component.NeedEnergy] = 10
	n.Values[component.NeedFun] = 10
	kind, val := StrongestNeed(&n)
	assert.Equal(t, component.NeedEnergy, kind)
	assert.Equal(t, 10.0, val)
}

func TestCriticalNpcBeelinesToNearestAmenity(t *testing.T) {
	w := newWorld(t)
	store := w.Store()
	w.RegisterSystem(NewNeedsSystem(DefaultBeelineThreshold, zap.NewNop()))

	far := w.CreateEntity()
	ecs.Add(store, far, component.Position{X: 20, Y: 0})
	ecs.Add(store, far, component.Amenity{Satisfies: []component.NeedKind{component.NeedThirst}})
	near := w.CreateEntity()
	ecs.Add(store, near, component.Position{X: 3, Y: 4})
	ecs.Add(store, near, component.Amenity{Satisfies: []component.NeedKind{component.NeedThirst}})
	food := w.CreateEntity()
	ecs.Add(store, food, component.Position{X: 1, Y: 0})
	ecs.Add(store, food, component.Amenity{Satisfies: []component.NeedKind{component.NeedHunger}})

	npc := w.CreateEntity()
	needs := component.NewNeeds()
	needs.Values[component.NeedThirst] = 20
	ecs.Add(store, npc, needs)
	ecs.Add(store, npc, component.Position{X: 0, Y: 0})

	w.UpdateSystems(1)
	dest, ok := ecs.Get[component.Destination](store, npc)
	require.True(t, ok)
	assert.Equal(t, component.Destination{X: 3, Y: 4}, *dest)
}

func TestPlayerNeverBeelines(t *testing.T) {
	w := newWorld(t)
	store := w.Store()
	w.RegisterSystem(NewNeedsSystem(DefaultBeelineThreshold, zap.NewNop()))
	am := w.CreateEntity()
	ecs.Add(store, am, component.Position{X: 2, Y: 2})
	ecs.Add(store, am, component.Amenity{Satisfies: []component.NeedKind{component.NeedHunger}})

	p := spawnPlayer(w, 0, 0)
	n, _ := ecs.Get[component.Needs](store, p)
	n.Values[component.NeedHunger] = 5

	w.UpdateSystems(1)
	assert.False(t, store.Has(p, component.TypeDestination))
}
