package system

import (
	"testing"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestAutosaveInterval(t *testing.T) {
	w := newWorld(t)
	saver := &countingSaver{}
	w.RegisterSystem(NewAutosaveSystem(saver, "auto", 3, zap.NewNop()))

	for i := 0; i < 7; i++ {
		w.UpdateSystems(1)
	}
	assert.Equal(t, []string{"auto", "auto"}, saver.slots)
}

func TestAutosaveDisabled(t *testing.T) {
	w := newWorld(t)
	saver := &countingSaver{}
	w.RegisterSystem(NewAutosaveSystem(saver, "auto", 0, zap.NewNop()))
	w.UpdateSystems(1000)
	assert.Empty(t, saver.slots)
}

func TestCleanupFlushesMarkedEntities(t *testing.T) {
	w := newWorld(t)
	w.RegisterSystem(NewCleanupSystem(zap.NewNop()))
	keep := w.CreateEntity()
	gone := w.CreateEntity()
	ecs.Add(w.Store(), gone, component.Position{})
	w.Store().MarkForDestruction(gone)

	assert.True(t, w.Store().Alive(gone))
	w.UpdateSystems(1)
	assert.False(t, w.Store().Alive(gone))
	assert.True(t, w.Store().Alive(keep))
	assert.Empty(t, w.Query(component.TypePosition))
}
