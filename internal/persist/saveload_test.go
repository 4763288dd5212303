package persist

import (
	"context"
	"errors"
	"testing"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingStore struct{ SlotStore }

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk on fire") }
func (failingStore) Set(context.Context, string, []byte) error  { return errors.New("disk on fire") }

func newWorld(t *testing.T) (*world.World, ecs.EntityID) {
	t.Helper()
	w := world.New(zap.NewNop())
	p := w.CreateEntity()
	ecs.Add(w.Store(), p, component.Position{X: 3, Y: 4})
	ecs.Add(w.Store(), p, component.NewNeeds())
	w.Player = p
	return w, p
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sl := NewSaveLoad(store, "sim_savegame_v1", zap.NewNop())
	w, p := newWorld(t)

	st, err := sl.Save(ctx, w)
	require.NoError(t, err)
	assert.True(t, st.OK)

	pos, _ := ecs.Get[component.Position](w.Store(), p)
	pos.X = 10
	w.Paused = true

	st, err = sl.Load(ctx, w)
	require.NoError(t, err)
	assert.True(t, st.OK)
	assert.False(t, w.Paused)

	pos, ok := ecs.Get[component.Position](w.Store(), p)
	require.True(t, ok)
	assert.Equal(t, 3, pos.X)
}

func TestLoadWithoutSave(t *testing.T) {
	w, _ := newWorld(t)
	st, err := NewSaveLoad(NewMemoryStore(), "slot", nil).Load(context.Background(), w)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, st.OK)
	assert.Equal(t, "No save found.", st.Message)
}

func TestLoadCorruptLeavesWorld(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "slot", []byte(`{"checksum":1,"payload":{}}`)))
	w, p := newWorld(t)

	st, err := NewSaveLoad(store, "slot", nil).Load(ctx, w)
	assert.ErrorIs(t, err, world.ErrSerialization)
	assert.False(t, st.OK)
	assert.False(t, w.Paused)
	assert.Equal(t, p, w.Player)
	assert.True(t, w.Store().Alive(p))
}

func TestStoreErrorsSurface(t *testing.T) {
	w, _ := newWorld(t)
	sl := NewSaveLoad(failingStore{}, "slot", nil)

	_, err := sl.Save(context.Background(), w)
	assert.Error(t, err)

	st, err := sl.Load(context.Background(), w)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Load failed.", st.Message)
}
