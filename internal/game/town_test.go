package game

import (
	"testing"

	"github.com/MTvrimPossible/simulation-game/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTownIsDeterministic(t *testing.T) {
	ref := world.MapRef{ID: TownMapID, Width: 40, Height: 20, Seed: 3}
	a, fa, err := GenerateTown(ref)
	require.NoError(t, err)
	b, fb, err := GenerateTown(ref)
	require.NoError(t, err)

	assert.Equal(t, a.Rows(), b.Rows())
	assert.Equal(t, fa, fb)
	assert.Equal(t, ref, a.Ref)
}

func TestGenerateTownLayout(t *testing.T) {
	tm, fixtures, err := GenerateTown(world.MapRef{ID: TownMapID, Width: 40, Height: 20, Seed: 11})
	require.NoError(t, err)
	assert.Equal(t, 40, tm.Width())
	assert.Equal(t, 20, tm.Height())

	for x := 0; x < tm.Width(); x++ {
		assert.True(t, tm.Passable(x, 0), "road at (%d,0)", x)
		assert.True(t, tm.Passable(x, roadEveryY), "road at (%d,%d)", x, roadEveryY)
	}
	require.NotEmpty(t, fixtures)
	var walls int
	for _, row := range tm.Rows() {
		for i := 0; i < len(row); i++ {
			if row[i] == world.TileWall {
				walls++
			}
		}
	}
	assert.Positive(t, walls, "houses are walled")
	for _, f := range fixtures {
		assert.True(t, tm.Passable(f.X, f.Y), "%s at (%d,%d)", f.Name, f.X, f.Y)
		assert.NotEmpty(t, f.Satisfies)
	}
}

func TestGenerateTownTooSmall(t *testing.T) {
	_, _, err := GenerateTown(world.MapRef{ID: TownMapID, Width: 2, Height: 10})
	assert.Error(t, err)
}

func TestMapsDispatch(t *testing.T) {
	tables := loadTables(t)
	maps := NewMaps(tables.Maps)

	town, err := maps.Load(world.MapRef{ID: TownMapID, Width: 30, Height: 12, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 30, town.Width())

	apt, err := maps.Load(world.MapRef{ID: "apartment"})
	require.NoError(t, err)
	assert.Equal(t, 12, apt.Width())
	assert.False(t, apt.Passable(0, 0))

	_, err = maps.Load(world.MapRef{ID: "moon"})
	assert.Error(t, err)

	_, err = NewMaps(nil).Load(world.MapRef{ID: "apartment"})
	assert.Error(t, err)
}
