package game

import (
	"bytes"
	"testing"

	"github.com/MTvrimPossible/simulation-game/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeStampsEntities(t *testing.T) {
	f := Frame{
		Map: []string{"#####", "#...#", "#####"},
		Entities: []world.Renderable{
			{X: 1, Y: 1, Tile: "!"},
			{X: 1, Y: 1, Tile: "@"},
			{X: 9, Y: 9, Tile: "x"},
			{X: -1, Y: 0, Tile: "x"},
			{X: 3, Y: 1, Tile: ""},
		},
	}
	assert.Equal(t, []string{"#####", "#@..#", "#####"}, Compose(f))
	assert.Equal(t, "#...#", f.Map[1], "map rows are not modified")
}

func TestASCIIRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewASCIIRenderer(&buf)
	require.NoError(t, r.Render(Frame{
		Map:       []string{"..."},
		Entities:  []world.Renderable{{X: 2, Y: 0, Tile: "@"}},
		Clock:     "Day 1 (Mon) 08:00",
		Money:     20,
		Inventory: []string{"Keys (stolen)"},
		Dialogue:  []string{"Hello.", "  1) Bye."},
		Status:    "Welcome.",
		Paused:    true,
	}))
	out := buf.String()
	assert.Contains(t, out, "..@\n")
	assert.Contains(t, out, "Day 1 (Mon) 08:00")
	assert.Contains(t, out, "$20")
	assert.Contains(t, out, "[1] Keys (stolen)")
	assert.Contains(t, out, "  1) Bye.\n")
	assert.Contains(t, out, "[paused] Welcome.")
}

func TestBuildFrame(t *testing.T) {
	w, _, _ := newTown(t)
	f := BuildFrame(w, "hi", nil)

	assert.Equal(t, w.Map.Rows(), f.Map)
	assert.Equal(t, "Day 1 (Mon) 08:00", f.Clock)
	assert.Equal(t, DefaultStartMoney, f.Money)
	assert.Len(t, f.Needs, 7)
	assert.Equal(t, "hi", f.Status)
	assert.Contains(t, f.Entities, world.Renderable{X: 15, Y: 10, Tile: playerTile, Color: playerColor})
}
