package world

import (
	"fmt"
	"strings"
)

// TileWall is the only impassable tile token.
const TileWall byte = '#'

// MapRef identifies a map in snapshots. The grid itself is not persisted;
// a MapProvider regenerates it from the reference on load.
type MapRef struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   int64  `json:"seed"`
}

// MapProvider turns a reference back into a walkability grid.
type MapProvider interface {
	Load(ref MapRef) (*TileMap, error)
}

// TileMap is a 2D tile grid, row-major: rows[y][x].
type TileMap struct {
	Ref  MapRef
	rows [][]byte
}

// NewTileMap builds a map from text rows. All rows must have equal width.
func NewTileMap(ref MapRef, rows []string) (*TileMap, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("map %q: no rows", ref.ID)
	}
	width := len(rows[0])
	grid := make([][]byte, len(rows))
	for y, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("map %q: row %d has width %d, want %d", ref.ID, y, len(r), width)
		}
		grid[y] = []byte(r)
	}
	ref.Width, ref.Height = width, len(rows)
	return &TileMap{Ref: ref, rows: grid}, nil
}

func (m *TileMap) Width() int  { return m.Ref.Width }
func (m *TileMap) Height() int { return m.Ref.Height }

func (m *TileMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && y < len(m.rows) && x < len(m.rows[y])
}

// At returns the tile at (x, y); ok is false outside the grid.
func (m *TileMap) At(x, y int) (byte, bool) {
	if !m.InBounds(x, y) {
		return 0, false
	}
	return m.rows[y][x], true
}

// Passable reports whether an entity may stand on (x, y).
func (m *TileMap) Passable(x, y int) bool {
	t, ok := m.At(x, y)
	return ok && t != TileWall
}

// Set overwrites one tile. Out-of-bounds writes are ignored.
func (m *TileMap) Set(x, y int, t byte) {
	if m.InBounds(x, y) {
		m.rows[y][x] = t
	}
}

// Rows returns a copy of the grid as strings, for renderers.
func (m *TileMap) Rows() []string {
	out := make([]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = string(r)
	}
	return out
}

func (m *TileMap) String() string {
	return strings.Join(m.Rows(), "\n")
}
