package game

import (
	"fmt"
	"math/rand"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/data"
	"github.com/MTvrimPossible/simulation-game/internal/world"
)

// TownMapID names the generated map. Any other id is looked up in maps.yaml.
const TownMapID = "town"

const (
	tileGround = '.'
	tileRoad   = '='
	tileDoor   = '+'

	roadEveryX = 15
	roadEveryY = 10
)

// Fixture is a need-satisfying object the generator places with a map.
type Fixture struct {
	Name      string
	Tile      string
	Color     string
	X, Y      int
	Satisfies []component.NeedKind
}

var householdFixtures = []Fixture{
	{Name: "fridge", Tile: "F", Color: "#aaddff", Satisfies: []component.NeedKind{component.NeedHunger}},
	{Name: "sink", Tile: "S", Color: "#66aaff", Satisfies: []component.NeedKind{component.NeedThirst, component.NeedHygiene}},
	{Name: "bed", Tile: "b", Color: "#cc9966", Satisfies: []component.NeedKind{component.NeedEnergy}},
	{Name: "toilet", Tile: "t", Color: "#dddddd", Satisfies: []component.NeedKind{component.NeedBladder}},
}

var bench = Fixture{Name: "bench", Tile: "h", Color: "#55aa55", Satisfies: []component.NeedKind{component.NeedSocial, component.NeedFun}}

// GenerateTown lays out roads on a fixed grid and one walled house per block,
// with fixtures inside each house and a bench on every road stretch. The
// same ref always produces the same town.
func GenerateTown(ref world.MapRef) (*world.TileMap, []Fixture, error) {
	if ref.Width < 3 || ref.Height < 3 {
		return nil, nil, fmt.Errorf("town %dx%d too small", ref.Width, ref.Height)
	}
	rng := world.NewDeterministicRNG(ref.Seed, "town")

	grid := make([][]byte, ref.Height)
	for y := range grid {
		grid[y] = make([]byte, ref.Width)
		for x := range grid[y] {
			if x%roadEveryX == 0 || y%roadEveryY == 0 {
				grid[y][x] = tileRoad
			} else {
				grid[y][x] = tileGround
			}
		}
	}

	var fixtures []Fixture
	for by := 1; by < ref.Height; by += roadEveryY {
		for bx := 1; bx < ref.Width; bx += roadEveryX {
			bw := min(roadEveryX-1, ref.Width-bx)
			bh := min(roadEveryY-1, ref.Height-by)
			fixtures = append(fixtures, placeHouse(grid, rng, bx, by, bw, bh)...)
		}
	}
	for x := 0; x < ref.Width; x += roadEveryX {
		for y := roadEveryY / 2; y < ref.Height; y += roadEveryY {
			f := bench
			f.X, f.Y = x, y
			fixtures = append(fixtures, f)
		}
	}

	rows := make([]string, len(grid))
	for i, r := range grid {
		rows[i] = string(r)
	}
	tm, err := world.NewTileMap(ref, rows)
	if err != nil {
		return nil, nil, err
	}
	return tm, fixtures, nil
}

// placeHouse draws a walled house with a door on its south wall inside the
// block at (bx, by) of size bw x bh. Blocks too small for a house stay empty.
func placeHouse(grid [][]byte, rng *rand.Rand, bx, by, bw, bh int) []Fixture {
	const minW, minH = 6, 5
	if bw < minW+1 || bh < minH+1 {
		return nil
	}
	w := minW + rng.Intn(min(3, bw-minW))
	h := minH + rng.Intn(min(2, bh-minH))
	x0 := bx + rng.Intn(bw-w)
	y0 := by + rng.Intn(bh-h)

	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			if y == y0 || y == y0+h-1 || x == x0 || x == x0+w-1 {
				grid[y][x] = world.TileWall
			}
		}
	}
	grid[y0+h-1][x0+w/2] = tileDoor

	var out []Fixture
	fx, fy := x0+1, y0+1
	for _, f := range householdFixtures {
		if fx >= x0+w-1 {
			fx = x0 + 1
			fy++
		}
		if fy >= y0+h-1 {
			break
		}
		f.X, f.Y = fx, fy
		out = append(out, f)
		fx++
	}
	return out
}

// Maps resolves map references: the generated town by id, everything else
// from the hand-drawn map table.
type Maps struct {
	files *data.MapDataTable
}

var _ world.MapProvider = (*Maps)(nil)

func NewMaps(files *data.MapDataTable) *Maps {
	return &Maps{files: files}
}

func (m *Maps) Load(ref world.MapRef) (*world.TileMap, error) {
	if ref.ID == TownMapID {
		tm, _, err := GenerateTown(ref)
		return tm, err
	}
	if m.files == nil {
		return nil, fmt.Errorf("unknown map %q", ref.ID)
	}
	return m.files.Load(ref)
}
