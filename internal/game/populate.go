package game

import (
	"fmt"
	"math/rand"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/data"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

const (
	playerTile  = "@"
	playerColor = "#FFD700"

	// DefaultStartMoney is what every new life starts with.
	DefaultStartMoney = 20
)

// WorldSpec selects the map and era of a fresh world.
type WorldSpec struct {
	MapID  string
	Width  int
	Height int
	Seed   int64
	Era    world.Era
}

// Spawner builds a fresh world from the definition tables and replaces the
// player on respawn.
type Spawner struct {
	tables     *data.Tables
	maps       world.MapProvider
	capacity   int
	startMoney int
	start      component.Position
	log        *zap.Logger
}

func NewSpawner(tables *data.Tables, maps world.MapProvider, capacity int, log *zap.Logger) *Spawner {
	if capacity <= 0 {
		capacity = component.DefaultCapacity
	}
	return &Spawner{
		tables:     tables,
		maps:       maps,
		capacity:   capacity,
		startMoney: DefaultStartMoney,
		log:        log,
	}
}

// Start is where the player appears.
func (s *Spawner) Start() component.Position { return s.start }

// Populate loads the map and creates fixtures, vendors, NPCs, loose items
// and the player, in that order.
func (s *Spawner) Populate(w *world.World, spec WorldSpec) error {
	ref := world.MapRef{ID: spec.MapID, Width: spec.Width, Height: spec.Height, Seed: spec.Seed}

	var (
		tm       *world.TileMap
		fixtures []Fixture
		err      error
	)
	if spec.MapID == TownMapID {
		tm, fixtures, err = GenerateTown(ref)
		s.start = component.Position{X: roadEveryX, Y: roadEveryY}
	} else {
		tm, err = s.maps.Load(ref)
		if info := s.tables.Maps.GetInfo(spec.MapID); info != nil {
			s.start = component.Position{X: info.StartX, Y: info.StartY}
		}
	}
	if err != nil {
		return fmt.Errorf("load map %s: %w", spec.MapID, err)
	}
	w.Map = tm
	s.start = openTileNear(tm, s.start)

	if spec.Era != "" {
		if err := w.SetEra(spec.Era); err != nil {
			return err
		}
	}

	for _, f := range fixtures {
		s.spawnFixture(w, f)
	}
	for i, v := range s.tables.Npcs.Vendors() {
		s.spawnVendor(w, v, openTileNear(tm, component.Position{X: s.start.X + 3 + 2*i, Y: s.start.Y - 1}))
	}
	for i, npc := range s.tables.Npcs.All() {
		s.spawnNpc(w, npc, i)
	}
	s.scatterItems(w, world.NewDeterministicRNG(spec.Seed, "scatter"))
	s.spawnPlayer(w, nil)

	s.log.Info("world populated",
		zap.String("map", tm.Ref.ID),
		zap.Int("entities", w.Store().Pool().Len()),
		zap.Int("fixtures", len(fixtures)))
	return nil
}

func (s *Spawner) spawnFixture(w *world.World, f Fixture) {
	store := w.Store()
	id := w.CreateEntity()
	ecs.Add(store, id, component.Position{X: f.X, Y: f.Y})
	ecs.Add(store, id, component.Visual{Tile: f.Tile, Color: f.Color})
	ecs.Add(store, id, component.Amenity{Satisfies: f.Satisfies})
}

func (s *Spawner) spawnVendor(w *world.World, v *data.VendorTemplate, at component.Position) {
	store := w.Store()
	stock := make([]component.StockEntry, 0, len(v.Stock))
	for _, line := range v.Stock {
		def := s.tables.Items.Get(line.ItemID)
		if def == nil {
			continue
		}
		price := line.Price
		if price == 0 {
			price = def.Price
		}
		stock = append(stock, component.StockEntry{
			DefID:    def.ID,
			Name:     def.Name,
			Price:    price,
			Limited:  line.Quantity > 0,
			Quantity: line.Quantity,
		})
	}
	id := w.CreateEntity()
	ecs.Add(store, id, at)
	ecs.Add(store, id, component.Visual{Tile: v.Tile, Color: v.Color})
	ecs.Add(store, id, component.Vendor{Stock: stock})
}

func (s *Spawner) spawnNpc(w *world.World, t *data.NpcTemplate, index int) {
	store := w.Store()
	pos := component.Position{X: s.start.X - 2 - index, Y: s.start.Y + 1}
	if len(t.Schedule) > 0 {
		pos = component.Position{X: t.Schedule[0].X, Y: t.Schedule[0].Y}
	}
	pos = openTileNear(w.Map, pos)

	id := w.CreateEntity()
	ecs.Add(store, id, pos)
	ecs.Add(store, id, component.Visual{Tile: t.Tile, Color: t.Color})
	ecs.Add(store, id, component.NewNeeds())
	ecs.Add(store, id, component.Currency{Amount: t.Money})
	if t.Dialogue != "" {
		ecs.Add(store, id, component.Dialogue{TreeID: t.Dialogue})
	}
	if len(t.Schedule) > 0 {
		tasks := make(map[string]component.Task, len(t.Schedule))
		for _, e := range t.Schedule {
			if !w.Map.Passable(e.X, e.Y) {
				s.log.Warn("scheduled target is not walkable",
					zap.String("npc", t.ID), zap.String("time", e.Time), zap.Int("x", e.X), zap.Int("y", e.Y))
			}
			tasks[e.Time] = component.Task{Action: e.Action, X: e.X, Y: e.Y}
		}
		ecs.Add(store, id, component.Schedule{Tasks: tasks})
	}
	conds := make(map[string]component.Condition, len(t.Infected))
	for _, cid := range t.Infected {
		if def := s.tables.Conditions.Get(cid); def != nil {
			conds[cid] = component.Condition{Transmissibility: def.Transmissibility, Severity: def.Severity}
		}
	}
	ecs.Add(store, id, component.Contagion{Conditions: conds})

	// What an NPC carries lies at its feet and still belongs to it.
	for _, itemID := range t.Carries {
		if def := s.tables.Items.Get(itemID); def != nil {
			s.spawnItem(w, def, pos, id)
		}
	}
}

func (s *Spawner) spawnItem(w *world.World, def *data.ItemDef, at component.Position, owner ecs.EntityID) {
	store := w.Store()
	id := w.CreateEntity()
	ecs.Add(store, id, at)
	ecs.Add(store, id, component.Visual{Tile: def.Tile, Color: def.Color})
	ecs.Add(store, id, component.Item{DefID: def.ID, Name: def.Name, Owner: owner})
}

func (s *Spawner) scatterItems(w *world.World, rng *rand.Rand) {
	for _, def := range s.tables.Items.All() {
		for i := 0; i < def.Scatter; i++ {
			at := randomOpenTile(w.Map, rng)
			s.spawnItem(w, def, at, component.OwnerPublic)
		}
	}
}

// spawnPlayer creates a player at the start tile. When heir is set, the new
// life inherits its load and quest log.
func (s *Spawner) spawnPlayer(w *world.World, heir *heritage) ecs.EntityID {
	store := w.Store()
	p := w.CreateEntity()
	ecs.Add(store, p, s.start)
	ecs.Add(store, p, component.Visual{Tile: playerTile, Color: playerColor})
	ecs.Add(store, p, component.NewNeeds())
	ecs.Add(store, p, component.Inventory{Capacity: s.capacity})
	ecs.Add(store, p, component.Currency{Amount: s.startMoney})
	ecs.Add(store, p, component.Reputation{})
	ecs.Add(store, p, component.Contagion{Conditions: map[string]component.Condition{}})

	if heir != nil {
		ecs.Add(store, p, component.IrreversibleLoad{Amount: heir.load})
		ecs.Add(store, p, heir.quests)
	} else {
		ecs.Add(store, p, component.IrreversibleLoad{})
		ecs.Add(store, p, s.newQuestLog())
	}
	w.Player = p
	return p
}

func (s *Spawner) newQuestLog() component.Quest {
	q := component.Quest{Active: make(map[string]*component.QuestProgress)}
	for _, id := range s.tables.Quests.IDs() {
		def := s.tables.Quests.Get(id)
		q.Active[id] = &component.QuestProgress{Stage: def.Start, Objectives: map[int]bool{}}
	}
	return q
}

type heritage struct {
	load   float64
	quests component.Quest
}

// Respawn destroys the previous player and creates the next one in the
// lineage. Load is genetic and carries over; possessions do not.
func (s *Spawner) Respawn(w *world.World, previous ecs.EntityID) ecs.EntityID {
	store := w.Store()
	heir := &heritage{quests: component.Quest{Active: map[string]*component.QuestProgress{}}}
	if l, ok := ecs.Get[component.IrreversibleLoad](store, previous); ok {
		heir.load = l.Amount
	}
	if q, ok := ecs.Get[component.Quest](store, previous); ok {
		heir.quests = *q
	}
	store.MarkForDestruction(previous)
	store.FlushDestroyQueue()

	p := s.spawnPlayer(w, heir)
	s.log.Info("player respawned",
		zap.Uint64("previous", uint64(previous)),
		zap.Uint64("player", uint64(p)),
		zap.Float64("load", heir.load))
	return p
}

// openTileNear returns want if it is walkable, else the closest walkable
// tile by ring search. Falls back to want on a map with no open tile.
func openTileNear(tm *world.TileMap, want component.Position) component.Position {
	if tm == nil || tm.Passable(want.X, want.Y) {
		return want
	}
	limit := max(tm.Width(), tm.Height())
	for r := 1; r <= limit; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if abs(dx) != r && abs(dy) != r {
					continue
				}
				if tm.Passable(want.X+dx, want.Y+dy) {
					return component.Position{X: want.X + dx, Y: want.Y + dy}
				}
			}
		}
	}
	return want
}

func randomOpenTile(tm *world.TileMap, rng *rand.Rand) component.Position {
	for i := 0; i < 100; i++ {
		p := component.Position{X: rng.Intn(tm.Width()), Y: rng.Intn(tm.Height())}
		if tm.Passable(p.X, p.Y) {
			return p
		}
	}
	return openTileNear(tm, component.Position{})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
