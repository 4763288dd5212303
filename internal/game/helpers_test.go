package game

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MTvrimPossible/simulation-game/internal/config"
	"github.com/MTvrimPossible/simulation-game/internal/data"
	"github.com/MTvrimPossible/simulation-game/internal/legacy"
	"github.com/MTvrimPossible/simulation-game/internal/persist"
	"github.com/MTvrimPossible/simulation-game/internal/rules"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSeed = 7

func loadTables(t *testing.T) *data.Tables {
	t.Helper()
	tables, err := data.Load(context.Background(), filepath.Join("..", "..", "data"))
	require.NoError(t, err)
	return tables
}

func newTown(t *testing.T) (*world.World, *Spawner, *data.Tables) {
	t.Helper()
	tables := loadTables(t)
	maps := NewMaps(tables.Maps)
	w := world.New(zap.NewNop(), world.WithMapProvider(maps))
	sp := NewSpawner(tables, maps, 0, zap.NewNop())
	require.NoError(t, sp.Populate(w, WorldSpec{MapID: TownMapID, Width: 40, Height: 20, Seed: testSeed}))
	return w, sp, tables
}

type fixedRoll float64

func (f fixedRoll) Float64() float64 { return float64(f) }

type scripted struct {
	inputs []Input
}

func (s *scripted) Poll() (Input, bool) {
	if len(s.inputs) == 0 {
		return Input{}, false
	}
	in := s.inputs[0]
	s.inputs = s.inputs[1:]
	return in, true
}

func (s *scripted) push(ins ...Input) { s.inputs = append(s.inputs, ins...) }

type recorder struct {
	frames []Frame
}

func (r *recorder) Render(f Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

type harness struct {
	w     *world.World
	loop  *Loop
	input *scripted
	slots *persist.MemoryStore
	cfg   *config.Config
	out   *recorder
}

// newHarness builds a populated town with the default pipeline. roll decides
// the legacy check: below the fail chance means game over.
func newHarness(t *testing.T, roll float64) *harness {
	t.Helper()
	w, sp, tables := newTown(t)
	cfg := config.Default()
	store := persist.NewMemoryStore()
	log := zap.NewNop()

	eval := rules.NewEvaluator(nil, log)
	saves := persist.NewSaveLoad(store, cfg.Storage.SaveSlot, log)
	deaths := legacy.NewManager(store, cfg.Storage.GraveyardKey, cfg.Rules.MaxLoad, fixedRoll(roll), log)
	pipe := RegisterDefaultSystems(w, Deps{
		Tables:    tables,
		Evaluator: eval,
		Deaths:    deaths,
		Saver:     saves,
		Rules:     cfg.Rules,
		Storage:   cfg.Storage,
		Seed:      testSeed,
		Log:       log,
	})

	h := &harness{w: w, input: &scripted{}, slots: store, cfg: cfg, out: &recorder{}}
	h.loop = NewLoop(LoopConfig{
		World:     w,
		Input:     h.input,
		Renderers: []Renderer{h.out},
		Slots:     saves,
		Spawner:   sp,
		Pipeline:  pipe,
		Dialogue:  tables.Dialogue,
		Evaluator: eval,
		PollRate:  time.Millisecond,
		Log:       log,
	})
	return h
}

// step feeds one input and runs one loop step.
func (h *harness) step(in Input) bool {
	h.input.push(in)
	return h.loop.Step(context.Background())
}

func act(k world.ActionKind) Input { return Input{Action: world.Action{Kind: k}} }
