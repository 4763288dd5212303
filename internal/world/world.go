package world

import (
	"fmt"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/core/event"
	coresys "github.com/MTvrimPossible/simulation-game/internal/core/system"
	"go.uber.org/zap"
)

// System is a behavior unit run by the World once per turn.
type System = coresys.System[*World]

// World aggregates the component store, the event bus, the ordered system
// list and the world-level fields collaborators read between turns.
// Accessed only from the game loop goroutine; no locks.
type World struct {
	store  *ecs.World
	bus    *event.Bus
	runner *coresys.Runner[*World]
	maps   MapProvider
	log    *zap.Logger

	Turn   int64
	Paused bool
	Player ecs.EntityID
	Map    *TileMap
	Clock  Clock
	Era    Era

	// Action is the input being applied this turn. Transient; never saved.
	Action Action
}

type Option func(*World)

// WithMapProvider lets Deserialize rebuild the grid of a saved map reference.
func WithMapProvider(p MapProvider) Option {
	return func(w *World) { w.maps = p }
}

func New(log *zap.Logger, opts ...Option) *World {
	if log == nil {
		log = zap.NewNop()
	}
	store := ecs.NewWorld()
	component.RegisterAll(store)
	w := &World{
		store:  store,
		bus:    event.NewBus(log.Named("bus")),
		runner: coresys.NewRunner[*World](),
		log:    log,
		Clock:  NewClock(),
		Era:    EraRitual,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Store returns the current component store. It is replaced by Deserialize,
// so callers must not keep it across turns.
func (w *World) Store() *ecs.World { return w.store }
func (w *World) Bus() *event.Bus   { return w.bus }
func (w *World) Log() *zap.Logger  { return w.log }

func (w *World) CreateEntity() ecs.EntityID { return w.store.CreateEntity() }

func (w *World) Query(types ...ecs.ComponentType) []ecs.EntityID {
	return w.store.Query(types...)
}

func (w *World) RemoveComponent(id ecs.EntityID, t ecs.ComponentType) {
	w.store.RemoveComponent(id, t)
}

func (w *World) Publish(name string, payload any) int {
	return w.bus.Publish(name, payload)
}

func (w *World) Subscribe(name string, h event.Handler) {
	w.bus.Subscribe(name, h)
}

// RegisterSystem appends s to the pipeline. Order is execution order.
func (w *World) RegisterSystem(s System) {
	w.runner.Register(s)
	w.log.Debug("system registered", zap.String("system", s.Name()))
}

func (w *World) Systems() []System { return w.runner.Systems() }

// ResetSystems discards the private bookkeeping of every system, e.g. the
// mortality latch after a respawn.
func (w *World) ResetSystems() { w.runner.Reset() }

// UpdateSystems advances the world by one pass of every system. A paused
// world does nothing at all. turns <= 0 still runs the pass; systems guard
// against no-op ticks themselves.
func (w *World) UpdateSystems(turns int) {
	if w.Paused {
		return
	}
	if turns > 0 {
		w.Turn += int64(turns)
	}
	w.runner.Tick(w, w.store, turns)
}

// SetEra switches the simulation era and announces it on the bus.
func (w *World) SetEra(e Era) error {
	if !e.Valid() {
		return fmt.Errorf("invalid era %q", e)
	}
	if e == w.Era {
		return nil
	}
	prev := w.Era
	w.Era = e
	w.log.Info("era changed", zap.String("from", string(prev)), zap.String("to", string(e)))
	w.bus.Publish(event.EraChanged, event.EraChangedEvent{From: string(prev), To: string(e)})
	return nil
}

// Renderable is one drawable entity.
type Renderable struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Tile  string `json:"tile"`
	Color string `json:"color"`
}

// Renderables lists every entity with Position and Visual in creation order.
func (w *World) Renderables() []Renderable {
	var out []Renderable
	ecs.Each2(w.store, func(_ ecs.EntityID, pos *component.Position, vis *component.Visual) {
		out = append(out, Renderable{X: pos.X, Y: pos.Y, Tile: vis.Tile, Color: vis.Color})
	})
	return out
}
