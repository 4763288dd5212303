package system

import "github.com/MTvrimPossible/simulation-game/internal/core/ecs"

// System is the interface every behavior unit implements. W is the world
// aggregate handed to Update; keeping it generic lets the runner live below
// the package that defines the world.
type System[W any] interface {
	Name() string
	// Required lists the component types an entity must hold to be passed
	// to Update. Empty means the system handles a global concern.
	Required() []ecs.ComponentType
	Update(w W, entities []ecs.EntityID, turns int)
}

// Resetter is implemented by systems holding private bookkeeping (pending
// event queues, one-shot flags) that must be discarded when the world state
// is replaced wholesale.
type Resetter interface {
	Reset()
}

// Querier resolves a required-component set to matching entities.
type Querier interface {
	Query(types ...ecs.ComponentType) []ecs.EntityID
}
