package ecs

import "reflect"

// World is the entity/component store. It owns the entity pool, the component
// registry, and a deferred destruction queue flushed by CleanupSystem each turn.
// Accessed only from the game loop goroutine; no locks.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Entities returns every live entity in creation order.
func (w *World) Entities() []EntityID {
	return w.pool.Entities()
}

// Has reports whether the entity holds a component of the named type.
// Unknown names are simply absent.
func (w *World) Has(id EntityID, name ComponentType) bool {
	s, ok := w.registry.Lookup(name)
	return ok && s.Has(id)
}

// RemoveComponent detaches the named component. Missing data is a no-op.
func (w *World) RemoveComponent(id EntityID, name ComponentType) {
	if s, ok := w.registry.Lookup(name); ok {
		s.Remove(id)
	}
}

// MarkForDestruction queues an entity for end-of-turn cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Called by CleanupSystem at the end of each turn.
func (w *World) FlushDestroyQueue() int {
	n := len(w.destroyQueue)
	for _, id := range w.destroyQueue {
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}

// Register declares a component kind under its persistent name and returns
// its store. Registering the same type twice returns the existing store.
func Register[T any](w *World, name ComponentType) *Store[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if s, ok := w.registry.byType[t]; ok {
		return s.(*Store[T])
	}
	s := NewStore[T](name)
	w.registry.Register(s, t)
	return s
}

// StoreOf returns the typed store for T, registering it under the Go type
// name if nobody registered it explicitly.
func StoreOf[T any](w *World) *Store[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if s, ok := w.registry.byType[t]; ok {
		return s.(*Store[T])
	}
	return Register[T](w, ComponentType(t.Name()))
}

// TypeOf returns the persistent name T is stored under.
func TypeOf[T any](w *World) ComponentType {
	return StoreOf[T](w).Type()
}

// Add attaches c to the entity, overwriting any existing value of that type.
// Returns false (and stores nothing) if the entity is not alive.
func Add[T any](w *World, id EntityID, c T) bool {
	if !w.pool.Alive(id) {
		return false
	}
	StoreOf[T](w).Set(id, &c)
	return true
}

// Get returns the entity's component of type T.
func Get[T any](w *World, id EntityID) (*T, bool) {
	return StoreOf[T](w).Get(id)
}

// Remove detaches the entity's component of type T.
func Remove[T any](w *World, id EntityID) {
	StoreOf[T](w).Remove(id)
}
