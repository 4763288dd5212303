package ecs

import (
	"fmt"
	"reflect"
)

// Registry tracks all component stores, by persistent name and by Go type.
// Registration order is kept so snapshots and debug dumps are stable.
type Registry struct {
	stores []Storage
	byName map[ComponentType]Storage
	byType map[reflect.Type]Storage
	types  map[ComponentType]reflect.Type
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Storage, 0, 16),
		byName: make(map[ComponentType]Storage, 16),
		byType: make(map[reflect.Type]Storage, 16),
		types:  make(map[ComponentType]reflect.Type, 16),
	}
}

// Register adds a component store to the registry. Reusing a name for a
// different Go type is a programming error.
func (r *Registry) Register(store Storage, t reflect.Type) {
	name := store.Type()
	if prev, ok := r.types[name]; ok {
		if prev != t {
			panic(fmt.Sprintf("ecs: component %q already registered for %s", name, prev))
		}
		return
	}
	r.stores = append(r.stores, store)
	r.byName[name] = store
	r.byType[t] = store
	r.types[name] = t
}

// Lookup returns the store registered under name.
func (r *Registry) Lookup(name ComponentType) (Storage, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}

// cloneEmpty returns a registry with the same component kinds and no data.
func (r *Registry) cloneEmpty() *Registry {
	out := NewRegistry()
	for _, s := range r.stores {
		out.Register(s.empty(), r.types[s.Type()])
	}
	return out
}

// replace swaps in a decoded store for an already registered name.
func (r *Registry) replace(store Storage) {
	name := store.Type()
	t := r.types[name]
	for i, s := range r.stores {
		if s.Type() == name {
			r.stores[i] = store
		}
	}
	r.byName[name] = store
	r.byType[t] = store
}
