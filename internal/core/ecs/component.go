package ecs

import (
	"encoding/json"
	"fmt"
)

// ComponentType is the persistent name of a component kind, e.g. "Position".
type ComponentType string

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// Storage is the type-erased view of a Store used by queries and snapshots.
type Storage interface {
	Removable
	Type() ComponentType
	Has(id EntityID) bool
	Len() int

	encode() (map[EntityID]json.RawMessage, error)
	decode(raw map[EntityID]json.RawMessage) (Storage, error)
	empty() Storage
}

// Store is a generic typed map store for ECS components.
// Component data is held by pointer so systems can mutate it in place.
type Store[T any] struct {
	name ComponentType
	data map[EntityID]*T
}

func NewStore[T any](name ComponentType) *Store[T] {
	return &Store[T]{
		name: name,
		data: make(map[EntityID]*T, 256),
	}
}

func (s *Store[T]) Type() ComponentType { return s.name }

func (s *Store[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *Store[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.data)
}

// Each visits every component. Iteration order is unspecified; use
// World.Query when order matters.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}

func (s *Store[T]) encode() (map[EntityID]json.RawMessage, error) {
	out := make(map[EntityID]json.RawMessage, len(s.data))
	for id, c := range s.data {
		raw, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encode %s of entity %d: %w", s.name, id, err)
		}
		out[id] = raw
	}
	return out, nil
}

func (s *Store[T]) decode(raw map[EntityID]json.RawMessage) (Storage, error) {
	fresh := NewStore[T](s.name)
	for id, msg := range raw {
		c := new(T)
		if err := json.Unmarshal(msg, c); err != nil {
			return nil, fmt.Errorf("decode %s of entity %d: %w", s.name, id, err)
		}
		fresh.data[id] = c
	}
	return fresh, nil
}

func (s *Store[T]) empty() Storage {
	return NewStore[T](s.name)
}
