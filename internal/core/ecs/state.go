package ecs

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidState is returned by Restore when persisted data is structurally wrong.
var ErrInvalidState = errors.New("invalid ecs state")

// State is the pure-data form of a store: id counter, entity list in creation
// order and every component encoded as JSON, keyed by type then entity.
type State struct {
	NextID     EntityID                                     `json:"nextEntityId"`
	Entities   []EntityID                                   `json:"entities"`
	Components map[ComponentType]map[EntityID]json.RawMessage `json:"components"`
}

// Export captures the store. The destroy queue is transient and not included.
func (w *World) Export() (State, error) {
	st := State{
		NextID:     w.pool.NextID(),
		Entities:   w.pool.Entities(),
		Components: make(map[ComponentType]map[EntityID]json.RawMessage, len(w.registry.stores)),
	}
	for _, s := range w.registry.stores {
		if s.Len() == 0 {
			continue
		}
		raw, err := s.encode()
		if err != nil {
			return State{}, err
		}
		st.Components[s.Type()] = raw
	}
	return st, nil
}

// Restore builds a new World with the same component kinds as w, populated
// from st. w itself is never modified, so a failed restore leaves it intact.
func (w *World) Restore(st State) (*World, error) {
	if err := st.validate(); err != nil {
		return nil, err
	}

	fresh := &World{
		pool:         restorePool(st.NextID, st.Entities),
		registry:     w.registry.cloneEmpty(),
		destroyQueue: make([]EntityID, 0, 64),
	}
	for name, raw := range st.Components {
		proto, ok := fresh.registry.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown component type %q", ErrInvalidState, name)
		}
		for id := range raw {
			if !fresh.pool.Alive(id) {
				return nil, fmt.Errorf("%w: %s attached to missing entity %d", ErrInvalidState, name, id)
			}
		}
		decoded, err := proto.decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
		fresh.registry.replace(decoded)
	}
	return fresh, nil
}

func (st State) validate() error {
	if st.NextID == 0 {
		return fmt.Errorf("%w: id counter is zero", ErrInvalidState)
	}
	var prev EntityID
	for _, id := range st.Entities {
		if id == 0 || id <= prev {
			return fmt.Errorf("%w: entity list not strictly increasing at %d", ErrInvalidState, id)
		}
		if id >= st.NextID {
			return fmt.Errorf("%w: entity %d not below id counter %d", ErrInvalidState, id, st.NextID)
		}
		prev = id
	}
	return nil
}
