package ecs

// EntityID is an opaque identifier. Ids are issued in strictly increasing order
// starting at 1; zero is never a live entity and doubles as "no entity".
type EntityID uint64

func (id EntityID) IsZero() bool { return id == 0 }

// EntityPool manages entity allocation. Unlike a generational pool it never
// hands an id out twice, so a stale reference can never alias a new entity.
type EntityPool struct {
	nextID EntityID
	order  []EntityID // creation order, destroyed ids removed
	alive  map[EntityID]struct{}
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		nextID: 1,
		order:  make([]EntityID, 0, 1024),
		alive:  make(map[EntityID]struct{}, 1024),
	}
}

func (p *EntityPool) Create() EntityID {
	id := p.nextID
	p.nextID++
	p.order = append(p.order, id)
	p.alive[id] = struct{}{}
	return id
}

func (p *EntityPool) Alive(id EntityID) bool {
	_, ok := p.alive[id]
	return ok
}

// NextID is the id the next Create call will return.
func (p *EntityPool) NextID() EntityID { return p.nextID }

// Len returns the number of live entities.
func (p *EntityPool) Len() int { return len(p.order) }

// Entities returns live ids in creation order. The slice is a copy.
func (p *EntityPool) Entities() []EntityID {
	out := make([]EntityID, len(p.order))
	copy(out, p.order)
	return out
}

func (p *EntityPool) Destroy(id EntityID) {
	if _, ok := p.alive[id]; !ok {
		return // already destroyed (stale reference)
	}
	delete(p.alive, id)
	for i, e := range p.order {
		if e == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// restorePool rebuilds a pool from persisted state. Callers validate first.
func restorePool(next EntityID, ids []EntityID) *EntityPool {
	p := &EntityPool{
		nextID: next,
		order:  make([]EntityID, len(ids), len(ids)+256),
		alive:  make(map[EntityID]struct{}, len(ids)),
	}
	copy(p.order, ids)
	for _, id := range ids {
		p.alive[id] = struct{}{}
	}
	return p
}
