package system

import (
	"math"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// DefaultBeelineThreshold is the gauge value at or below which an NPC drops
// what it is doing and walks to something that satisfies its worst need.
const DefaultBeelineThreshold = 30.0

// needEpsilon absorbs float drift from many small decrements.
const needEpsilon = 1e-9

// NeedsSystem decays every gauge and sends critical NPCs to amenities.
type NeedsSystem struct {
	threshold float64
	log       *zap.Logger
}

func NewNeedsSystem(threshold float64, log *zap.Logger) *NeedsSystem {
	return &NeedsSystem{threshold: threshold, log: log}
}

func (s *NeedsSystem) Name() string { return "needs" }
func (s *NeedsSystem) Required() []ecs.ComponentType {
	return []ecs.ComponentType{component.TypeNeeds}
}

func (s *NeedsSystem) Update(w *world.World, entities []ecs.EntityID, turns int) {
	if turns <= 0 {
		return
	}
	store := w.Store()
	for _, id := range entities {
		needs, ok := ecs.Get[component.Needs](store, id)
		if !ok {
			continue
		}
		Decay(needs, turns)

		if id == w.Player {
			continue
		}
		s.beeline(w, id, needs)
	}
}

// Decay lowers every gauge by rate*turns, never below zero.
func Decay(n *component.Needs, turns int) {
	for i := range n.Values {
		v := n.Values[i] - n.Decay[i]*float64(turns)
		if v < needEpsilon {
			v = 0
		}
		n.Values[i] = v
	}
}

// StrongestNeed returns the lowest gauge. Ties go to the earlier need in
// enumeration order.
func StrongestNeed(n *component.Needs) (component.NeedKind, float64) {
	best, val := component.NeedKind(0), n.Values[0]
	for i := 1; i < int(component.NeedCount); i++ {
		if n.Values[i] < val {
			best, val = component.NeedKind(i), n.Values[i]
		}
	}
	return best, val
}

func (s *NeedsSystem) beeline(w *world.World, id ecs.EntityID, needs *component.Needs) {
	store := w.Store()
	if store.Has(id, component.TypeDestination) {
		return
	}
	pos, ok := ecs.Get[component.Position](store, id)
	if !ok {
		return
	}
	kind, val := StrongestNeed(needs)
	if val > s.threshold {
		return
	}
	target, found := nearestAmenity(w, *pos, kind)
	if !found {
		s.log.Debug("no amenity for need", zap.Uint64("entity", uint64(id)), zap.Stringer("need", kind))
		return
	}
	ecs.Add(store, id, component.Destination{X: target.X, Y: target.Y})
}

// nearestAmenity scans linearly; ties keep the earliest-created amenity.
func nearestAmenity(w *world.World, from component.Position, kind component.NeedKind) (component.Position, bool) {
	var best component.Position
	bestDist := math.MaxInt
	ecs.Each2(w.Store(), func(_ ecs.EntityID, am *component.Amenity, pos *component.Position) {
		satisfies := false
		for _, k := range am.Satisfies {
			if k == kind {
				satisfies = true
				break
			}
		}
		if !satisfies {
			return
		}
		d := abs(pos.X-from.X) + abs(pos.Y-from.Y)
		if d < bestDist {
			bestDist, best = d, *pos
		}
	})
	return best, bestDist != math.MaxInt
}
