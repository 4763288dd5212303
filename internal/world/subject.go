package world

import (
	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/rules"
)

// Subject is the read-only view of one entity that predicates evaluate.
type Subject struct {
	w  *World
	id ecs.EntityID
}

var _ rules.Capabilities = Subject{}

// Subject returns the predicate view of id. Missing components read as
// absent, never as an error.
func (w *World) Subject(id ecs.EntityID) Subject {
	return Subject{w: w, id: id}
}

func (s Subject) Entity() ecs.EntityID { return s.id }

func (s Subject) HasItem(defID string, count int) bool {
	inv, ok := ecs.Get[component.Inventory](s.w.store, s.id)
	if !ok {
		return false
	}
	n := 0
	for _, it := range inv.Items {
		if it.DefID == defID {
			n++
			if n >= count {
				return true
			}
		}
	}
	return false
}

func (s Subject) Stat(name string) (float64, bool) {
	store := s.w.store
	switch name {
	case "reputation":
		if r, ok := ecs.Get[component.Reputation](store, s.id); ok {
			return float64(r.Value), true
		}
		return 0, false
	case "currency", "money":
		if c, ok := ecs.Get[component.Currency](store, s.id); ok {
			return float64(c.Amount), true
		}
		return 0, false
	case "load":
		if l, ok := ecs.Get[component.IrreversibleLoad](store, s.id); ok {
			return l.Amount, true
		}
		return 0, false
	}
	kind, ok := component.ParseNeed(name)
	if !ok {
		return 0, false
	}
	needs, ok := ecs.Get[component.Needs](store, s.id)
	if !ok {
		return 0, false
	}
	return needs.Values[kind], true
}

func (s Subject) Era() string { return string(s.w.Era) }
