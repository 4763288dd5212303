package system

import (
	"fmt"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/core/event"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlayerControlSystem applies the turn's action to the player entity.
// Walking into a vendor or someone with dialogue is an interaction, not a move.
type PlayerControlSystem struct {
	items ItemLookup
	log   *zap.Logger
}

func NewPlayerControlSystem(items ItemLookup, log *zap.Logger) *PlayerControlSystem {
	return &PlayerControlSystem{items: items, log: log}
}

func (s *PlayerControlSystem) Name() string                  { return "player_control" }
func (s *PlayerControlSystem) Required() []ecs.ComponentType { return nil }

func (s *PlayerControlSystem) Update(w *world.World, _ []ecs.EntityID, _ int) {
	player := w.Player
	if player.IsZero() || w.Action.Kind == world.ActionNone {
		return
	}
	pos, ok := ecs.Get[component.Position](w.Store(), player)
	if !ok {
		return
	}

	if dx, dy, ok := w.Action.Delta(); ok {
		s.move(w, player, pos, pos.X+dx, pos.Y+dy)
		return
	}
	switch w.Action.Kind {
	case world.ActionPickUp:
		s.pickUp(w, player, pos)
	case world.ActionUse:
		s.use(w, player, w.Action.Slot)
	}
}

func (s *PlayerControlSystem) move(w *world.World, player ecs.EntityID, pos *component.Position, nx, ny int) {
	store := w.Store()
	for _, other := range w.Query(component.TypePosition) {
		if other == player {
			continue
		}
		op, _ := ecs.Get[component.Position](store, other)
		if op.X != nx || op.Y != ny {
			continue
		}
		if store.Has(other, component.TypeVendor) {
			w.Publish(event.PurchaseRequested, event.PurchaseRequestedEvent{Buyer: player, Vendor: other})
			return
		}
		if d, ok := ecs.Get[component.Dialogue](store, other); ok {
			w.Publish(event.DialogueRequested, event.DialogueRequestedEvent{Speaker: other, Listener: player, TreeID: d.TreeID})
			return
		}
	}
	if !passable(w, nx, ny) {
		return
	}
	pos.X, pos.Y = nx, ny
}

func (s *PlayerControlSystem) pickUp(w *world.World, player ecs.EntityID, pos *component.Position) {
	store := w.Store()
	inv, ok := ecs.Get[component.Inventory](store, player)
	if !ok {
		return
	}
	for _, id := range w.Query(component.TypeItem, component.TypePosition) {
		ip, _ := ecs.Get[component.Position](store, id)
		if ip.X != pos.X || ip.Y != pos.Y {
			continue
		}
		if len(inv.Items) >= inv.Capacity {
			w.Publish(event.Notice, event.NoticeEvent{Text: "Inventory full."})
			return
		}
		it, _ := ecs.Get[component.Item](store, id)
		rec := component.ItemRecord{UID: uuid.NewString(), DefID: it.DefID, Name: it.Name, Owner: it.Owner}
		inv.Items = append(inv.Items, rec)
		store.MarkForDestruction(id)
		w.Publish(event.ItemPickedUp, event.ItemPickedUpEvent{Entity: player, UID: rec.UID})
		w.Publish(event.Notice, event.NoticeEvent{Text: fmt.Sprintf("Picked up %s.", rec.Name)})
		return
	}
}

func (s *PlayerControlSystem) use(w *world.World, player ecs.EntityID, slot int) {
	inv, ok := ecs.Get[component.Inventory](w.Store(), player)
	if !ok || slot < 0 || slot >= len(inv.Items) {
		return
	}
	rec := inv.Items[slot]
	def := s.items.Get(rec.DefID)
	if def == nil || !def.Consumable() {
		w.Publish(event.Notice, event.NoticeEvent{Text: fmt.Sprintf("Nothing happens with %s.", rec.Name)})
		return
	}
	inv.Items = append(inv.Items[:slot], inv.Items[slot+1:]...)
	s.log.Debug("item consumed", zap.String("def", rec.DefID), zap.String("uid", rec.UID))
	w.Publish(event.ItemConsumed, event.ItemConsumedEvent{Entity: player, DefID: rec.DefID, UID: rec.UID})
	w.Publish(event.Notice, event.NoticeEvent{Text: fmt.Sprintf("Used %s.", rec.Name)})
}
