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

// TradingSystem sells the first available stock line of a vendor to
// whoever bumped into it. There is no selection UI.
type TradingSystem struct {
	pending event.Queue[event.PurchaseRequestedEvent]
	log     *zap.Logger
}

func NewTradingSystem(w *world.World, log *zap.Logger) *TradingSystem {
	s := &TradingSystem{log: log}
	event.Enqueue(w.Bus(), event.PurchaseRequested, &s.pending)
	return s
}

func (s *TradingSystem) Name() string                  { return "trading" }
func (s *TradingSystem) Required() []ecs.ComponentType { return nil }
func (s *TradingSystem) Reset()                        { s.pending.Reset() }

func (s *TradingSystem) Update(w *world.World, _ []ecs.EntityID, _ int) {
	for _, ev := range s.pending.Drain() {
		if msg := s.purchase(w, ev); msg != "" {
			w.Publish(event.Notice, event.NoticeEvent{Text: msg})
		}
	}
}

func (s *TradingSystem) purchase(w *world.World, ev event.PurchaseRequestedEvent) string {
	store := w.Store()
	wallet, ok1 := ecs.Get[component.Currency](store, ev.Buyer)
	vendor, ok2 := ecs.Get[component.Vendor](store, ev.Vendor)
	inv, ok3 := ecs.Get[component.Inventory](store, ev.Buyer)
	if !ok1 || !ok2 || !ok3 {
		s.log.Debug("purchase with missing parties",
			zap.Uint64("buyer", uint64(ev.Buyer)),
			zap.Uint64("vendor", uint64(ev.Vendor)))
		return ""
	}

	idx := -1
	for i, e := range vendor.Stock {
		if !e.Limited || e.Quantity > 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "Machine is empty."
	}
	entry := &vendor.Stock[idx]
	if wallet.Amount < entry.Price {
		return fmt.Sprintf("Need $%d (you have $%d).", entry.Price, wallet.Amount)
	}
	if len(inv.Items) >= inv.Capacity {
		return "Inventory full."
	}

	wallet.Amount -= entry.Price
	inv.Items = append(inv.Items, component.ItemRecord{
		UID:   uuid.NewString(),
		DefID: entry.DefID,
		Name:  entry.Name,
		Owner: ev.Buyer,
	})
	if entry.Limited {
		entry.Quantity--
	}
	s.log.Info("purchase",
		zap.Uint64("buyer", uint64(ev.Buyer)),
		zap.String("item", entry.DefID),
		zap.Int("price", entry.Price))
	return fmt.Sprintf("Purchased %s for $%d. Remaining: $%d.", entry.Name, entry.Price, wallet.Amount)
}
