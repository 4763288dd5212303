package component

import "github.com/MTvrimPossible/simulation-game/internal/core/ecs"

// OwnerPublic marks an item anyone may take. Entity ids are never zero.
const OwnerPublic ecs.EntityID = 0

// ItemRecord is one item held in an inventory slot.
type ItemRecord struct {
	UID         string       `json:"uid"`
	DefID       string       `json:"defId"`
	Name        string       `json:"name"`
	Owner       ecs.EntityID `json:"owner"`
	Stolen      bool         `json:"stolen,omitempty"`
	StolenTimer int          `json:"stolenTimer,omitempty"`
}

// Inventory is a bounded, ordered list of item records.
type Inventory struct {
	Items    []ItemRecord `json:"items"`
	Capacity int          `json:"capacity"`
}

const DefaultCapacity = 10

// Item tags an entity lying in the world as a pickable item.
type Item struct {
	DefID string       `json:"defId"`
	Name  string       `json:"name"`
	Owner ecs.EntityID `json:"owner"`
}

// Currency is a money balance.
type Currency struct {
	Amount int `json:"amount"`
}

// Vendor is a machine or shopkeeper selling items.
type Vendor struct {
	Stock []StockEntry `json:"stock"`
}

// StockEntry is one line of vendor stock. Quantity only counts down when
// Limited is set.
type StockEntry struct {
	DefID    string `json:"defId"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Limited  bool   `json:"limited,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
}
