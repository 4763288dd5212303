package component

import "github.com/MTvrimPossible/simulation-game/internal/core/ecs"

// Persistent component names. Changing one breaks existing save slots.
const (
	TypePosition         ecs.ComponentType = "Position"
	TypeDestination      ecs.ComponentType = "Destination"
	TypeVisual           ecs.ComponentType = "Visual"
	TypeNeeds            ecs.ComponentType = "Needs"
	TypeIrreversibleLoad ecs.ComponentType = "IrreversibleLoad"
	TypeInventory        ecs.ComponentType = "Inventory"
	TypeItem             ecs.ComponentType = "Item"
	TypeDialogue         ecs.ComponentType = "Dialogue"
	TypeSchedule         ecs.ComponentType = "Schedule"
	TypeQuest            ecs.ComponentType = "Quest"
	TypeCurrency         ecs.ComponentType = "Currency"
	TypeVendor           ecs.ComponentType = "Vendor"
	TypeContagion        ecs.ComponentType = "Contagion"
	TypeReputation       ecs.ComponentType = "Reputation"
	TypeAmenity          ecs.ComponentType = "Amenity"
)

// RegisterAll declares every component kind on the store.
func RegisterAll(w *ecs.World) {
	ecs.Register[Position](w, TypePosition)
	ecs.Register[Destination](w, TypeDestination)
	ecs.Register[Visual](w, TypeVisual)
	ecs.Register[Needs](w, TypeNeeds)
	ecs.Register[IrreversibleLoad](w, TypeIrreversibleLoad)
	ecs.Register[Inventory](w, TypeInventory)
	ecs.Register[Item](w, TypeItem)
	ecs.Register[Dialogue](w, TypeDialogue)
	ecs.Register[Schedule](w, TypeSchedule)
	ecs.Register[Quest](w, TypeQuest)
	ecs.Register[Currency](w, TypeCurrency)
	ecs.Register[Vendor](w, TypeVendor)
	ecs.Register[Contagion](w, TypeContagion)
	ecs.Register[Reputation](w, TypeReputation)
	ecs.Register[Amenity](w, TypeAmenity)
}
