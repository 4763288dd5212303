package event

import "github.com/MTvrimPossible/simulation-game/internal/core/ecs"

// Event names.
const (
	ItemConsumed      = "ItemConsumed"
	ItemPickedUp      = "ItemPickedUp"
	SocialAction      = "SocialAction"
	HourChanged       = "HourChanged"
	DayChanged        = "DayChanged"
	DayOfWeekChanged  = "DayOfWeekChanged"
	PurchaseRequested = "PurchaseRequested"
	DialogueRequested = "DialogueRequested"
	PlayerDied        = "PlayerDied"
	RespawnRequested  = "RespawnRequested"
	GameOver          = "GameOver"
	EraChanged        = "EraChanged"
	Notice            = "Notice"
)

// ItemConsumedEvent: an entity used up an inventory item.
type ItemConsumedEvent struct {
	Entity ecs.EntityID
	DefID  string
	UID    string
}

// ItemPickedUpEvent: an item record entered an entity's inventory.
type ItemPickedUpEvent struct {
	Entity ecs.EntityID
	UID    string
}

type SocialKind string

const (
	SocialLie   SocialKind = "lie"
	SocialTruth SocialKind = "truth"
)

type SocialActionEvent struct {
	Entity ecs.EntityID
	Kind   SocialKind
}

type HourChangedEvent struct {
	Hour int
	Day  int
}

type DayChangedEvent struct {
	Day       int
	DayOfWeek int
}

type DayOfWeekChangedEvent struct {
	DayOfWeek int
}

type PurchaseRequestedEvent struct {
	Buyer  ecs.EntityID
	Vendor ecs.EntityID
}

type DialogueRequestedEvent struct {
	Speaker  ecs.EntityID
	Listener ecs.EntityID
	TreeID   string
}

type PlayerDiedEvent struct {
	Entity ecs.EntityID
	Load   float64
	Turn   int64
}

type RespawnRequestedEvent struct {
	Previous ecs.EntityID
}

type GameOverEvent struct {
	Reason string
}

type EraChangedEvent struct {
	From string
	To   string
}

// NoticeEvent is a one-line message for the player's status bar.
type NoticeEvent struct {
	Text string
}
