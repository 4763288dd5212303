package world

// ActionKind is one discrete player input.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionWait
	ActionPickUp
	ActionUse
	ActionConfirm
	ActionCancel
)

var actionNames = map[ActionKind]string{
	ActionNone:      "NONE",
	ActionMoveUp:    "MOVE_UP",
	ActionMoveDown:  "MOVE_DOWN",
	ActionMoveLeft:  "MOVE_LEFT",
	ActionMoveRight: "MOVE_RIGHT",
	ActionWait:      "WAIT",
	ActionPickUp:    "PICK_UP",
	ActionUse:       "USE",
	ActionConfirm:   "CONFIRM",
	ActionCancel:    "CANCEL",
}

func (k ActionKind) String() string {
	if s, ok := actionNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Action is the most recent input handed to the scheduler for one turn.
// Slot is the inventory index for ActionUse.
type Action struct {
	Kind ActionKind
	Slot int
}

// Delta returns the movement vector of a move action.
func (a Action) Delta() (dx, dy int, ok bool) {
	switch a.Kind {
	case ActionMoveUp:
		return 0, -1, true
	case ActionMoveDown:
		return 0, 1, true
	case ActionMoveLeft:
		return -1, 0, true
	case ActionMoveRight:
		return 1, 0, true
	}
	return 0, 0, false
}
