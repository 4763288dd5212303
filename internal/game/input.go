// Package game is the host around the simulation kernel: it polls input,
// advances the world one turn per action, reacts to lifecycle events and
// hands frames to renderers.
package game

import (
	"strconv"
	"strings"
	"sync"

	"github.com/MTvrimPossible/simulation-game/internal/world"
)

// Command is a host-level request that never consumes a turn.
type Command int

const (
	CommandNone Command = iota
	CommandSave
	CommandLoad
	CommandPause
	CommandQuit
)

// Input is one thing the player asked for: an action, a dialogue choice
// (1-based), or a command.
type Input struct {
	Action  world.Action
	Choice  int
	Command Command
}

// InputSource hands the loop the most recent input, if any, and forgets it.
type InputSource interface {
	Poll() (Input, bool)
}

// LatestInput is a single-slot mailbox. Producers on any goroutine Push;
// a newer input overwrites an unread older one.
type LatestInput struct {
	mu      sync.Mutex
	pending Input
	has     bool
}

func NewLatestInput() *LatestInput { return &LatestInput{} }

func (l *LatestInput) Push(in Input) {
	l.mu.Lock()
	l.pending, l.has = in, true
	l.mu.Unlock()
}

func (l *LatestInput) Poll() (Input, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.has {
		return Input{}, false
	}
	in := l.pending
	l.pending, l.has = Input{}, false
	return in, true
}

var actionWords = map[string]world.ActionKind{
	"w": world.ActionMoveUp, "up": world.ActionMoveUp, "arrowup": world.ActionMoveUp, "move_up": world.ActionMoveUp,
	"s": world.ActionMoveDown, "down": world.ActionMoveDown, "arrowdown": world.ActionMoveDown, "move_down": world.ActionMoveDown,
	"a": world.ActionMoveLeft, "left": world.ActionMoveLeft, "arrowleft": world.ActionMoveLeft, "move_left": world.ActionMoveLeft,
	"d": world.ActionMoveRight, "right": world.ActionMoveRight, "arrowright": world.ActionMoveRight, "move_right": world.ActionMoveRight,
	".": world.ActionWait, "wait": world.ActionWait,
	"g": world.ActionPickUp, "get": world.ActionPickUp, "pickup": world.ActionPickUp, "pick_up": world.ActionPickUp,
	"enter": world.ActionConfirm, "confirm": world.ActionConfirm,
	"esc": world.ActionCancel, "escape": world.ActionCancel, "cancel": world.ActionCancel,
}

var commandWords = map[string]Command{
	"save":  CommandSave,
	"load":  CommandLoad,
	"pause": CommandPause,
	"p":     CommandPause,
	"quit":  CommandQuit,
	"q":     CommandQuit,
}

// ParseAction maps a key name or word to an action. "use N" and "u N"
// select inventory slot N, counted from 1.
func ParseAction(s string) (world.Action, bool) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return world.Action{}, false
	}
	if fields[0] == "use" || fields[0] == "u" {
		slot := 1
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 {
				return world.Action{}, false
			}
			slot = n
		}
		return world.Action{Kind: world.ActionUse, Slot: slot - 1}, true
	}
	if len(fields) != 1 {
		return world.Action{}, false
	}
	k, ok := actionWords[fields[0]]
	if !ok {
		return world.Action{}, false
	}
	return world.Action{Kind: k}, true
}

// ParseInput accepts everything ParseAction does plus commands and bare
// digits, which pick a dialogue option.
func ParseInput(s string) (Input, bool) {
	word := strings.ToLower(strings.TrimSpace(s))
	if c, ok := commandWords[word]; ok {
		return Input{Command: c}, true
	}
	if n, err := strconv.Atoi(word); err == nil {
		if n < 1 || n > 9 {
			return Input{}, false
		}
		return Input{Choice: n}, true
	}
	a, ok := ParseAction(word)
	if !ok {
		return Input{}, false
	}
	return Input{Action: a}, true
}
