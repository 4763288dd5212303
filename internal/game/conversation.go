package game

import (
	"fmt"

	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/core/event"
	"github.com/MTvrimPossible/simulation-game/internal/data"
	"github.com/MTvrimPossible/simulation-game/internal/rules"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// Conversation walks one dialogue tree between an NPC and the player.
// Options are filtered against the listener each time they are listed.
type Conversation struct {
	tree     *data.DialogueTree
	node     string
	speaker  ecs.EntityID
	listener ecs.EntityID
	eval     *rules.Evaluator
	log      *zap.Logger
}

// StartConversation opens tree at its root. Returns nil for an unknown tree.
func StartConversation(trees *data.DialogueTable, req event.DialogueRequestedEvent, eval *rules.Evaluator, log *zap.Logger) *Conversation {
	tree := trees.Get(req.TreeID)
	if tree == nil {
		log.Debug("unknown dialogue tree", zap.String("tree", req.TreeID))
		return nil
	}
	return &Conversation{
		tree:     tree,
		node:     tree.Root,
		speaker:  req.Speaker,
		listener: req.Listener,
		eval:     eval,
		log:      log,
	}
}

func (c *Conversation) Speaker() ecs.EntityID { return c.speaker }

func (c *Conversation) current() *data.DialogueNode { return c.tree.Nodes[c.node] }

// Options returns the options whose conditions hold for the listener.
func (c *Conversation) Options(w *world.World) []data.DialogueOption {
	n := c.current()
	if n == nil {
		return nil
	}
	subject := w.Subject(c.listener)
	var out []data.DialogueOption
	for _, opt := range n.Options {
		if c.eval.All(opt.Conditions, subject) {
			out = append(out, opt)
		}
	}
	return out
}

// Lines renders the current node as text with numbered options.
func (c *Conversation) Lines(w *world.World) []string {
	n := c.current()
	if n == nil {
		return nil
	}
	lines := []string{n.Text}
	for i, opt := range c.Options(w) {
		lines = append(lines, fmt.Sprintf("  %d) %s", i+1, opt.Text))
	}
	return lines
}

// Choose picks the 1-based choice among the visible options and applies its
// social effects. ok is false for an out-of-range choice. done reports
// that the conversation has ended.
func (c *Conversation) Choose(w *world.World, choice int) (done, ok bool) {
	opts := c.Options(w)
	if choice < 1 || choice > len(opts) {
		// A node without options is a closing line; any key ends it.
		return len(opts) == 0, len(opts) == 0
	}
	opt := opts[choice-1]
	for _, eff := range opt.Effects {
		if eff.Kind != rules.EffectSocial {
			c.log.Debug("dialogue effect ignored", zap.String("kind", string(eff.Kind)))
			continue
		}
		event.Emit(w.Bus(), event.SocialAction, event.SocialActionEvent{
			Entity: c.listener,
			Kind:   event.SocialKind(eff.Target),
		})
	}
	if opt.Next == "" {
		return true, true
	}
	c.node = opt.Next
	return false, true
}
