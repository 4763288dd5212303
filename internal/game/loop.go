package game

import (
	"context"
	"time"

	"github.com/MTvrimPossible/simulation-game/internal/core/event"
	"github.com/MTvrimPossible/simulation-game/internal/data"
	"github.com/MTvrimPossible/simulation-game/internal/persist"
	"github.com/MTvrimPossible/simulation-game/internal/rules"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// Slots saves and loads the whole world. *persist.SaveLoad implements it.
type Slots interface {
	Save(ctx context.Context, w *world.World) (persist.Status, error)
	Load(ctx context.Context, w *world.World) (persist.Status, error)
}

// LoopConfig carries the loop's collaborators. Slots and Renderers are
// optional.
type LoopConfig struct {
	World     *world.World
	Input     InputSource
	Renderers []Renderer
	Slots     Slots
	Spawner   *Spawner
	Pipeline  Pipeline
	Dialogue  *data.DialogueTable
	Evaluator *rules.Evaluator
	PollRate  time.Duration
	Log       *zap.Logger
}

// Loop is the single goroutine that owns the world. One accepted action is
// exactly one turn; commands and rejected input consume none.
type Loop struct {
	cfg LoopConfig
	w   *world.World
	log *zap.Logger

	status string
	convo  *Conversation
	over   bool
	dirty  bool

	dialogue event.Queue[event.DialogueRequestedEvent]
	respawn  event.Queue[event.RespawnRequestedEvent]
	gameOver event.Queue[event.GameOverEvent]
	notices  event.Queue[event.NoticeEvent]
}

func NewLoop(cfg LoopConfig) *Loop {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.PollRate <= 0 {
		cfg.PollRate = 50 * time.Millisecond
	}
	l := &Loop{
		cfg:    cfg,
		w:      cfg.World,
		log:    cfg.Log,
		status: "Welcome.",
		dirty:  true,
	}
	bus := l.w.Bus()
	event.Enqueue(bus, event.DialogueRequested, &l.dialogue)
	event.Enqueue(bus, event.RespawnRequested, &l.respawn)
	event.Enqueue(bus, event.GameOver, &l.gameOver)
	event.Enqueue(bus, event.Notice, &l.notices)
	return l
}

func (l *Loop) Status() string       { return l.status }
func (l *Loop) Over() bool           { return l.over }
func (l *Loop) InConversation() bool { return l.convo != nil }

// Run polls input every PollRate until ctx is done or a quit command
// arrives, then writes a final autosave.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.cfg.PollRate)
	defer ticker.Stop()

	l.render()
	for {
		select {
		case <-ctx.Done():
			l.shutdown()
			return nil
		case <-ticker.C:
			if quit := l.Step(ctx); quit {
				l.shutdown()
				return nil
			}
			if l.dirty {
				l.render()
			}
		}
	}
}

// Step handles at most one pending input. It reports whether the player
// asked to quit.
func (l *Loop) Step(ctx context.Context) bool {
	in, ok := l.cfg.Input.Poll()
	if !ok {
		return false
	}
	if in.Command != CommandNone {
		return l.command(ctx, in.Command)
	}
	if l.over {
		l.setStatus("Game over. Load a save or quit.")
		return false
	}
	if l.w.Paused {
		l.setStatus("Paused.")
		return false
	}
	if l.convo != nil {
		l.converse(in)
		return false
	}
	if in.Action.Kind == world.ActionNone {
		return false
	}
	l.advance(in.Action)
	return false
}

func (l *Loop) command(ctx context.Context, c Command) bool {
	switch c {
	case CommandQuit:
		l.log.Info("quit requested", zap.Int64("turn", l.w.Turn))
		return true
	case CommandPause:
		l.w.Paused = !l.w.Paused
		if l.w.Paused {
			l.setStatus("Paused.")
		} else {
			l.setStatus("Resumed.")
		}
	case CommandSave:
		if l.cfg.Slots == nil {
			l.setStatus("Saving is disabled.")
			return false
		}
		st, _ := l.cfg.Slots.Save(ctx, l.w)
		l.setStatus(st.Message)
	case CommandLoad:
		if l.cfg.Slots == nil {
			l.setStatus("Saving is disabled.")
			return false
		}
		st, _ := l.cfg.Slots.Load(ctx, l.w)
		if st.OK {
			l.convo = nil
			l.over = false
			l.resetQueues()
		}
		l.setStatus(st.Message)
	}
	return false
}

func (l *Loop) converse(in Input) {
	switch {
	case in.Action.Kind == world.ActionCancel:
		l.convo = nil
		l.setStatus("")
		return
	case in.Choice == 0 && in.Action.Kind != world.ActionConfirm:
		return
	}
	choice := in.Choice
	if choice == 0 {
		choice = 1
	}
	done, ok := l.convo.Choose(l.w, choice)
	if !ok {
		l.setStatus("No such option.")
		return
	}
	if done {
		l.convo = nil
	}
	// Talking takes time; this also lets reputation apply the choice.
	l.advance(world.Action{})
}

func (l *Loop) advance(a world.Action) {
	l.w.Action = a
	l.w.UpdateSystems(1)
	l.w.Action = world.Action{}
	l.dirty = true
	l.afterTurn()
}

// afterTurn reacts to what the systems announced this turn.
func (l *Loop) afterTurn() {
	for _, n := range l.notices.Drain() {
		l.status = n.Text
	}
	for _, req := range l.dialogue.Drain() {
		if l.convo != nil || l.cfg.Dialogue == nil {
			continue
		}
		l.convo = StartConversation(l.cfg.Dialogue, req, l.cfg.Evaluator, l.log.Named("dialogue"))
	}
	for _, ev := range l.respawn.Drain() {
		if l.cfg.Spawner == nil {
			continue
		}
		l.cfg.Spawner.Respawn(l.w, ev.Previous)
		if l.cfg.Pipeline.Mortality != nil {
			l.cfg.Pipeline.Mortality.Reset()
		}
		l.convo = nil
		l.status = "You died. A new life begins."
	}
	for _, ev := range l.gameOver.Drain() {
		l.over = true
		l.convo = nil
		l.status = "Game over: " + ev.Reason
		l.log.Info("game over", zap.String("reason", ev.Reason), zap.Int64("turn", l.w.Turn))
	}
}

func (l *Loop) resetQueues() {
	l.dialogue.Reset()
	l.respawn.Reset()
	l.gameOver.Reset()
	l.notices.Reset()
}

func (l *Loop) setStatus(s string) {
	l.status = s
	l.dirty = true
}

// Frame is what the next render would draw.
func (l *Loop) Frame() Frame {
	var lines []string
	if l.convo != nil {
		lines = l.convo.Lines(l.w)
	}
	f := BuildFrame(l.w, l.status, lines)
	f.Over = l.over
	return f
}

func (l *Loop) render() {
	f := l.Frame()
	for _, r := range l.cfg.Renderers {
		if err := r.Render(f); err != nil {
			l.log.Warn("render failed", zap.Error(err))
		}
	}
	l.dirty = false
}

func (l *Loop) shutdown() {
	if l.cfg.Pipeline.Autosave != nil {
		l.cfg.Pipeline.Autosave.Save(l.w)
	}
	l.log.Info("loop stopped", zap.Int64("turn", l.w.Turn))
}
