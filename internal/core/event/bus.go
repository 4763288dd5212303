package event

import (
	"fmt"

	"go.uber.org/zap"
)

// Handler receives the payload of a published event.
type Handler func(payload any)

// Bus is a synchronous named publish/subscribe channel owned by the World.
// Publish invokes every handler for the name, in subscription order, on the
// caller's stack. There is no queuing at the bus level.
//
// Handlers run outside the owning system's Update and must not mutate the
// component store; they Push onto a Queue that the system drains itself.
type Bus struct {
	handlers map[string][]Handler
	log      *zap.Logger
}

func NewBus(log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the lifetime of the bus.
func (b *Bus) Subscribe(name string, h Handler) {
	b.handlers[name] = append(b.handlers[name], h)
}

// Publish delivers payload to all handlers of name and returns how many ran.
func (b *Bus) Publish(name string, payload any) int {
	hs := b.handlers[name]
	if len(hs) == 0 {
		return 0
	}
	// A handler subscribing during delivery only sees later publishes.
	snapshot := make([]Handler, len(hs))
	copy(snapshot, hs)
	for _, h := range snapshot {
		h(payload)
	}
	return len(snapshot)
}

// On subscribes a typed handler. Payloads of another type are dropped with a
// debug log rather than panicking across the event boundary.
func On[T any](b *Bus, name string, fn func(T)) {
	b.Subscribe(name, func(payload any) {
		v, ok := payload.(T)
		if !ok {
			b.log.Debug("event payload type mismatch",
				zap.String("event", name),
				zap.String("got", fmt.Sprintf("%T", payload)))
			return
		}
		fn(v)
	})
}

// Emit publishes a typed payload. The type parameter keeps publishers and
// On subscribers agreeing on the payload type at compile time.
func Emit[T any](b *Bus, name string, payload T) int {
	return b.Publish(name, payload)
}
