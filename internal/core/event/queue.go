package event

// Queue is the private pending-event buffer of a system. Bus handlers Push,
// the owning system Drains during its own Update.
type Queue[T any] struct {
	items []T
}

func (q *Queue[T]) Push(v T) {
	q.items = append(q.items, v)
}

// Drain returns all pending items in arrival order and empties the queue.
func (q *Queue[T]) Drain() []T {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *Queue[T]) Len() int { return len(q.items) }

// Reset discards pending items, e.g. after a world load.
func (q *Queue[T]) Reset() { q.items = nil }

// Enqueue subscribes q to the named event on b.
func Enqueue[T any](b *Bus, name string, q *Queue[T]) {
	On(b, name, q.Push)
}
