package system

// Runner executes systems in registration order each turn. Registration
// order is the only ordering guarantee; there is no sorting.
type Runner[W any] struct {
	systems []System[W]
}

func NewRunner[W any]() *Runner[W] {
	return &Runner[W]{
		systems: make([]System[W], 0, 16),
	}
}

func (r *Runner[W]) Register(s System[W]) {
	r.systems = append(r.systems, s)
}

// Systems returns the registered systems in execution order.
func (r *Runner[W]) Systems() []System[W] {
	out := make([]System[W], len(r.systems))
	copy(out, r.systems)
	return out
}

// Tick runs every system once. Each system's entity set is queried right
// before its own Update so it observes mutations made earlier in the pass.
func (r *Runner[W]) Tick(w W, q Querier, turns int) {
	for _, s := range r.systems {
		entities := q.Query(s.Required()...)
		s.Update(w, entities, turns)
	}
}

// Reset clears private bookkeeping of every system that has any.
func (r *Runner[W]) Reset() {
	for _, s := range r.systems {
		if rs, ok := s.(Resetter); ok {
			rs.Reset()
		}
	}
}
