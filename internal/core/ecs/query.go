package ecs

// Query returns, in creation order, every live entity that holds all of the
// named component types. It is evaluated at call time; nothing is cached.
// An unknown type matches nobody. An empty type list matches every entity.
func (w *World) Query(types ...ComponentType) []EntityID {
	stores := make([]Storage, 0, len(types))
	for _, name := range types {
		s, ok := w.registry.Lookup(name)
		if !ok || s.Len() == 0 {
			return nil
		}
		stores = append(stores, s)
	}

	var result []EntityID
	for _, id := range w.pool.order {
		if matchAll(stores, id) {
			result = append(result, id)
		}
	}
	return result
}

func matchAll(stores []Storage, id EntityID) bool {
	for _, s := range stores {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// Each2 visits, in creation order, entities that have both component A and B.
func Each2[A, B any](w *World, fn func(EntityID, *A, *B)) {
	sa, sb := StoreOf[A](w), StoreOf[B](w)
	for _, id := range w.Query(sa.Type(), sb.Type()) {
		a, _ := sa.Get(id)
		b, _ := sb.Get(id)
		fn(id, a, b)
	}
}
