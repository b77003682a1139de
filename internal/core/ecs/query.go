package ecs

type keyed interface {
	Len() int
	keys() []EntityID
}

func (s *Store[T]) keys() []EntityID { return s.entities }

// driver picks the smallest store to walk; the others are probed by id.
func driver(stores ...keyed) []EntityID {
	best := stores[0]
	for _, s := range stores[1:] {
		if s.Len() < best.Len() {
			best = s
		}
	}
	return best.keys()
}

func excluded(id EntityID, without []Filter) bool {
	for _, f := range without {
		if f.Has(id) {
			return true
		}
	}
	return false
}

// Without builds the negated filters accepted by the Each helpers.
func Without(stores ...Filter) []Filter { return stores }

// Each2 iterates over live entities that have both component A and B and none
// of the without stores. It walks the smaller store and probes the larger one.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B), without ...Filter) {
	for _, id := range driver(sa, sb) {
		a, ok := sa.Get(id)
		if !ok {
			continue
		}
		b, ok := sb.Get(id)
		if !ok || excluded(id, without) {
			continue
		}
		fn(id, a, b)
	}
}

// Each3 iterates over live entities that have components A, B, and C.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C), without ...Filter) {
	for _, id := range driver(sa, sb, sc) {
		a, ok := sa.Get(id)
		if !ok {
			continue
		}
		b, ok := sb.Get(id)
		if !ok {
			continue
		}
		c, ok := sc.Get(id)
		if !ok || excluded(id, without) {
			continue
		}
		fn(id, a, b, c)
	}
}

// Each4 iterates over live entities that have components A, B, C, and D.
func Each4[A, B, C, D any](sa *Store[A], sb *Store[B], sc *Store[C], sd *Store[D], fn func(EntityID, *A, *B, *C, *D), without ...Filter) {
	for _, id := range driver(sa, sb, sc, sd) {
		a, ok := sa.Get(id)
		if !ok {
			continue
		}
		b, ok := sb.Get(id)
		if !ok {
			continue
		}
		c, ok := sc.Get(id)
		if !ok {
			continue
		}
		d, ok := sd.Get(id)
		if !ok || excluded(id, without) {
			continue
		}
		fn(id, a, b, c, d)
	}
}
