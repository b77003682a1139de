package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on delete.
type Removable interface {
	Remove(id EntityID)
}

// Filter is the membership test used by negated joins.
type Filter interface {
	Has(id EntityID) bool
}

// Store is a sparse-set store for one component type. Values live in a dense
// slice in insertion order; Remove swaps the last value into the hole. Pointers
// returned by Get and Each stay valid until the next Insert or Remove, which
// during a tick only happen at maintain.
type Store[T any] struct {
	dense    []T
	entities []EntityID
	index    map[EntityID]int
	alive    func(EntityID) bool
}

// NewStore returns a detached store. Stores created through Register share the
// World's entity pool and hide entities that have been deleted.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		dense:    make([]T, 0, 64),
		entities: make([]EntityID, 0, 64),
		index:    make(map[EntityID]int, 64),
	}
}

// Insert attaches c to id, replacing any previous value.
func (s *Store[T]) Insert(id EntityID, c T) {
	if i, ok := s.index[id]; ok {
		s.dense[i] = c
		return
	}
	s.index[id] = len(s.dense)
	s.dense = append(s.dense, c)
	s.entities = append(s.entities, id)
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok || !s.isAlive(id) {
		return nil, false
	}
	return &s.dense[i], true
}

func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.dense) - 1
	if i != last {
		s.dense[i] = s.dense[last]
		s.entities[i] = s.entities[last]
		s.index[s.entities[i]] = i
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.entities = s.entities[:last]
	delete(s.index, id)
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok && s.isAlive(id)
}

// Len counts stored values, including those of deleted entities that maintain
// has not released yet.
func (s *Store[T]) Len() int {
	return len(s.dense)
}

func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := 0; i < len(s.dense); i++ {
		id := s.entities[i]
		if !s.isAlive(id) {
			continue
		}
		fn(id, &s.dense[i])
	}
}

func (s *Store[T]) isAlive(id EntityID) bool {
	return s.alive == nil || s.alive(id)
}
