package ecs

import "reflect"

// TypeOf returns the key under which stores, resources and access sets refer
// to T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Registry tracks all component stores by type and supports bulk cleanup on
// entity delete.
type Registry struct {
	byType map[reflect.Type]Removable
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]Removable, 16),
		stores: make([]Removable, 0, 16),
	}
}

// Register adds a component store to the registry. A second store for the
// same type is ignored and the first one returned.
func (r *Registry) Register(t reflect.Type, store Removable) Removable {
	if s, ok := r.byType[t]; ok {
		return s
	}
	r.byType[t] = store
	r.stores = append(r.stores, store)
	return store
}

func (r *Registry) Lookup(t reflect.Type) (Removable, bool) {
	s, ok := r.byType[t]
	return s, ok
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}

// Len returns the number of registered component types.
func (r *Registry) Len() int {
	return len(r.stores)
}

// Resources holds at most one value per type. Values are stored by pointer so
// systems mutate them in place.
type Resources struct {
	items map[reflect.Type]any
}

func NewResources() *Resources {
	return &Resources{items: make(map[reflect.Type]any, 16)}
}

func (r *Resources) has(t reflect.Type) bool {
	_, ok := r.items[t]
	return ok
}
