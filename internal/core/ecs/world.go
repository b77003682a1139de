package ecs

import (
	"errors"
	"fmt"
	"sync"
)

// ErrStaleEntity is returned when an operation names an entity that has been
// deleted.
var ErrStaleEntity = errors.New("ecs: stale entity")

// World is the top-level ECS container. It owns the entity pool, one store per
// component type, one slot per resource type, the command buffer, and the
// queue of deleted entities whose components are released at maintain.
//
// Stores and resources must be registered before systems run; registering
// mutates shared maps and is not safe during a dispatch.
type World struct {
	pool      *EntityPool
	registry  *Registry
	resources *Resources
	commands  *Commands

	destroyMu    sync.Mutex
	destroyQueue []EntityID
}

func NewWorld() *World {
	pool := NewEntityPool()
	return &World{
		pool:         pool,
		registry:     NewRegistry(),
		resources:    NewResources(),
		commands:     newCommands(pool),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

// Commands returns the deferred command buffer.
func (w *World) Commands() *Commands { return w.commands }

// CreateEntity allocates an entity immediately. Systems use Commands().Create
// instead so new components stay invisible until maintain.
func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Delete invalidates id at once and queues its components for release at the
// next maintain. Every store hides the entity from this point on, so it is
// safe to call while iterating. Reports false for stale ids.
func (w *World) Delete(id EntityID) bool {
	if !w.pool.Kill(id) {
		return false
	}
	w.destroyMu.Lock()
	w.destroyQueue = append(w.destroyQueue, id)
	w.destroyMu.Unlock()
	return true
}

// MaintainStats reports what a Maintain call did.
type MaintainStats struct {
	Commands int
	Released int
}

// Maintain is the tick's sync point: it applies the command buffer, then
// releases the components and slots of every deleted entity.
func (w *World) Maintain() MaintainStats {
	stats := MaintainStats{Commands: w.commands.apply(w)}

	w.destroyMu.Lock()
	queue := w.destroyQueue
	w.destroyQueue = make([]EntityID, 0, cap(queue))
	w.destroyMu.Unlock()

	for _, id := range queue {
		w.registry.RemoveAll(id)
		w.pool.Release(id)
	}
	stats.Released = len(queue)
	return stats
}

// Register creates the store for T, or returns the existing one.
func Register[T any](w *World) *Store[T] {
	t := TypeOf[T]()
	if s, ok := w.registry.Lookup(t); ok {
		return s.(*Store[T])
	}
	s := NewStore[T]()
	s.alive = w.pool.Alive
	w.registry.Register(t, s)
	return s
}

// Storage returns the store for T. Unregistered types are registered on first
// use, so call it from Setup rather than from Run.
func Storage[T any](w *World) *Store[T] {
	return Register[T](w)
}

// Insert attaches c to id right away. Meant for setup and tests; systems queue
// through InsertLater.
func Insert[T any](w *World, id EntityID, c T) error {
	if !w.Alive(id) {
		return fmt.Errorf("insert %s on %s: %w", TypeOf[T](), id, ErrStaleEntity)
	}
	Storage[T](w).Insert(id, c)
	return nil
}

// InsertResource stores v as the single T resource, replacing any previous
// value, and returns a pointer to the stored copy.
func InsertResource[T any](w *World, v T) *T {
	p := new(T)
	*p = v
	w.resources.items[TypeOf[T]()] = p
	return p
}

// Fetch returns the T resource. A missing resource is a wiring mistake made at
// startup, so it panics.
func Fetch[T any](w *World) *T {
	p, ok := TryFetch[T](w)
	if !ok {
		panic(fmt.Sprintf("ecs: resource %s not inserted", TypeOf[T]()))
	}
	return p
}

func TryFetch[T any](w *World) (*T, bool) {
	v, ok := w.resources.items[TypeOf[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// HasResource reports whether a T resource is present.
func HasResource[T any](w *World) bool {
	return w.resources.has(TypeOf[T]())
}
