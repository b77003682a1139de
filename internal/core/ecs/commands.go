package ecs

import "sync"

// CommandKind tags a deferred operation.
type CommandKind uint8

const (
	CmdCreateEntity CommandKind = iota
	CmdInsertComponent
	CmdRemoveComponent
	CmdDeleteEntity
)

func (k CommandKind) String() string {
	switch k {
	case CmdCreateEntity:
		return "create"
	case CmdInsertComponent:
		return "insert"
	case CmdRemoveComponent:
		return "remove"
	case CmdDeleteEntity:
		return "delete"
	}
	return "unknown"
}

type command struct {
	kind   CommandKind
	entity EntityID
	apply  func(w *World)
}

// Commands buffers structural changes requested while systems iterate. None of
// them touch a store until World.Maintain, which applies them in enqueue
// order. Safe for concurrent use by the systems of one stage.
type Commands struct {
	mu    sync.Mutex
	pool  *EntityPool
	queue []command
}

func newCommands(pool *EntityPool) *Commands {
	return &Commands{
		pool:  pool,
		queue: make([]command, 0, 64),
	}
}

func (c *Commands) push(cmd command) {
	c.mu.Lock()
	c.queue = append(c.queue, cmd)
	c.mu.Unlock()
}

// Create reserves an entity id now. The entity is alive but owns no
// components until the queued inserts are applied.
func (c *Commands) Create() EntityID {
	id := c.pool.Create()
	c.push(command{kind: CmdCreateEntity, entity: id})
	return id
}

// Delete queues id for deletion at maintain.
func (c *Commands) Delete(id EntityID) {
	c.push(command{kind: CmdDeleteEntity, entity: id, apply: func(w *World) {
		w.Delete(id)
	}})
}

// Len returns the number of pending commands.
func (c *Commands) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Pending returns the kinds of the queued commands in order.
func (c *Commands) Pending() []CommandKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	kinds := make([]CommandKind, len(c.queue))
	for i, cmd := range c.queue {
		kinds[i] = cmd.kind
	}
	return kinds
}

// apply runs and clears the queue. Inserts aimed at entities that died in the
// meantime are dropped.
func (c *Commands) apply(w *World) int {
	c.mu.Lock()
	queue := c.queue
	c.queue = make([]command, 0, cap(queue))
	c.mu.Unlock()

	for _, cmd := range queue {
		if cmd.apply != nil {
			cmd.apply(w)
		}
	}
	return len(queue)
}

// InsertLater queues comp for attachment to id.
func InsertLater[T any](c *Commands, id EntityID, comp T) {
	c.push(command{kind: CmdInsertComponent, entity: id, apply: func(w *World) {
		if !w.Alive(id) {
			return
		}
		Storage[T](w).Insert(id, comp)
	}})
}

// RemoveLater queues removal of id's T component.
func RemoveLater[T any](c *Commands, id EntityID) {
	c.push(command{kind: CmdRemoveComponent, entity: id, apply: func(w *World) {
		Storage[T](w).Remove(id)
	}})
}
