package system

import (
	"reflect"

	"github.com/ld49/drift/internal/core/ecs"
)

// System is the interface every ECS system implements.
//
// Setup runs once, before the first dispatch: register stores, insert missing
// resources, and open event readers there. Run executes once per dispatch and
// must only touch the types named in Access.
type System interface {
	Access() Access
	Setup(w *ecs.World) error
	Run(w *ecs.World) error
}

// Access is a system's declared borrow set over component and resource types.
// The entity pool and the command buffer are internally synchronized and need
// no declaration.
type Access struct {
	Reads  []reflect.Type
	Writes []reflect.Type
}

// NewAccess returns an empty borrow set.
func NewAccess() Access { return Access{} }

// Read returns a copy of a with the listed types added as shared borrows.
func (a Access) Read(types ...reflect.Type) Access {
	a.Reads = append(append([]reflect.Type(nil), a.Reads...), types...)
	return a
}

// Write returns a copy of a with the listed types added as exclusive borrows.
func (a Access) Write(types ...reflect.Type) Access {
	a.Writes = append(append([]reflect.Type(nil), a.Writes...), types...)
	return a
}

func contains(types []reflect.Type, t reflect.Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// Conflicts reports whether a and b may not run at the same time: any write
// collides with any other access to the same type; reads share freely.
func (a Access) Conflicts(b Access) bool {
	for _, w := range a.Writes {
		if contains(b.Writes, w) || contains(b.Reads, w) {
			return true
		}
	}
	for _, w := range b.Writes {
		if contains(a.Reads, w) {
			return true
		}
	}
	return false
}
