package system

import (
	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/core/ecs"
	coresys "github.com/ld49/drift/internal/core/system"
	"github.com/ld49/drift/internal/resource"
)

// LifetimeSystem counts down every Lifetime and deletes the entities that run
// out. Deletion takes effect at once; components go at the next maintain.
type LifetimeSystem struct {
	lifetimes *ecs.Store[component.Lifetime]
	expired   []ecs.EntityID
}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

func (s *LifetimeSystem) Access() coresys.Access {
	return coresys.NewAccess().
		Read(ecs.TypeOf[resource.DeltaTime]()).
		Write(ecs.TypeOf[component.Lifetime]())
}

func (s *LifetimeSystem) Setup(w *ecs.World) error {
	s.lifetimes = ecs.Storage[component.Lifetime](w)
	return nil
}

func (s *LifetimeSystem) Run(w *ecs.World) error {
	dt := ecs.Fetch[resource.DeltaTime](w).Seconds
	s.expired = s.expired[:0]
	s.lifetimes.Each(func(id ecs.EntityID, l *component.Lifetime) {
		if l.Tick(dt) {
			s.expired = append(s.expired, id)
		}
	})
	for _, id := range s.expired {
		w.Delete(id)
	}
	return nil
}
