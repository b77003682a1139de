package system

import (
	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/core/ecs"
	coresys "github.com/ld49/drift/internal/core/system"
	"github.com/ld49/drift/internal/resource"
)

// VelocitySystem moves every entity along its velocity.
type VelocitySystem struct {
	worldScale float32

	transforms *ecs.Store[component.Transform]
	velocities *ecs.Store[component.Velocity]
}

func NewVelocitySystem(worldScale float32) *VelocitySystem {
	return &VelocitySystem{worldScale: worldScale}
}

func (s *VelocitySystem) Access() coresys.Access {
	return coresys.NewAccess().
		Read(ecs.TypeOf[resource.DeltaTime](), ecs.TypeOf[component.Velocity]()).
		Write(ecs.TypeOf[component.Transform]())
}

func (s *VelocitySystem) Setup(w *ecs.World) error {
	s.transforms = ecs.Storage[component.Transform](w)
	s.velocities = ecs.Storage[component.Velocity](w)
	return nil
}

func (s *VelocitySystem) Run(w *ecs.World) error {
	dt := ecs.Fetch[resource.DeltaTime](w).Seconds
	ecs.Each2(s.transforms, s.velocities, func(_ ecs.EntityID, tr *component.Transform, v *component.Velocity) {
		tr.Position = tr.Position.Add(v.Step(dt, s.worldScale))
	})
	return nil
}
