package system

import (
	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/core/ecs"
	coresys "github.com/ld49/drift/internal/core/system"
	"github.com/ld49/drift/internal/resource"
)

// SpinnerSystem turns spinning entities.
type SpinnerSystem struct {
	spinners   *ecs.Store[component.Spinner]
	transforms *ecs.Store[component.Transform]
}

func NewSpinnerSystem() *SpinnerSystem {
	return &SpinnerSystem{}
}

func (s *SpinnerSystem) Access() coresys.Access {
	return coresys.NewAccess().
		Read(ecs.TypeOf[resource.DeltaTime](), ecs.TypeOf[component.Spinner]()).
		Write(ecs.TypeOf[component.Transform]())
}

func (s *SpinnerSystem) Setup(w *ecs.World) error {
	s.spinners = ecs.Storage[component.Spinner](w)
	s.transforms = ecs.Storage[component.Transform](w)
	return nil
}

func (s *SpinnerSystem) Run(w *ecs.World) error {
	dt := ecs.Fetch[resource.DeltaTime](w).Seconds
	ecs.Each2(s.spinners, s.transforms, func(_ ecs.EntityID, sp *component.Spinner, tr *component.Transform) {
		tr.Rotate(sp.Speed * dt)
	})
	return nil
}
