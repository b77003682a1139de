package system

import (
	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/core/ecs"
	coresys "github.com/ld49/drift/internal/core/system"
	"github.com/ld49/drift/internal/resource"
)

// PlayerBoundsSystem keeps the player inside the window. Leaving through a
// side bounces the ship off it.
type PlayerBoundsSystem struct {
	players    *ecs.Store[component.Player]
	transforms *ecs.Store[component.Transform]
	velocities *ecs.Store[component.Velocity]
}

func NewPlayerBoundsSystem() *PlayerBoundsSystem {
	return &PlayerBoundsSystem{}
}

func (s *PlayerBoundsSystem) Access() coresys.Access {
	return coresys.NewAccess().
		Read(ecs.TypeOf[resource.GameWindowSize](), ecs.TypeOf[component.Player]()).
		Write(ecs.TypeOf[component.Transform](), ecs.TypeOf[component.Velocity]())
}

func (s *PlayerBoundsSystem) Setup(w *ecs.World) error {
	s.players = ecs.Storage[component.Player](w)
	s.transforms = ecs.Storage[component.Transform](w)
	s.velocities = ecs.Storage[component.Velocity](w)
	return nil
}

func (s *PlayerBoundsSystem) Run(w *ecs.World) error {
	hw, hh := ecs.Fetch[resource.GameWindowSize](w).Half()
	ecs.Each3(s.players, s.transforms, s.velocities,
		func(_ ecs.EntityID, _ *component.Player, tr *component.Transform, v *component.Velocity) {
			x, y := tr.Position[0], tr.Position[1]
			switch {
			case x < -hw || x > hw:
				v.Direction[0] = -v.Direction[0]
			case y < -hh || y > hh:
				v.Direction[1] = -v.Direction[1]
			}
			tr.Position[0] = min(max(x, -hw), hw)
			tr.Position[1] = min(max(y, -hh), hh)
		})
	return nil
}
