package system

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/config"
	"github.com/ld49/drift/internal/core/ecs"
	"github.com/ld49/drift/internal/core/event"
	coresys "github.com/ld49/drift/internal/core/system"
	"github.com/ld49/drift/internal/resource"
)

// PlayerMovementSystem turns key presses into thrust and steering. The
// current factors persist between ticks until the matching key is released.
type PlayerMovementSystem struct {
	cfg config.PlayerConfig

	acceleration float32 // 1 forward, -brake, 0 coasting
	rotation     float32 // 1 left, -1 right

	keys       *event.Channel[resource.KeyboardEvent]
	reader     *event.Reader
	players    *ecs.Store[component.Player]
	transforms *ecs.Store[component.Transform]
	velocities *ecs.Store[component.Velocity]
}

func NewPlayerMovementSystem(cfg config.PlayerConfig) *PlayerMovementSystem {
	return &PlayerMovementSystem{cfg: cfg}
}

func (s *PlayerMovementSystem) Access() coresys.Access {
	return coresys.NewAccess().
		Read(
			ecs.TypeOf[resource.DeltaTime](),
			ecs.TypeOf[resource.Bindings](),
			ecs.TypeOf[*event.Channel[resource.KeyboardEvent]](),
			ecs.TypeOf[component.Player](),
		).
		Write(
			ecs.TypeOf[component.Transform](),
			ecs.TypeOf[component.Velocity](),
		)
}

func (s *PlayerMovementSystem) Setup(w *ecs.World) error {
	s.keys = resource.KeyboardEvents(w)
	s.reader = s.keys.RegisterReader()
	s.players = ecs.Storage[component.Player](w)
	s.transforms = ecs.Storage[component.Transform](w)
	s.velocities = ecs.Storage[component.Velocity](w)
	return nil
}

func (s *PlayerMovementSystem) Run(w *ecs.World) error {
	dt := ecs.Fetch[resource.DeltaTime](w).Seconds
	bindings := ecs.Fetch[resource.Bindings](w)

	for _, ev := range s.keys.Read(s.reader) {
		s.apply(bindings.Action(ev.Key), ev.Pressed)
	}

	ecs.Each3(s.players, s.transforms, s.velocities,
		func(_ ecs.EntityID, _ *component.Player, tr *component.Transform, v *component.Velocity) {
			v.Speed = min(max(v.Speed+s.cfg.Acceleration*dt*s.acceleration, 0), s.cfg.MaxSpeed)
			if s.acceleration > 0 {
				v.Direction = steer(v.Direction, tr.Facing(), s.cfg.ManeuverSpeed*dt)
			}
			tr.Rotate(s.cfg.RotationSpeed * dt * s.rotation)
		})
	return nil
}

func (s *PlayerMovementSystem) apply(a resource.Action, pressed bool) {
	switch a {
	case resource.ActionAccelerate:
		if pressed {
			s.acceleration = 1
		} else {
			s.acceleration = 0
		}
	case resource.ActionBrake:
		if pressed {
			s.acceleration = -s.cfg.BrakeFactor
		} else {
			s.acceleration = 0
		}
	case resource.ActionRotateLeft:
		if pressed {
			s.rotation = 1
		} else {
			s.rotation = 0
		}
	case resource.ActionRotateRight:
		if pressed {
			s.rotation = -1
		} else {
			s.rotation = 0
		}
	}
}

// Factors reports the current acceleration and rotation factors.
func (s *PlayerMovementSystem) Factors() (float32, float32) {
	return s.acceleration, s.rotation
}

// steer moves dir toward target by t and renormalizes. A degenerate result
// keeps the old direction.
func steer(dir, target mgl32.Vec2, t float32) mgl32.Vec2 {
	next := dir.Add(target.Sub(dir).Mul(t))
	if next.Len() < 1e-6 {
		return dir
	}
	return next.Normalize()
}
