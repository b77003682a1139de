package system

import (
	"go.uber.org/zap"

	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/config"
	"github.com/ld49/drift/internal/core/ecs"
	coresys "github.com/ld49/drift/internal/core/system"
	"github.com/ld49/drift/internal/resource"
	"github.com/ld49/drift/internal/scripting"
)

// PlayerCollisionSystem tests every player against every other collider.
// Asteroids drain health for as long as they overlap; a repair pack heals
// once and is consumed. The check is a plain O(n²) sweep.
type PlayerCollisionSystem struct {
	cfg config.CollisionConfig
	lua *scripting.Engine // nil or without asteroid_damage: use cfg
	log *zap.Logger

	players    *ecs.Store[component.Player]
	transforms *ecs.Store[component.Transform]
	colliders  *ecs.Store[component.Collider]
	velocities *ecs.Store[component.Velocity]
}

func NewPlayerCollisionSystem(cfg config.CollisionConfig, lua *scripting.Engine, log *zap.Logger) *PlayerCollisionSystem {
	return &PlayerCollisionSystem{cfg: cfg, lua: lua, log: log}
}

func (s *PlayerCollisionSystem) Access() coresys.Access {
	return coresys.NewAccess().
		Read(
			ecs.TypeOf[resource.DeltaTime](),
			ecs.TypeOf[component.Transform](),
			ecs.TypeOf[component.Collider](),
			ecs.TypeOf[component.Velocity](),
		).
		Write(ecs.TypeOf[component.Player]())
}

func (s *PlayerCollisionSystem) Setup(w *ecs.World) error {
	s.players = ecs.Storage[component.Player](w)
	s.transforms = ecs.Storage[component.Transform](w)
	s.colliders = ecs.Storage[component.Collider](w)
	s.velocities = ecs.Storage[component.Velocity](w)
	if s.lua != nil && !s.lua.Defines("asteroid_damage") {
		s.lua = nil
	}
	return nil
}

func (s *PlayerCollisionSystem) Run(w *ecs.World) error {
	dt := ecs.Fetch[resource.DeltaTime](w).Seconds

	ecs.Each3(s.players, s.transforms, s.colliders,
		func(self ecs.EntityID, p *component.Player, tr *component.Transform, c *component.Collider) {
			box := c.WorldBox(*tr)
			ecs.Each2(s.transforms, s.colliders,
				func(other ecs.EntityID, otr *component.Transform, oc *component.Collider) {
					if other == self || !box.Intersect(oc.WorldBox(*otr)) {
						return
					}
					switch oc.Tag {
					case component.ColliderAsteroid:
						p.Damage(s.damage(self, p, otr) * dt)
					case component.ColliderHealth:
						if w.Delete(other) {
							p.Heal(s.cfg.HealAmount)
							s.log.Debug("repair pack collected",
								zap.Stringer("player", self),
								zap.Float32("health", p.Health))
						}
					}
				})
		})
	return nil
}

func (s *PlayerCollisionSystem) damage(self ecs.EntityID, p *component.Player, asteroid *component.Transform) float32 {
	if s.lua == nil {
		return s.cfg.AsteroidDamage
	}
	var speed float32
	if v, ok := s.velocities.Get(self); ok {
		speed = v.Speed
	}
	return s.lua.AsteroidDamage(scripting.DamageContext{
		Health:       p.Health,
		PlayerSpeed:  speed,
		AsteroidSize: asteroid.Scale[0],
		Base:         s.cfg.AsteroidDamage,
	})
}
