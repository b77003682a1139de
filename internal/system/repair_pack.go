package system

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/config"
	"github.com/ld49/drift/internal/core/ecs"
	coresys "github.com/ld49/drift/internal/core/system"
	"github.com/ld49/drift/internal/data"
	"github.com/ld49/drift/internal/resource"
)

// RepairPackSystem keeps at most one repair pack in play. Every spawn period
// the old pack is removed and a fresh one appears somewhere in the middle
// third of the window.
type RepairPackSystem struct {
	cfg     config.RepairConfig
	sprites *data.SpriteTable
	rng     *rand.Rand
	log     *zap.Logger
	timer   cooldown
	pack    ecs.EntityID // zero when no pack is tracked

	players    *ecs.Store[component.Player]
	transforms *ecs.Store[component.Transform]
	colliders  *ecs.Store[component.Collider]
}

func NewRepairPackSystem(cfg config.RepairConfig, sprites *data.SpriteTable, seed int64, log *zap.Logger) *RepairPackSystem {
	return &RepairPackSystem{
		cfg:     cfg,
		sprites: sprites,
		rng:     newRand(seed),
		log:     log,
		timer:   newCooldown(cfg.SpawnTimeout),
	}
}

func (s *RepairPackSystem) Access() coresys.Access {
	return coresys.NewAccess().Read(
		ecs.TypeOf[resource.DeltaTime](),
		ecs.TypeOf[resource.GameState](),
		ecs.TypeOf[resource.GameWindowSize](),
		ecs.TypeOf[component.Player](),
		ecs.TypeOf[component.Transform](),
		ecs.TypeOf[component.Collider](),
	)
}

func (s *RepairPackSystem) Setup(w *ecs.World) error {
	s.players = ecs.Storage[component.Player](w)
	s.transforms = ecs.Storage[component.Transform](w)
	s.colliders = ecs.Storage[component.Collider](w)
	return nil
}

// Pack returns the tracked pack, if any.
func (s *RepairPackSystem) Pack() (ecs.EntityID, bool) {
	return s.pack, !s.pack.IsZero()
}

func (s *RepairPackSystem) Run(w *ecs.World) error {
	switch ecs.Fetch[resource.GameState](w).Phase {
	case resource.PhaseEnd:
		s.drop(w)
		s.timer.reset()
		return nil
	case resource.PhaseInit:
		s.timer.reset()
		return nil
	}

	if s.timer.tick(ecs.Fetch[resource.DeltaTime](w).Seconds) {
		s.drop(w)
		s.spawn(w.Commands(), *ecs.Fetch[resource.GameWindowSize](w))
		return nil
	}

	if s.pack.IsZero() {
		return nil
	}
	if !w.Alive(s.pack) {
		s.pack = 0
		return nil
	}
	if s.touched() {
		s.drop(w)
	}
	return nil
}

// touched reports whether any player overlaps the tracked pack. A pack whose
// components are still queued is never touched.
func (s *RepairPackSystem) touched() bool {
	tr, ok := s.transforms.Get(s.pack)
	if !ok {
		return false
	}
	c, ok := s.colliders.Get(s.pack)
	if !ok {
		return false
	}
	box := c.WorldBox(*tr)
	hit := false
	ecs.Each3(s.players, s.transforms, s.colliders,
		func(_ ecs.EntityID, _ *component.Player, ptr *component.Transform, pc *component.Collider) {
			hit = hit || pc.WorldBox(*ptr).Intersect(box)
		})
	return hit
}

func (s *RepairPackSystem) drop(w *ecs.World) {
	if !s.pack.IsZero() {
		w.Delete(s.pack)
		s.pack = 0
	}
}

func (s *RepairPackSystem) spawn(cmds *ecs.Commands, size resource.GameWindowSize) {
	rx, ry := float32(size.Width)/3, float32(size.Height)/3
	pos := mgl32.Vec2{uniform(s.rng, -rx, rx), uniform(s.rng, -ry, ry)}

	id := cmds.Create()
	ecs.InsertLater(cmds, id, component.Transform{
		Position: pos,
		Scale:    mgl32.Vec2{s.cfg.Scale, s.cfg.Scale},
	})
	ecs.InsertLater(cmds, id, component.Display{Sprite: s.sprites.HealthPack})
	ecs.InsertLater(cmds, id, component.NewCollider(component.ColliderHealth))
	s.pack = id
	s.log.Debug("repair pack spawned", zap.Stringer("pack", id),
		zap.Float32("x", pos[0]), zap.Float32("y", pos[1]))
}
