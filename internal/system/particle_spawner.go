package system

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/config"
	"github.com/ld49/drift/internal/core/ecs"
	coresys "github.com/ld49/drift/internal/core/system"
	"github.com/ld49/drift/internal/data"
	"github.com/ld49/drift/internal/resource"
)

const particleScale = 2

// ParticleSpawnerSystem streams small dust particles down the screen to give
// a sense of motion.
type ParticleSpawnerSystem struct {
	cfg     config.ParticleConfig
	sprites *data.SpriteTable
	rng     *rand.Rand
	timer   cooldown
}

func NewParticleSpawnerSystem(cfg config.ParticleConfig, sprites *data.SpriteTable, seed int64) *ParticleSpawnerSystem {
	return &ParticleSpawnerSystem{
		cfg:     cfg,
		sprites: sprites,
		rng:     newRand(seed),
		timer:   newCooldown(cfg.SpawnTimeout),
	}
}

func (s *ParticleSpawnerSystem) Access() coresys.Access {
	return coresys.NewAccess().Read(
		ecs.TypeOf[resource.DeltaTime](),
		ecs.TypeOf[resource.GameState](),
		ecs.TypeOf[resource.GameWindowSize](),
	)
}

func (s *ParticleSpawnerSystem) Setup(*ecs.World) error { return nil }

func (s *ParticleSpawnerSystem) Run(w *ecs.World) error {
	if !ecs.Fetch[resource.GameState](w).Playing() {
		s.timer.reset()
		return nil
	}
	if !s.timer.tick(ecs.Fetch[resource.DeltaTime](w).Seconds) {
		return nil
	}
	size := ecs.Fetch[resource.GameWindowSize](w)
	hw, _ := size.Half()
	speed := uniform(s.rng, s.cfg.MinSpeed, s.cfg.MaxSpeed)

	cmds := w.Commands()
	id := cmds.Create()
	ecs.InsertLater(cmds, id, component.Transform{
		Position: mgl32.Vec2{uniform(s.rng, -hw, hw), float32(size.Height)},
		Scale:    mgl32.Vec2{particleScale, particleScale},
	})
	ecs.InsertLater(cmds, id, component.Velocity{Direction: mgl32.Vec2{0, -1}, Speed: speed})
	ecs.InsertLater(cmds, id, component.Display{Sprite: s.sprites.Particle})
	ecs.InsertLater(cmds, id, component.Lifetime{Remaining: 10 * speed})
	return nil
}
