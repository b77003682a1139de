package system

import (
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/config"
	"github.com/ld49/drift/internal/core/ecs"
	coresys "github.com/ld49/drift/internal/core/system"
	"github.com/ld49/drift/internal/data"
	"github.com/ld49/drift/internal/resource"
	"github.com/ld49/drift/internal/scripting"
)

// Scripted speeds can fall below min_speed; keep those rocks visible.
const minAsteroidScale = 10

// AsteroidSpawnerSystem drops an asteroid in from the top edge every spawn
// period while a run is in progress.
type AsteroidSpawnerSystem struct {
	cfg     config.AsteroidConfig
	sprites *data.SpriteTable
	lua     *scripting.Engine
	rng     *rand.Rand
	noise   *perlin.Perlin // nil for the uniform pattern
	timer   cooldown

	elapsed float32 // run time, drives the perlin pattern and scripts
	spawned int
}

func NewAsteroidSpawnerSystem(cfg config.AsteroidConfig, sprites *data.SpriteTable, lua *scripting.Engine) *AsteroidSpawnerSystem {
	s := &AsteroidSpawnerSystem{
		cfg:     cfg,
		sprites: sprites,
		lua:     lua,
		rng:     newRand(cfg.Seed),
		timer:   newCooldown(cfg.SpawnTimeout),
	}
	if cfg.Pattern == "perlin" {
		s.noise = perlin.NewPerlin(2, 2, 3, s.rng.Int64())
	}
	return s
}

func (s *AsteroidSpawnerSystem) Access() coresys.Access {
	return coresys.NewAccess().Read(
		ecs.TypeOf[resource.DeltaTime](),
		ecs.TypeOf[resource.GameState](),
		ecs.TypeOf[resource.GameWindowSize](),
	)
}

func (s *AsteroidSpawnerSystem) Setup(*ecs.World) error {
	if s.lua != nil && !s.lua.Defines("asteroid_spawn") {
		s.lua = nil
	}
	return nil
}

func (s *AsteroidSpawnerSystem) Run(w *ecs.World) error {
	if !ecs.Fetch[resource.GameState](w).Playing() {
		s.timer.reset()
		s.elapsed, s.spawned = 0, 0
		return nil
	}
	dt := ecs.Fetch[resource.DeltaTime](w).Seconds
	s.elapsed += dt
	if !s.timer.tick(dt) {
		return nil
	}
	size := ecs.Fetch[resource.GameWindowSize](w)
	s.spawn(w.Commands(), s.roll(*size), float32(size.Height))
	return nil
}

// roll draws the random parameters of the next asteroid.
func (s *AsteroidSpawnerSystem) roll(size resource.GameWindowSize) scripting.AsteroidSpawn {
	hw, _ := size.Half()
	a := scripting.AsteroidSpawn{
		X:      s.x(hw),
		DirX:   uniform(s.rng, -0.1, 0.1),
		Speed:  uniform(s.rng, s.cfg.MinSpeed, s.cfg.MaxSpeed),
		Spin:   uniform(s.rng, 0.1, 5),
		Sprite: s.rng.IntN(len(s.sprites.Asteroids)),
	}
	if s.lua != nil {
		a = s.lua.AsteroidSpawn(scripting.SpawnContext{
			Width:    float32(size.Width),
			Height:   float32(size.Height),
			Elapsed:  s.elapsed,
			Spawned:  s.spawned,
			Variants: len(s.sprites.Asteroids),
		}, a)
	}
	return a
}

func (s *AsteroidSpawnerSystem) x(halfWidth float32) float32 {
	if s.noise == nil {
		return uniform(s.rng, -halfWidth, halfWidth)
	}
	n := s.noise.Noise1D(float64(s.elapsed) * 0.25)
	return float32(min(max(n*2, -1), 1)) * halfWidth
}

func (s *AsteroidSpawnerSystem) spawn(cmds *ecs.Commands, a scripting.AsteroidSpawn, top float32) {
	scale := max(100-(s.cfg.MaxSpeed-a.Speed)*10, minAsteroidScale)
	dir := mgl32.Vec2{a.DirX, -1}.Normalize()

	id := cmds.Create()
	ecs.InsertLater(cmds, id, component.Transform{
		Position: mgl32.Vec2{a.X, top},
		Scale:    mgl32.Vec2{scale, scale},
	})
	ecs.InsertLater(cmds, id, component.Velocity{Direction: dir, Speed: a.Speed})
	ecs.InsertLater(cmds, id, component.Display{Sprite: s.sprites.Asteroid(a.Sprite)})
	ecs.InsertLater(cmds, id, component.NewCollider(component.ColliderAsteroid))
	ecs.InsertLater(cmds, id, component.Lifetime{Remaining: 10 * a.Speed})
	ecs.InsertLater(cmds, id, component.Spinner{Speed: a.Spin})
	s.spawned++
}
