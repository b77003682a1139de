// Package app wires the world, the update and render dispatchers and the
// fixed-step clock into something a frontend can drive.
package app

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ld49/drift/internal/config"
	"github.com/ld49/drift/internal/core/ecs"
	coresys "github.com/ld49/drift/internal/core/system"
	"github.com/ld49/drift/internal/data"
	"github.com/ld49/drift/internal/render"
	"github.com/ld49/drift/internal/resource"
	"github.com/ld49/drift/internal/scripting"
	"github.com/ld49/drift/internal/system"
)

type Options struct {
	Config   *config.Config
	Sprites  *data.SpriteTable // nil = data.DefaultSprites()
	Lua      *scripting.Engine // optional; forces serial dispatch
	Renderer render.Renderer
	Log      *zap.Logger
}

// App owns the simulation. All methods must be called from one goroutine.
type App struct {
	world  *ecs.World
	update *coresys.Dispatcher
	render *coresys.Dispatcher
	clock  *Clock
	log    *zap.Logger
	ticks  uint64
}

func New(opts Options) (*App, error) {
	if opts.Renderer == nil {
		return nil, errors.New("app: no renderer")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	sprites := opts.Sprites
	if sprites == nil {
		sprites = data.DefaultSprites()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	bindings, unknown := resource.NewBindings(cfg.Keys)
	if len(unknown) > 0 {
		log.Warn("ignoring key bindings for unknown actions", zap.Strings("actions", unknown))
	}
	w := ecs.NewWorld()
	resource.Install(w, resource.GameWindowSize{
		Width:  cfg.Game.WindowWidth,
		Height: cfg.Game.WindowHeight,
	}, bindings)

	parallel := cfg.Game.ParallelDispatch && opts.Lua == nil
	if cfg.Game.ParallelDispatch && !parallel {
		log.Info("lua rules loaded, dispatching serially")
	}

	update, err := updateGraph(cfg, sprites, opts.Lua, log).Parallel(parallel).Build()
	if err != nil {
		return nil, fmt.Errorf("build update dispatcher: %w", err)
	}
	rend, err := coresys.NewBuilder().
		Logger(log).
		Add("window_events", render.NewWindowEventSystem(opts.Renderer, log)).
		Add("render", render.NewRenderSystem(opts.Renderer, log), "window_events").
		Build()
	if err != nil {
		return nil, fmt.Errorf("build render dispatcher: %w", err)
	}

	if err := update.Setup(w); err != nil {
		return nil, err
	}
	if err := rend.Setup(w); err != nil {
		return nil, err
	}
	log.Info("dispatchers ready",
		zap.Stringer("update", update),
		zap.Stringer("render", rend),
		zap.Bool("parallel", parallel))

	return &App{
		world:  w,
		update: update,
		render: rend,
		clock:  NewClock(cfg.Game.TickRate, cfg.Game.MaxCatchUp),
		log:    log,
	}, nil
}

// updateGraph declares the per-tick systems and their ordering. Spawners,
// lifetime, spin and background have no ordering needs; the dispatcher slots
// them wherever their access allows.
func updateGraph(cfg *config.Config, sprites *data.SpriteTable, lua *scripting.Engine, log *zap.Logger) *coresys.Builder {
	seed := cfg.Asteroids.Seed
	derived := func(n int64) int64 {
		if seed == 0 {
			return 0
		}
		return seed + n
	}
	return coresys.NewBuilder().
		Logger(log).
		Add("movement", system.NewPlayerMovementSystem(cfg.Player)).
		Add("velocity", system.NewVelocitySystem(cfg.Game.WorldScale), "movement").
		Add("bounds", system.NewPlayerBoundsSystem(), "velocity").
		Add("collision", system.NewPlayerCollisionSystem(cfg.Collision, lua, log), "bounds").
		Add("repair_pack", system.NewRepairPackSystem(cfg.Repair, sprites, derived(2), log), "collision").
		Add("game_manager", system.NewGameManagerSystem(cfg.Player, sprites, log), "collision", "repair_pack").
		Add("asteroid_spawner", system.NewAsteroidSpawnerSystem(cfg.Asteroids, sprites, lua)).
		Add("particle_spawner", system.NewParticleSpawnerSystem(cfg.Particles, sprites, derived(1))).
		Add("lifetime", system.NewLifetimeSystem()).
		Add("spinner", system.NewSpinnerSystem()).
		Add("background", system.NewBackgroundSystem(sprites.BackgroundFrames, cfg.Background.FrameDuration))
}

func (a *App) World() *ecs.World { return a.world }

// PushKey records a key press or release for the next tick.
func (a *App) PushKey(pressed bool, key string) {
	resource.KeyboardEvents(a.world).Write(resource.KeyboardEvent{Pressed: pressed, Key: resource.KeyOf(key)})
}

// PushResize records a window size change for the next frame.
func (a *App) PushResize(width, height uint32) {
	resource.WindowEvents(a.world).Write(resource.WindowEvent{Kind: resource.WindowResize, Width: width, Height: height})
}

// Update runs one fixed tick of length dt and applies its deferred changes.
func (a *App) Update(dt time.Duration) error {
	ecs.Fetch[resource.DeltaTime](a.world).Seconds = float32(dt.Seconds())
	if err := a.update.Dispatch(a.world); err != nil {
		return fmt.Errorf("tick %d: %w", a.ticks, err)
	}
	stats := a.world.Maintain()
	a.ticks++
	if stats.Commands > 0 || stats.Released > 0 {
		a.log.Debug("maintain",
			zap.Uint64("tick", a.ticks),
			zap.Int("commands", stats.Commands),
			zap.Int("released", stats.Released))
	}
	return nil
}

// Render dispatches the render stage once.
func (a *App) Render() error {
	if err := a.render.Dispatch(a.world); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Frame advances the clock by elapsed, runs the ticks that became due and
// renders once. It returns the interpolation alpha of the leftover time.
func (a *App) Frame(elapsed time.Duration) (float32, error) {
	n, alpha := a.clock.Advance(elapsed)
	for i := 0; i < n; i++ {
		if err := a.Update(a.clock.Step()); err != nil {
			return alpha, err
		}
	}
	return alpha, a.Render()
}

// Scene returns a copy of the renderer-facing scene state.
func (a *App) Scene() resource.SceneState {
	return *ecs.Fetch[resource.SceneState](a.world)
}

// State returns a copy of the game state.
func (a *App) State() resource.GameState {
	return *ecs.Fetch[resource.GameState](a.world)
}

func (a *App) Ticks() uint64 { return a.ticks }

// Plan returns the stage layout of the update and render dispatchers.
func (a *App) Plan() (updateStages, renderStages [][]string) {
	return a.update.Stages(), a.render.Stages()
}
