package system

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/config"
	"github.com/ld49/drift/internal/core/ecs"
	"github.com/ld49/drift/internal/core/event"
	coresys "github.com/ld49/drift/internal/core/system"
	"github.com/ld49/drift/internal/data"
	"github.com/ld49/drift/internal/resource"
)

// GameManagerSystem drives Init -> Play -> End -> Init. It spawns the player
// on confirm, drains the player's health while playing, ends the run when the
// player is gone or out of health, and keeps the scene's health bar current.
type GameManagerSystem struct {
	drain   float32
	sprites *data.SpriteTable
	log     *zap.Logger
	newRun  func() uuid.UUID

	keys    *event.Channel[resource.KeyboardEvent]
	reader  *event.Reader
	players *ecs.Store[component.Player]
}

func NewGameManagerSystem(cfg config.PlayerConfig, sprites *data.SpriteTable, log *zap.Logger) *GameManagerSystem {
	return &GameManagerSystem{
		drain:   cfg.HealthDrain,
		sprites: sprites,
		log:     log,
		newRun:  uuid.New,
	}
}

func (s *GameManagerSystem) Access() coresys.Access {
	return coresys.NewAccess().
		Read(
			ecs.TypeOf[resource.DeltaTime](),
			ecs.TypeOf[resource.Bindings](),
			ecs.TypeOf[*event.Channel[resource.KeyboardEvent]](),
		).
		Write(
			ecs.TypeOf[resource.GameState](),
			ecs.TypeOf[resource.SceneState](),
			ecs.TypeOf[component.Player](),
		)
}

func (s *GameManagerSystem) Setup(w *ecs.World) error {
	s.keys = resource.KeyboardEvents(w)
	s.reader = s.keys.RegisterReader()
	s.players = ecs.Storage[component.Player](w)
	return nil
}

func (s *GameManagerSystem) Run(w *ecs.World) error {
	dt := ecs.Fetch[resource.DeltaTime](w).Seconds
	bindings := ecs.Fetch[resource.Bindings](w)
	state := ecs.Fetch[resource.GameState](w)
	scene := ecs.Fetch[resource.SceneState](w)

	confirm := false
	for _, ev := range s.keys.Read(s.reader) {
		if ev.Pressed && bindings.Action(ev.Key) == resource.ActionConfirm {
			confirm = true
		}
	}

	switch state.Phase {
	case resource.PhaseInit:
		scene.PlayerHealth = 1
		if confirm {
			id := s.spawnPlayer(w.Commands())
			state.Play(id, s.newRun())
			s.log.Info("run started", zap.Stringer("run", state.Run), zap.Stringer("player", id))
		}

	case resource.PhasePlay:
		if !w.Alive(state.Player) {
			s.end(state, scene, "player gone")
			return nil
		}
		p, ok := s.players.Get(state.Player)
		if !ok {
			// Spawned this tick; components land at maintain.
			return nil
		}
		p.Damage(s.drain * dt)
		scene.PlayerHealth = p.Normalized()
		if p.Health <= 0 {
			w.Delete(state.Player)
			s.end(state, scene, "out of health")
		}

	case resource.PhaseEnd:
		scene.PlayerHealth = 0
		if confirm {
			state.Reset()
			scene.PlayerHealth = 1
		}
	}
	return nil
}

func (s *GameManagerSystem) spawnPlayer(cmds *ecs.Commands) ecs.EntityID {
	id := cmds.Create()
	ecs.InsertLater(cmds, id, component.NewTransform())
	ecs.InsertLater(cmds, id, component.NewVelocity())
	ecs.InsertLater(cmds, id, component.Display{Sprite: s.sprites.Player})
	ecs.InsertLater(cmds, id, component.NewPlayer())
	ecs.InsertLater(cmds, id, component.NewCollider(component.ColliderPlayer))
	return id
}

func (s *GameManagerSystem) end(state *resource.GameState, scene *resource.SceneState, reason string) {
	s.log.Info("run ended", zap.Stringer("run", state.Run), zap.String("reason", reason))
	state.End()
	scene.PlayerHealth = 0
}
