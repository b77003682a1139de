package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/config"
	"github.com/ld49/drift/internal/core/ecs"
	coresys "github.com/ld49/drift/internal/core/system"
	"github.com/ld49/drift/internal/resource"
)

const testDT = 0.02

func newTestWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	resource.Install(w, resource.GameWindowSize{Width: 800, Height: 600}, resource.DefaultBindings())
	setDT(w, testDT)
	return w
}

func setDT(w *ecs.World, dt float32) {
	ecs.Fetch[resource.DeltaTime](w).Seconds = dt
}

func setup(t *testing.T, w *ecs.World, systems ...coresys.System) {
	t.Helper()
	for _, s := range systems {
		require.NoError(t, s.Setup(w))
	}
}

func tick(t *testing.T, w *ecs.World, systems ...coresys.System) {
	t.Helper()
	for _, s := range systems {
		require.NoError(t, s.Run(w))
	}
}

func press(w *ecs.World, key string) {
	resource.KeyboardEvents(w).Write(resource.KeyboardEvent{Pressed: true, Key: resource.KeyOf(key)})
}

func release(w *ecs.World, key string) {
	resource.KeyboardEvents(w).Write(resource.KeyboardEvent{Pressed: false, Key: resource.KeyOf(key)})
}

func gameState(w *ecs.World) *resource.GameState {
	return ecs.Fetch[resource.GameState](w)
}

// placePlayer creates a live player at pos and puts the game in Play.
func placePlayer(t *testing.T, w *ecs.World, pos mgl32.Vec2) ecs.EntityID {
	t.Helper()
	id := w.CreateEntity()
	tr := component.NewTransform()
	tr.Position = pos
	require.NoError(t, ecs.Insert(w, id, tr))
	require.NoError(t, ecs.Insert(w, id, component.NewVelocity()))
	require.NoError(t, ecs.Insert(w, id, component.NewPlayer()))
	require.NoError(t, ecs.Insert(w, id, component.NewCollider(component.ColliderPlayer)))
	gameState(w).Play(id, uuid.New())
	return id
}

func placeCollider(t *testing.T, w *ecs.World, tag component.ColliderTag, pos mgl32.Vec2, scale float32) ecs.EntityID {
	t.Helper()
	id := w.CreateEntity()
	require.NoError(t, ecs.Insert(w, id, component.Transform{Position: pos, Scale: mgl32.Vec2{scale, scale}}))
	require.NoError(t, ecs.Insert(w, id, component.NewCollider(tag)))
	return id
}

func player(t *testing.T, w *ecs.World, id ecs.EntityID) *component.Player {
	t.Helper()
	p, ok := ecs.Storage[component.Player](w).Get(id)
	require.True(t, ok, "player %s has no Player component", id)
	return p
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Asteroids.Seed = 7
	return cfg
}
