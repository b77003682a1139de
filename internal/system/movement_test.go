package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/core/ecs"
)

func transform(w *ecs.World, id ecs.EntityID) *component.Transform {
	tr, _ := ecs.Storage[component.Transform](w).Get(id)
	return tr
}

func velocity(w *ecs.World, id ecs.EntityID) *component.Velocity {
	v, _ := ecs.Storage[component.Velocity](w).Get(id)
	return v
}

func TestAccelerateAndBrake(t *testing.T) {
	w := newTestWorld(t)
	s := NewPlayerMovementSystem(testConfig().Player)
	setup(t, w, s)
	id := placePlayer(t, w, mgl32.Vec2{})

	press(w, "W")
	tick(t, w, s)
	assert.InDelta(t, 2.5*testDT, velocity(w, id).Speed, 1e-6)

	release(w, "w")
	tick(t, w, s)
	assert.InDelta(t, 2.5*testDT, velocity(w, id).Speed, 1e-6, "coasting keeps speed")

	press(w, "S")
	tick(t, w, s)
	assert.Equal(t, float32(0), velocity(w, id).Speed, "braking stops at zero")
	acc, _ := s.Factors()
	assert.Equal(t, float32(-2), acc)
}

func TestSpeedCapped(t *testing.T) {
	w := newTestWorld(t)
	s := NewPlayerMovementSystem(testConfig().Player)
	setup(t, w, s)
	id := placePlayer(t, w, mgl32.Vec2{})
	velocity(w, id).Speed = 9.99

	press(w, "Up")
	tick(t, w, s)
	assert.Equal(t, float32(10), velocity(w, id).Speed)
}

func TestRotation(t *testing.T) {
	w := newTestWorld(t)
	s := NewPlayerMovementSystem(testConfig().Player)
	setup(t, w, s)
	id := placePlayer(t, w, mgl32.Vec2{})

	press(w, "A")
	tick(t, w, s)
	assert.InDelta(t, 5*testDT, transform(w, id).Rotation, 1e-6)

	press(w, "D")
	tick(t, w, s)
	tick(t, w, s)
	assert.InDelta(t, -5*testDT, transform(w, id).Rotation, 1e-6)

	release(w, "D")
	tick(t, w, s)
	assert.InDelta(t, -5*testDT, transform(w, id).Rotation, 1e-6)
}

func TestAccelerationSteersTowardFacing(t *testing.T) {
	w := newTestWorld(t)
	s := NewPlayerMovementSystem(testConfig().Player)
	setup(t, w, s)
	id := placePlayer(t, w, mgl32.Vec2{})
	velocity(w, id).Direction = mgl32.Vec2{1, 0}

	press(w, "W")
	tick(t, w, s)
	want := mgl32.Vec2{1 - testDT, testDT}.Normalize()
	got := velocity(w, id).Direction
	assert.InDelta(t, want[0], got[0], 1e-5)
	assert.InDelta(t, want[1], got[1], 1e-5)
	assert.InDelta(t, 1, got.Len(), 1e-5)
}

func TestMovementIgnoresNonPlayers(t *testing.T) {
	w := newTestWorld(t)
	s := NewPlayerMovementSystem(testConfig().Player)
	setup(t, w, s)
	rock := w.CreateEntity()
	_ = ecs.Insert(w, rock, component.NewTransform())
	_ = ecs.Insert(w, rock, component.NewVelocity())

	press(w, "W")
	tick(t, w, s)
	assert.Equal(t, float32(0), velocity(w, rock).Speed)
}

func TestVelocityIntegration(t *testing.T) {
	w := newTestWorld(t)
	s := NewVelocitySystem(testConfig().Game.WorldScale)
	setup(t, w, s)
	id := w.CreateEntity()
	_ = ecs.Insert(w, id, component.NewTransform())
	_ = ecs.Insert(w, id, component.Velocity{Direction: mgl32.Vec2{0, -1}, Speed: 2})

	tick(t, w, s)
	assert.InDelta(t, -2*50*testDT, transform(w, id).Position[1], 1e-5)
	assert.InDelta(t, 0, transform(w, id).Position[0], 1e-6)
}

func TestPlayerBounds(t *testing.T) {
	w := newTestWorld(t)
	s := NewPlayerBoundsSystem()
	setup(t, w, s)
	id := placePlayer(t, w, mgl32.Vec2{450, 0})
	velocity(w, id).Direction = mgl32.Vec2{0.6, 0.8}

	tick(t, w, s)
	assert.Equal(t, mgl32.Vec2{400, 0}, transform(w, id).Position)
	assert.Equal(t, mgl32.Vec2{-0.6, 0.8}, velocity(w, id).Direction)

	transform(w, id).Position = mgl32.Vec2{0, -350}
	tick(t, w, s)
	assert.Equal(t, mgl32.Vec2{0, -300}, transform(w, id).Position)
	assert.Equal(t, mgl32.Vec2{-0.6, -0.8}, velocity(w, id).Direction)

	transform(w, id).Position = mgl32.Vec2{-500, 400}
	tick(t, w, s)
	assert.Equal(t, mgl32.Vec2{-400, 300}, transform(w, id).Position, "both axes clamp")
	assert.Equal(t, mgl32.Vec2{0.6, -0.8}, velocity(w, id).Direction, "only x reflects")
}
