package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/scripting"
)

func newCollision(t *testing.T, lua *scripting.Engine) *PlayerCollisionSystem {
	return NewPlayerCollisionSystem(testConfig().Collision, lua, zap.NewNop())
}

func TestPlayerAloneTakesNoDamage(t *testing.T) {
	w := newTestWorld(t)
	s := newCollision(t, nil)
	setup(t, w, s)
	id := placePlayer(t, w, mgl32.Vec2{})

	tick(t, w, s)
	assert.Equal(t, component.MaxHealth, player(t, w, id).Health)
}

func TestAsteroidDamagePerSecond(t *testing.T) {
	w := newTestWorld(t)
	s := newCollision(t, nil)
	setup(t, w, s)
	id := placePlayer(t, w, mgl32.Vec2{})
	placeCollider(t, w, component.ColliderAsteroid, mgl32.Vec2{30, 10}, 50)
	placeCollider(t, w, component.ColliderAsteroid, mgl32.Vec2{300, 0}, 50)

	tick(t, w, s)
	assert.InDelta(t, 100-50*testDT, player(t, w, id).Health, 1e-4, "only the overlapping asteroid hurts")

	player(t, w, id).Health = 0.5
	tick(t, w, s)
	assert.Equal(t, float32(0), player(t, w, id).Health, "health stops at zero")
}

func TestRepairPackHealsOnce(t *testing.T) {
	w := newTestWorld(t)
	s := newCollision(t, nil)
	setup(t, w, s)
	id := placePlayer(t, w, mgl32.Vec2{})
	player(t, w, id).Health = 50
	pack := placeCollider(t, w, component.ColliderHealth, mgl32.Vec2{-20, 0}, 40)

	tick(t, w, s)
	assert.Equal(t, float32(75), player(t, w, id).Health)
	assert.False(t, w.Alive(pack))

	tick(t, w, s)
	assert.Equal(t, float32(75), player(t, w, id).Health, "a consumed pack is gone")
}

func TestRepairPackHealClampsAtMax(t *testing.T) {
	w := newTestWorld(t)
	s := newCollision(t, nil)
	setup(t, w, s)
	id := placePlayer(t, w, mgl32.Vec2{})
	player(t, w, id).Health = 90
	placeCollider(t, w, component.ColliderHealth, mgl32.Vec2{}, 40)

	tick(t, w, s)
	assert.Equal(t, component.MaxHealth, player(t, w, id).Health)
}

func TestScriptedAsteroidDamage(t *testing.T) {
	lua, err := scripting.NewEngineFromString(`
function asteroid_damage(ctx) return ctx.asteroid_size end
`, zap.NewNop())
	require.NoError(t, err)
	defer lua.Close()

	w := newTestWorld(t)
	s := newCollision(t, lua)
	setup(t, w, s)
	id := placePlayer(t, w, mgl32.Vec2{})
	placeCollider(t, w, component.ColliderAsteroid, mgl32.Vec2{}, 80)

	tick(t, w, s)
	assert.InDelta(t, 100-80*testDT, player(t, w, id).Health, 1e-4)
}
