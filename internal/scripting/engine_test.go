package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var roll = AsteroidSpawn{X: 10, DirX: 0.05, Speed: 3, Spin: 1, Sprite: 1}

func TestAsteroidSpawnOverridesFields(t *testing.T) {
	e, err := NewEngineFromString(`
function asteroid_spawn(ctx)
  return { speed = ctx.default.speed * 2, sprite = ctx.variants - 1, x = ctx.width }
end
`, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	got := e.AsteroidSpawn(SpawnContext{Width: 800, Variants: 3}, roll)
	assert.Equal(t, AsteroidSpawn{X: 800, DirX: 0.05, Speed: 6, Spin: 1, Sprite: 2}, got)
	assert.True(t, e.Defines(fnAsteroidSpawn))
	assert.False(t, e.Defines(fnAsteroidDamage))
}

func TestFallbacks(t *testing.T) {
	e, err := NewEngineFromString(`
function asteroid_spawn(ctx) error("boom") end
function asteroid_damage(ctx) return "lots" end
`, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, roll, e.AsteroidSpawn(SpawnContext{}, roll), "lua error keeps the Go roll")
	assert.Equal(t, float32(50), e.AsteroidDamage(DamageContext{Base: 50}), "non-number keeps base")

	empty, err := NewEngineFromString(``, zap.NewNop())
	require.NoError(t, err)
	defer empty.Close()
	assert.Equal(t, roll, empty.AsteroidSpawn(SpawnContext{}, roll))
	assert.Equal(t, float32(7), empty.AsteroidDamage(DamageContext{Base: 7}))
}

func TestAsteroidDamage(t *testing.T) {
	e, err := NewEngineFromString(`
function asteroid_damage(ctx) return ctx.base * ctx.asteroid_size / 100 - ctx.health end
`, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, float32(20), e.AsteroidDamage(DamageContext{Base: 40, AsteroidSize: 50}))
	assert.Equal(t, float32(0), e.AsteroidDamage(DamageContext{Base: 40, AsteroidSize: 50, Health: 90}), "negative damage clamps")
}

func TestNewEngineLoadsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.lua"),
		[]byte(`function asteroid_damage(ctx) return 1 end`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`not lua`), 0o644))

	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, float32(1), e.AsteroidDamage(DamageContext{Base: 50}))

	missing, err := NewEngine(filepath.Join(dir, "absent"), zap.NewNop())
	require.NoError(t, err)
	missing.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.lua"), []byte(`function (`), 0o644))
	_, err = NewEngine(dir, zap.NewNop())
	assert.ErrorContains(t, err, "broken.lua")
}

func TestBundledScripts(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	got := e.AsteroidSpawn(SpawnContext{Elapsed: 0}, roll)
	assert.Equal(t, roll, got)
	assert.Equal(t, float32(25), e.AsteroidDamage(DamageContext{Base: 50, AsteroidSize: 50}))
}
