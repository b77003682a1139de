package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

const (
	fnAsteroidSpawn  = "asteroid_spawn"
	fnAsteroidDamage = "asteroid_damage"
)

// Engine wraps a single gopher-lua VM holding optional gameplay rules.
// Single-goroutine access only: the dispatcher runs serially when an engine
// is loaded.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

func newEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// NewEngine creates a Lua engine and loads every script in dir.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.loadDir(dir); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// NewEngineFromString creates an engine from a single chunk of Lua source.
func NewEngineFromString(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			e.log.Warn("script dir missing, using built-in rules", zap.String("dir", dir))
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Defines reports whether a global Lua function name exists.
func (e *Engine) Defines(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// SpawnContext describes the field an asteroid is about to enter.
type SpawnContext struct {
	Width    float32
	Height   float32
	Elapsed  float32 // seconds since the run started
	Spawned  int     // asteroids spawned this run
	Variants int     // number of asteroid sprites
}

// AsteroidSpawn is a rolled asteroid. Sprite is a variant number, not an
// atlas index.
type AsteroidSpawn struct {
	X      float32
	DirX   float32
	Speed  float32
	Spin   float32
	Sprite int
}

// AsteroidSpawn calls asteroid_spawn(ctx). The Go roll is passed in as
// ctx.default; any field the script leaves out keeps its default value.
func (e *Engine) AsteroidSpawn(ctx SpawnContext, def AsteroidSpawn) AsteroidSpawn {
	fn := e.vm.GetGlobal(fnAsteroidSpawn)
	if fn == lua.LNil {
		e.log.Error("lua function asteroid_spawn not found")
		return def
	}

	t := e.vm.NewTable()
	t.RawSetString("width", lua.LNumber(ctx.Width))
	t.RawSetString("height", lua.LNumber(ctx.Height))
	t.RawSetString("elapsed", lua.LNumber(ctx.Elapsed))
	t.RawSetString("spawned", lua.LNumber(ctx.Spawned))
	t.RawSetString("variants", lua.LNumber(ctx.Variants))

	d := e.vm.NewTable()
	d.RawSetString("x", lua.LNumber(def.X))
	d.RawSetString("dir_x", lua.LNumber(def.DirX))
	d.RawSetString("speed", lua.LNumber(def.Speed))
	d.RawSetString("spin", lua.LNumber(def.Spin))
	d.RawSetString("sprite", lua.LNumber(def.Sprite))
	t.RawSetString("default", d)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua asteroid_spawn error", zap.Error(err))
		return def
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua asteroid_spawn returned non-table")
		return def
	}
	return AsteroidSpawn{
		X:      lFloat(rt, "x", def.X),
		DirX:   lFloat(rt, "dir_x", def.DirX),
		Speed:  lFloat(rt, "speed", def.Speed),
		Spin:   lFloat(rt, "spin", def.Spin),
		Sprite: int(lFloat(rt, "sprite", float32(def.Sprite))),
	}
}

// DamageContext is passed to asteroid_damage once per overlapping pair.
type DamageContext struct {
	Health       float32
	PlayerSpeed  float32
	AsteroidSize float32
	Base         float32 // configured damage per second
}

// AsteroidDamage calls asteroid_damage(ctx) for the damage per second an
// asteroid deals. Errors fall back to ctx.Base.
func (e *Engine) AsteroidDamage(ctx DamageContext) float32 {
	fn := e.vm.GetGlobal(fnAsteroidDamage)
	if fn == lua.LNil {
		e.log.Error("lua function asteroid_damage not found")
		return ctx.Base
	}

	t := e.vm.NewTable()
	t.RawSetString("health", lua.LNumber(ctx.Health))
	t.RawSetString("player_speed", lua.LNumber(ctx.PlayerSpeed))
	t.RawSetString("asteroid_size", lua.LNumber(ctx.AsteroidSize))
	t.RawSetString("base", lua.LNumber(ctx.Base))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua asteroid_damage error", zap.Error(err))
		return ctx.Base
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua asteroid_damage returned non-number", zap.String("type", result.Type().String()))
		return ctx.Base
	}
	return max(float32(n), 0)
}

// lFloat reads a number field from a Lua table, or def when it is absent.
func lFloat(t *lua.LTable, key string, def float32) float32 {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return float32(n)
	}
	return def
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
