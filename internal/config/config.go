package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game       GameConfig          `toml:"game"`
	Player     PlayerConfig        `toml:"player"`
	Collision  CollisionConfig     `toml:"collision"`
	Asteroids  AsteroidConfig      `toml:"asteroids"`
	Particles  ParticleConfig      `toml:"particles"`
	Repair     RepairConfig        `toml:"repair"`
	Background BackgroundConfig    `toml:"background"`
	Keys       map[string][]string `toml:"keys"` // action name -> key names
	Data       DataConfig          `toml:"data"`
	Scripting  ScriptingConfig     `toml:"scripting"`
	Logging    LoggingConfig       `toml:"logging"`
}

type GameConfig struct {
	TickRate         int     `toml:"tick_rate"` // fixed updates per second
	MaxCatchUp       int     `toml:"max_catch_up"`
	WindowWidth      uint32  `toml:"window_width"`
	WindowHeight     uint32  `toml:"window_height"`
	WorldScale       float32 `toml:"world_scale"`
	ParallelDispatch bool    `toml:"parallel_dispatch"`
}

type PlayerConfig struct {
	MaxSpeed      float32 `toml:"max_speed"`
	Acceleration  float32 `toml:"acceleration"`
	RotationSpeed float32 `toml:"rotation_speed"`
	ManeuverSpeed float32 `toml:"maneuver_speed"`
	BrakeFactor   float32 `toml:"brake_factor"`
	HealthDrain   float32 `toml:"health_drain"` // per second while playing
}

type CollisionConfig struct {
	AsteroidDamage float32 `toml:"asteroid_damage"` // per second of overlap
	HealAmount     float32 `toml:"heal_amount"`
}

type AsteroidConfig struct {
	SpawnTimeout time.Duration `toml:"spawn_timeout"`
	MinSpeed     float32       `toml:"min_speed"`
	MaxSpeed     float32       `toml:"max_speed"`
	Pattern      string        `toml:"pattern"` // "uniform" or "perlin"
	Seed         int64         `toml:"seed"`    // 0 = time based
}

type ParticleConfig struct {
	SpawnTimeout time.Duration `toml:"spawn_timeout"`
	MinSpeed     float32       `toml:"min_speed"`
	MaxSpeed     float32       `toml:"max_speed"`
}

type RepairConfig struct {
	SpawnTimeout time.Duration `toml:"spawn_timeout"`
	Scale        float32       `toml:"scale"`
}

type BackgroundConfig struct {
	FrameDuration time.Duration `toml:"frame_duration"`
}

type DataConfig struct {
	Sprites string `toml:"sprites"` // YAML atlas table; empty = built-in layout
}

type ScriptingConfig struct {
	Dir string `toml:"dir"` // empty disables Lua rules
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // required by the terminal frontend
}

// Load reads a TOML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the tuning the game ships with.
func Default() *Config {
	return &Config{
		Game: GameConfig{
			TickRate:     50,
			MaxCatchUp:   5,
			WindowWidth:  800,
			WindowHeight: 600,
			WorldScale:   50,
		},
		Player: PlayerConfig{
			MaxSpeed:      10,
			Acceleration:  2.5,
			RotationSpeed: 5,
			ManeuverSpeed: 1,
			BrakeFactor:   2,
			HealthDrain:   2,
		},
		Collision: CollisionConfig{
			AsteroidDamage: 50,
			HealAmount:     25,
		},
		Asteroids: AsteroidConfig{
			SpawnTimeout: time.Second,
			MinSpeed:     1,
			MaxSpeed:     5,
			Pattern:      "uniform",
		},
		Particles: ParticleConfig{
			SpawnTimeout: 50 * time.Millisecond,
			MinSpeed:     5,
			MaxSpeed:     10,
		},
		Repair: RepairConfig{
			SpawnTimeout: 5 * time.Second,
			Scale:        40,
		},
		Background: BackgroundConfig{
			FrameDuration: 250 * time.Millisecond,
		},
		Keys: map[string][]string{
			"accelerate":   {"W", "Up"},
			"brake":        {"S", "Down"},
			"rotate_left":  {"A", "Left"},
			"rotate_right": {"D", "Right"},
			"confirm":      {"Enter", "Space"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

var ErrInvalid = errors.New("invalid config")

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}
	check(c.Game.TickRate > 0, "game.tick_rate must be positive, got %d", c.Game.TickRate)
	check(c.Game.MaxCatchUp > 0, "game.max_catch_up must be positive, got %d", c.Game.MaxCatchUp)
	check(c.Game.WorldScale > 0, "game.world_scale must be positive")
	check(c.Player.MaxSpeed > 0, "player.max_speed must be positive")
	check(c.Asteroids.SpawnTimeout > 0, "asteroids.spawn_timeout must be positive")
	check(c.Asteroids.MinSpeed <= c.Asteroids.MaxSpeed, "asteroids.min_speed above max_speed")
	check(c.Asteroids.Pattern == "uniform" || c.Asteroids.Pattern == "perlin",
		"asteroids.pattern %q is not uniform or perlin", c.Asteroids.Pattern)
	check(c.Particles.SpawnTimeout > 0, "particles.spawn_timeout must be positive")
	check(c.Particles.MinSpeed <= c.Particles.MaxSpeed, "particles.min_speed above max_speed")
	check(c.Repair.SpawnTimeout > 0, "repair.spawn_timeout must be positive")
	check(c.Background.FrameDuration > 0, "background.frame_duration must be positive")
	return errors.Join(errs...)
}

// TickDuration is the length of one fixed update.
func (c *Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.Game.TickRate)
}
