package data

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpriteTable maps gameplay roles to indices in the renderer's sprite atlas.
// Background frames occupy their own atlas and are counted, not indexed.
type SpriteTable struct {
	Player           uint32   `yaml:"player"`
	HealthPack       uint32   `yaml:"health_pack"`
	Particle         uint32   `yaml:"particle"`
	Asteroids        []uint32 `yaml:"asteroids"`
	BackgroundFrames uint32   `yaml:"background_frames"`
}

// DefaultSprites is the layout of the bundled atlas.
func DefaultSprites() *SpriteTable {
	return &SpriteTable{
		Player:           0,
		HealthPack:       1,
		Particle:         2,
		Asteroids:        []uint32{2, 3, 4},
		BackgroundFrames: 4,
	}
}

// LoadSpriteTable loads a sprite layout YAML. Keys missing from the file keep
// their default value.
func LoadSpriteTable(path string) (*SpriteTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sprite table: %w", err)
	}
	t := DefaultSprites()
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("parse sprite table: %w", err)
	}
	if len(t.Asteroids) == 0 {
		return nil, errors.New("sprite table: no asteroid sprites")
	}
	if t.BackgroundFrames == 0 {
		return nil, errors.New("sprite table: background_frames must be at least 1")
	}
	return t, nil
}

// Asteroid picks an asteroid sprite; i is reduced modulo the variant count.
func (t *SpriteTable) Asteroid(i int) uint32 {
	n := len(t.Asteroids)
	return t.Asteroids[((i%n)+n)%n]
}

// Count returns the number of distinct atlas indices referenced.
func (t *SpriteTable) Count() int {
	seen := map[uint32]struct{}{t.Player: {}, t.HealthPack: {}, t.Particle: {}}
	for _, a := range t.Asteroids {
		seen[a] = struct{}{}
	}
	return len(seen)
}
