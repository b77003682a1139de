// Package render turns world state into draw lists for a frontend and feeds
// window changes back into the world.
package render

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/core/ecs"
	"github.com/ld49/drift/internal/resource"
)

// Transient surface errors. The render system answers them by reconfiguring
// the surface and carrying on.
var (
	ErrSurfaceLost     = errors.New("render: surface lost")
	ErrSurfaceOutdated = errors.New("render: surface outdated")
	ErrOutOfMemory     = errors.New("render: out of memory")
)

// Transient reports whether err only needs the surface to be reconfigured.
func Transient(err error) bool {
	return errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrSurfaceOutdated)
}

// Renderer is the drawing backend. Draw must not keep f.Sprites after it
// returns; the slice is reused for the next frame.
type Renderer interface {
	Resize(width, height uint32)
	Draw(f Frame) error
}

// Sprite is one atlas entry placed by a model matrix.
type Sprite struct {
	Index uint32
	Model mgl32.Mat4
}

type Frame struct {
	Sprites []Sprite
	Scene   resource.SceneState
	Window  resource.GameWindowSize
}

// Collect builds the frame for the current world: one sprite per entity with
// both a Transform and a Display, in the Display store's order.
func Collect(w *ecs.World) Frame {
	return collect(w, ecs.Storage[component.Display](w), ecs.Storage[component.Transform](w), nil)
}

func collect(w *ecs.World, displays *ecs.Store[component.Display], transforms *ecs.Store[component.Transform], buf []Sprite) Frame {
	sprites := buf[:0]
	displays.Each(func(id ecs.EntityID, d *component.Display) {
		tr, ok := transforms.Get(id)
		if !ok {
			return
		}
		sprites = append(sprites, Sprite{Index: d.Sprite, Model: tr.ModelMatrix()})
	})
	return Frame{
		Sprites: sprites,
		Scene:   *ecs.Fetch[resource.SceneState](w),
		Window:  *ecs.Fetch[resource.GameWindowSize](w),
	}
}
