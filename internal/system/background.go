package system

import (
	"time"

	"github.com/ld49/drift/internal/core/ecs"
	coresys "github.com/ld49/drift/internal/core/system"
	"github.com/ld49/drift/internal/resource"
)

// BackgroundSystem cycles the scene's background frame.
type BackgroundSystem struct {
	frames uint32
	timer  cooldown
}

func NewBackgroundSystem(frames uint32, frameDuration time.Duration) *BackgroundSystem {
	return &BackgroundSystem{frames: max(frames, 1), timer: newCooldown(frameDuration)}
}

func (s *BackgroundSystem) Access() coresys.Access {
	return coresys.NewAccess().
		Read(ecs.TypeOf[resource.DeltaTime]()).
		Write(ecs.TypeOf[resource.SceneState]())
}

func (s *BackgroundSystem) Setup(*ecs.World) error { return nil }

func (s *BackgroundSystem) Run(w *ecs.World) error {
	if !s.timer.tick(ecs.Fetch[resource.DeltaTime](w).Seconds) {
		return nil
	}
	scene := ecs.Fetch[resource.SceneState](w)
	scene.Background = (scene.Background + 1) % s.frames
	return nil
}
