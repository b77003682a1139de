package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ld49/drift/internal/component"
	"github.com/ld49/drift/internal/core/ecs"
	"github.com/ld49/drift/internal/core/event"
	coresys "github.com/ld49/drift/internal/core/system"
	"github.com/ld49/drift/internal/resource"
)

// WindowEventSystem applies resize events to GameWindowSize and the renderer.
// Zero-area sizes (a minimized window) are ignored.
type WindowEventSystem struct {
	renderer Renderer
	log      *zap.Logger

	events *event.Channel[resource.WindowEvent]
	reader *event.Reader
}

func NewWindowEventSystem(r Renderer, log *zap.Logger) *WindowEventSystem {
	return &WindowEventSystem{renderer: r, log: log}
}

func (s *WindowEventSystem) Access() coresys.Access {
	return coresys.NewAccess().
		Read(ecs.TypeOf[*event.Channel[resource.WindowEvent]]()).
		Write(ecs.TypeOf[resource.GameWindowSize]())
}

func (s *WindowEventSystem) Setup(w *ecs.World) error {
	s.events = resource.WindowEvents(w)
	s.reader = s.events.RegisterReader()
	return nil
}

func (s *WindowEventSystem) Run(w *ecs.World) error {
	size := ecs.Fetch[resource.GameWindowSize](w)
	for _, ev := range s.events.Read(s.reader) {
		if ev.Kind != resource.WindowResize || ev.Width == 0 || ev.Height == 0 {
			continue
		}
		size.Width, size.Height = ev.Width, ev.Height
		s.renderer.Resize(ev.Width, ev.Height)
		s.log.Debug("window resized", zap.Uint32("width", ev.Width), zap.Uint32("height", ev.Height))
	}
	return nil
}

// RenderSystem hands the frame to the renderer. Lost or outdated surfaces are
// reconfigured at the current window size and the frame is skipped; any other
// draw error stops the frontend.
type RenderSystem struct {
	renderer Renderer
	log      *zap.Logger
	buf      []Sprite

	displays   *ecs.Store[component.Display]
	transforms *ecs.Store[component.Transform]
}

func NewRenderSystem(r Renderer, log *zap.Logger) *RenderSystem {
	return &RenderSystem{renderer: r, log: log}
}

func (s *RenderSystem) Access() coresys.Access {
	return coresys.NewAccess().Read(
		ecs.TypeOf[component.Display](),
		ecs.TypeOf[component.Transform](),
		ecs.TypeOf[resource.SceneState](),
		ecs.TypeOf[resource.GameWindowSize](),
	)
}

func (s *RenderSystem) Setup(w *ecs.World) error {
	s.displays = ecs.Storage[component.Display](w)
	s.transforms = ecs.Storage[component.Transform](w)
	return nil
}

func (s *RenderSystem) Run(w *ecs.World) error {
	f := collect(w, s.displays, s.transforms, s.buf)
	s.buf = f.Sprites
	err := s.renderer.Draw(f)
	switch {
	case err == nil:
		return nil
	case Transient(err):
		s.log.Warn("surface needs reconfigure", zap.Error(err))
		s.renderer.Resize(f.Window.Width, f.Window.Height)
		return nil
	default:
		return fmt.Errorf("draw: %w", err)
	}
}
