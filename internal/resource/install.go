package resource

import (
	"github.com/ld49/drift/internal/core/ecs"
	"github.com/ld49/drift/internal/core/event"
)

// Install puts every shared resource into w with its starting value. It must
// run before the dispatchers' Setup so systems can register event readers.
func Install(w *ecs.World, size GameWindowSize, bindings Bindings) {
	ecs.InsertResource(w, DeltaTime{})
	ecs.InsertResource(w, size)
	ecs.InsertResource(w, GameState{Phase: PhaseInit})
	ecs.InsertResource(w, SceneState{PlayerHealth: 1})
	ecs.InsertResource(w, bindings)
	ecs.InsertResource(w, event.NewChannel[WindowEvent]())
	ecs.InsertResource(w, event.NewChannel[KeyboardEvent]())
}

// KeyboardEvents returns the keyboard event log.
func KeyboardEvents(w *ecs.World) *event.Channel[KeyboardEvent] {
	return *ecs.Fetch[*event.Channel[KeyboardEvent]](w)
}

// WindowEvents returns the window event log.
func WindowEvents(w *ecs.World) *event.Channel[WindowEvent] {
	return *ecs.Fetch[*event.Channel[WindowEvent]](w)
}
