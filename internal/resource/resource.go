// Package resource holds the singleton values systems share through the
// world: the tick length, window geometry, game phase, the renderer-facing
// scene and the input event types.
package resource

import (
	"github.com/google/uuid"

	"github.com/ld49/drift/internal/core/ecs"
)

// DeltaTime is the length of the current fixed tick in seconds.
type DeltaTime struct {
	Seconds float32
}

type GameWindowSize struct {
	Width  uint32
	Height uint32
}

// Half returns the half extents of the window in world units.
func (s GameWindowSize) Half() (float32, float32) {
	return float32(s.Width) / 2, float32(s.Height) / 2
}

// Phase is the coarse game state.
type Phase uint8

const (
	PhaseInit Phase = iota
	PhasePlay
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhasePlay:
		return "play"
	case PhaseEnd:
		return "end"
	}
	return "unknown"
}

// GameState is the state machine driven by the game manager. Player and Run
// are only meaningful in PhasePlay.
type GameState struct {
	Phase  Phase
	Player ecs.EntityID
	Run    uuid.UUID
}

func (g GameState) Playing() bool { return g.Phase == PhasePlay }

// Play switches to PhasePlay for the given player and run.
func (g *GameState) Play(player ecs.EntityID, run uuid.UUID) {
	*g = GameState{Phase: PhasePlay, Player: player, Run: run}
}

// End leaves PhasePlay and forgets the player.
func (g *GameState) End() {
	*g = GameState{Phase: PhaseEnd}
}

func (g *GameState) Reset() {
	*g = GameState{Phase: PhaseInit}
}

// SceneState is what the renderer reads each frame besides sprites.
type SceneState struct {
	Background   uint32
	PlayerHealth float32 // normalized to [0, 1]
}
