package component

import "github.com/go-gl/mathgl/mgl32"

// Velocity is a unit direction and a scalar speed in world units per second
// before world scaling.
type Velocity struct {
	Direction mgl32.Vec2
	Speed     float32
}

// NewVelocity points up and stands still.
func NewVelocity() Velocity {
	return Velocity{Direction: mgl32.Vec2{0, 1}}
}

// Step returns how far the entity moves in dt seconds.
func (v Velocity) Step(dt, worldScale float32) mgl32.Vec2 {
	return v.Direction.Mul(v.Speed * worldScale * dt)
}
