package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultScale is the on-screen size of a freshly spawned sprite.
var DefaultScale = mgl32.Vec2{50, 50}

// Transform places an entity in the world. Rotation is in radians about Z,
// counter-clockwise, kept in (-π, π].
type Transform struct {
	Position mgl32.Vec2
	Rotation float32
	Scale    mgl32.Vec2
}

func NewTransform() Transform {
	return Transform{Scale: DefaultScale}
}

// ModelMatrix returns translation(x, y, -1) · scale(sx, sy, 1) · rotationZ.
func (t Transform) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position[0], t.Position[1], -1).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], 1)).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation))
}

// Facing is +Y rotated by the current rotation.
func (t Transform) Facing() mgl32.Vec2 {
	s, c := math.Sincos(float64(t.Rotation))
	return mgl32.Vec2{float32(-s), float32(c)}
}

// Rotate adds delta radians and wraps the result.
func (t *Transform) Rotate(delta float32) {
	t.Rotation = WrapAngle(t.Rotation + delta)
}

// WrapAngle maps a into (-π, π].
func WrapAngle(a float32) float32 {
	r := math.Remainder(float64(a), 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return float32(r)
}
