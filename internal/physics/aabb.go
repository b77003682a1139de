// Package physics holds the overlap geometry used by collision.
package physics

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned box centred on Pos.
type AABB struct {
	Pos  mgl32.Vec2
	Size mgl32.Vec2
}

// Unit returns a box of size 1x1 at the origin.
func Unit() AABB {
	return AABB{Size: mgl32.Vec2{1, 1}}
}

// FromPositionScale is the unit box moved to p and stretched by s.
func FromPositionScale(p, s mgl32.Vec2) AABB {
	return Unit().Translate(p).Scale(s)
}

// Translate returns the box shifted by v.
func (b AABB) Translate(v mgl32.Vec2) AABB {
	b.Pos = b.Pos.Add(v)
	return b
}

// Scale returns the box with its size multiplied component-wise by v. The
// centre does not move.
func (b AABB) Scale(v mgl32.Vec2) AABB {
	b.Size = mgl32.Vec2{b.Size[0] * v[0], b.Size[1] * v[1]}
	return b
}

// Intersect reports whether the interiors of b and o overlap. Boxes that only
// touch along an edge do not intersect.
func (b AABB) Intersect(o AABB) bool {
	dx := abs(b.Pos[0] - o.Pos[0])
	dy := abs(b.Pos[1] - o.Pos[1])
	return dx*2 < b.Size[0]+o.Size[0] && dy*2 < b.Size[1]+o.Size[1]
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
