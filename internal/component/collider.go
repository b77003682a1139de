package component

import "github.com/ld49/drift/internal/physics"

type ColliderTag uint8

const (
	ColliderPlayer ColliderTag = iota
	ColliderAsteroid
	ColliderHealth
)

func (t ColliderTag) String() string {
	switch t {
	case ColliderPlayer:
		return "player"
	case ColliderAsteroid:
		return "asteroid"
	case ColliderHealth:
		return "health"
	}
	return "unknown"
}

// Collider gives an entity a hit box in local space. The box is moved and
// sized by the entity's Transform before testing.
type Collider struct {
	Tag ColliderTag
	Box physics.AABB
}

func NewCollider(tag ColliderTag) Collider {
	return Collider{Tag: tag, Box: physics.Unit()}
}

// WorldBox returns the hit box placed by t.
func (c Collider) WorldBox(t Transform) physics.AABB {
	return c.Box.Translate(t.Position).Scale(t.Scale)
}
