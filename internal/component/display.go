package component

// Display selects the sprite drawn for an entity.
type Display struct {
	Sprite uint32
}
