package component

// Lifetime counts down the seconds an entity has left.
type Lifetime struct {
	Remaining float32
}

// Tick consumes dt and reports whether the entity has expired.
func (l *Lifetime) Tick(dt float32) bool {
	l.Remaining -= dt
	return l.Remaining <= 0
}

// Spinner turns an entity at a constant rate in radians per second.
type Spinner struct {
	Speed float32
}
