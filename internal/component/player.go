package component

const MaxHealth float32 = 100

// Player marks the controlled ship. Health stays in [0, MaxHealth].
type Player struct {
	Health float32
}

func NewPlayer() Player {
	return Player{Health: MaxHealth}
}

// Damage subtracts amount, stopping at zero.
func (p *Player) Damage(amount float32) {
	p.Health = max(p.Health-amount, 0)
}

// Heal adds amount, stopping at MaxHealth.
func (p *Player) Heal(amount float32) {
	p.Health = min(p.Health+amount, MaxHealth)
}

// Normalized returns health as a fraction of MaxHealth.
func (p Player) Normalized() float32 {
	return min(max(p.Health/MaxHealth, 0), 1)
}
