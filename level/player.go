package level

import "github.com/jakecoffman/cp"

const defaultMaxHearts = 3

// PlayerState is the player's health and respawn anchor.
type PlayerState struct {
	Hearts            int
	MaxHearts         int
	Invulnerable      bool
	InvulnerableUntil float64
	LastCheckpoint    cp.Vector
	Alive             bool
}

func newPlayerState(spawn cp.Vector) PlayerState {
	return PlayerState{
		Hearts:         defaultMaxHearts,
		MaxHearts:      defaultMaxHearts,
		LastCheckpoint: spawn,
		Alive:          true,
	}
}

// invulnerableAt reports whether hits are ignored at now.
func (p *PlayerState) invulnerableAt(now float64) bool {
	return p.Invulnerable && now < p.InvulnerableUntil
}

// grantInvulnerability never moves the expiry backwards.
func (p *PlayerState) grantInvulnerability(until float64) {
	p.Invulnerable = true
	p.InvulnerableUntil = max(p.InvulnerableUntil, until)
}

func (p *PlayerState) loseHearts(n int) {
	p.Hearts = min(p.MaxHearts, max(0, p.Hearts-n))
}
