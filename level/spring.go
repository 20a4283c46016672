package level

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/collision"
	"github.com/milk9111/bananarun/common"
	"github.com/milk9111/bananarun/content"
)

const (
	springCooldownMs = 340.0
	springLockMs     = 220.0
	springFlashMs    = 130.0

	springDefaultLaunchX = -360.0
	springDefaultLaunchY = -620.0
	springMinLaunchX     = 420.0
	springMinLaunchY     = -560.0

	springWidth  = 50.0
	springHeight = 40.0
)

// Pad is one spring with its raw launch vector.
type Pad struct {
	ID         string
	Pos        cp.Vector
	Launch     cp.Vector
	FlashUntil float64
}

// Springs owns the pads plus the shared cooldown and control lock.
type Springs struct {
	pads          []Pad
	cooldownUntil float64
	lockUntil     float64
}

func newSprings(defs []content.Spring) *Springs {
	s := &Springs{pads: make([]Pad, 0, len(defs))}
	for _, d := range defs {
		lx, ly := springDefaultLaunchX, springDefaultLaunchY
		if d.LaunchX != nil {
			lx = common.Finite(*d.LaunchX, springDefaultLaunchX)
		}
		if d.LaunchY != nil {
			ly = common.Finite(*d.LaunchY, springDefaultLaunchY)
		}
		s.pads = append(s.pads, Pad{
			ID:     d.ID,
			Pos:    cp.Vector{X: d.X, Y: d.Y},
			Launch: cp.Vector{X: lx, Y: ly},
		})
	}
	return s
}

// LaunchVelocity resolves the velocity a pad gives a player at playerX.
func LaunchVelocity(pad Pad, playerX, speed float64) cp.Vector {
	dir := common.Sign(pad.Launch.X)
	if dir == 0 {
		dir = -1
		if playerX >= pad.Pos.X {
			dir = 1
		}
	}
	return cp.Vector{
		X: dir * math.Max(math.Abs(pad.Launch.X), springMinLaunchX) * speed,
		Y: math.Min(pad.Launch.Y, springMinLaunchY) * speed,
	}
}

// Trigger launches from pad idx. It reports false while the cooldown runs.
func (s *Springs) Trigger(idx int, now, playerX, speed float64) (cp.Vector, bool) {
	if idx < 0 || idx >= len(s.pads) || now < s.cooldownUntil {
		return cp.Vector{}, false
	}
	pad := &s.pads[idx]
	v := LaunchVelocity(*pad, playerX, speed)
	s.cooldownUntil = now + springCooldownMs
	s.lockUntil = now + springLockMs
	pad.FlashUntil = now + springFlashMs
	return v, true
}

// Locked reports whether movement input is suspended at now.
func (s *Springs) Locked(now float64) bool {
	return now < s.lockUntil
}

func (s *Springs) Pads() []Pad { return s.pads }

func (s *Springs) colliders() []collision.Box {
	out := make([]collision.Box, 0, len(s.pads))
	for i, p := range s.pads {
		out = append(out, collision.Box{
			Group:  collision.GroupSpring,
			ID:     p.ID,
			Ref:    uint64(i),
			Center: p.Pos,
			Width:  springWidth,
			Height: springHeight,
		})
	}
	return out
}
