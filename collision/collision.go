// Package collision describes the boxes a scene exposes to the physics
// collaborator and the contacts it gets back.
package collision

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Group names what a box belongs to. Contacts are only reported between
// group pairs a scene cares about.
type Group int

const (
	GroupNone Group = iota
	GroupPlayer
	GroupGroundDanger
	GroupHazard
	GroupCheckpoint
	GroupSpring
	GroupGoal
	GroupPlatform
	GroupPlayerShot
	GroupEnemyShot
	GroupPillar
	GroupBoss
)

var groupNames = [...]string{
	GroupNone:         "none",
	GroupPlayer:       "player",
	GroupGroundDanger: "ground_danger",
	GroupHazard:       "hazard",
	GroupCheckpoint:   "checkpoint",
	GroupSpring:       "spring",
	GroupGoal:         "goal",
	GroupPlatform:     "platform",
	GroupPlayerShot:   "player_shot",
	GroupEnemyShot:    "enemy_shot",
	GroupPillar:       "pillar",
	GroupBoss:         "boss",
}

func (g Group) String() string {
	if int(g) < len(groupNames) {
		return groupNames[g]
	}
	return "unknown"
}

// Box is a center-anchored axis-aligned box. Ref carries the owner's handle
// (an ECS entity for dynamic actors, an index for static markers).
type Box struct {
	Group  Group
	ID     string
	Ref    uint64
	Center cp.Vector
	Width  float64
	Height float64
	// IgnorePlatforms skips platform contacts for this box.
	IgnorePlatforms bool
}

func (b Box) BB() cp.BB {
	hw, hh := b.Width/2, b.Height/2
	return cp.BB{L: b.Center.X - hw, B: b.Center.Y - hh, R: b.Center.X + hw, T: b.Center.Y + hh}
}

// Overlaps reports strict overlap; touching edges do not count.
func Overlaps(a, b Box) bool {
	if a.Width <= 0 || a.Height <= 0 || b.Width <= 0 || b.Height <= 0 {
		return false
	}
	ab, bb := a.BB(), b.BB()
	return ab.L < bb.R && ab.R > bb.L && ab.B < bb.T && ab.T > bb.B
}

// Side is the face of the second box that the first box touched.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

// Contact is one overlap between A and B. For player contacts A is always
// the player; for platform contacts B is always the platform.
type Contact struct {
	A, B Box
	Side Side
	// Depth is the penetration along the resolving axis.
	Depth float64
}

func resolve(a, b Box) (Side, float64) {
	ab, bb := a.BB(), b.BB()
	dx := math.Min(ab.R-bb.L, bb.R-ab.L)
	dy := math.Min(ab.T-bb.B, bb.T-ab.B)
	if dy <= dx {
		if a.Center.Y < b.Center.Y {
			// y grows downward: a is above b.
			return SideTop, dy
		}
		return SideBottom, dy
	}
	if a.Center.X < b.Center.X {
		return SideLeft, dx
	}
	return SideRight, dx
}

// Detect returns the contacts between player and every actor, and between
// every non-player actor and the platforms. Platform boxes inside actors are
// ignored; pass them separately.
func Detect(player Box, actors []Box, platforms []Box) []Contact {
	var out []Contact
	for _, a := range actors {
		if a.Group == GroupPlatform {
			continue
		}
		if player.Group == GroupPlayer && Overlaps(player, a) {
			side, depth := resolve(player, a)
			out = append(out, Contact{A: player, B: a, Side: side, Depth: depth})
		}
		if a.IgnorePlatforms || !collidesWithPlatforms(a.Group) {
			continue
		}
		for _, p := range platforms {
			if Overlaps(a, p) {
				side, depth := resolve(a, p)
				out = append(out, Contact{A: a, B: p, Side: side, Depth: depth})
			}
		}
	}
	return out
}

// DetectPairs returns the overlaps between every box in as and every box in
// bs, e.g. player shots against the opponent.
func DetectPairs(as, bs []Box) []Contact {
	var out []Contact
	for _, a := range as {
		for _, b := range bs {
			if Overlaps(a, b) {
				side, depth := resolve(a, b)
				out = append(out, Contact{A: a, B: b, Side: side, Depth: depth})
			}
		}
	}
	return out
}

func collidesWithPlatforms(g Group) bool {
	switch g {
	case GroupHazard, GroupPlayerShot, GroupEnemyShot:
		return true
	default:
		return false
	}
}
