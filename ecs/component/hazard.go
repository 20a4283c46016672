package component

import "github.com/milk9111/bananarun/collision"

// HazardKind tags what a hazard actor is. The kind picks the behaviour
// table entry used on platform contact.
type HazardKind int

const (
	HazardBoulder HazardKind = iota + 1
	HazardSnail
	HazardDrop
	HazardTurret
	HazardProjectile
	HazardPillar
)

func (k HazardKind) String() string {
	switch k {
	case HazardBoulder:
		return "boulder"
	case HazardSnail:
		return "snail"
	case HazardDrop:
		return "drop"
	case HazardTurret:
		return "turret"
	case HazardProjectile:
		return "projectile"
	case HazardPillar:
		return "pillar"
	default:
		return "unknown"
	}
}

// Hazard is a damaging actor. SourceID is the level hazard that owns it.
type Hazard struct {
	Kind       HazardKind
	SourceID   string
	Damage     float64
	KnockbackX float64
	KnockbackY float64
}

var HazardComponent = NewComponent[Hazard]()

// Hitbox exposes an entity to collision. The box is centered on Transform
// plus the offset.
type Hitbox struct {
	Group           collision.Group
	Width           float64
	Height          float64
	OffsetX         float64
	OffsetY         float64
	IgnorePlatforms bool
}

var HitboxComponent = NewComponent[Hitbox]()
