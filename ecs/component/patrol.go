package component

// Patrol walks an entity between MinX and MaxX at a constant Speed.
type Patrol struct {
	MinX  float64
	MaxX  float64
	Speed float64
	// Bounce reverses on side contact with a platform.
	Bounce bool
	// Spin accumulates the rolling angle in degrees.
	Spin float64
}

var PatrolComponent = NewComponent[Patrol]()

// Turret faces the player every tick. Firing is scheduled on the clock.
type Turret struct {
	SourceID        string
	FacingLeft      bool
	IntervalMs      float64
	ProjectileSpeed float64
}

var TurretComponent = NewComponent[Turret]()
