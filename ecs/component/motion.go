package component

// Velocity in world units per second.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()

// Acceleration in world units per second squared.
type Acceleration struct {
	X float64
	Y float64
}

var AccelerationComponent = NewComponent[Acceleration]()

// GravityScale opts an entity into world gravity.
type GravityScale struct {
	Scale float64
	// MaxFall caps downward speed. Zero means uncapped.
	MaxFall float64
}

var GravityScaleComponent = NewComponent[GravityScale]()
