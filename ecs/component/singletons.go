package component

// Frame is the per-tick singleton written by the owning scene before the
// systems run.
type Frame struct {
	Now     float64
	DtMs    float64
	PlayerX float64
	PlayerY float64
}

var FrameComponent = NewComponent[Frame]()

// LevelBounds is the world rectangle hazards are collected outside of.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()

// Boss marks the boss actor of a scene: the chase boss, the cutscene thief,
// or the encounter opponent.
type Boss struct {
	// Lag is the per-tick interpolation factor toward the chase target.
	Lag float64
}

var BossComponent = NewComponent[Boss]()

// Goal marks the level's goal object.
type Goal struct {
	EffectsStopped bool
}

var GoalComponent = NewComponent[Goal]()
