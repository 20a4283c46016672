package component

// Transform is an entity's world position. Positions are centers; y grows
// downward.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

var TransformComponent = NewComponent[Transform]()

// Visual carries the draw state the host needs beyond position.
type Visual struct {
	Alpha  float64
	Hidden bool
	FlipX  bool
	// FlashUntil tints the entity until the given clock time.
	FlashUntil float64
}

var VisualComponent = NewComponent[Visual]()
