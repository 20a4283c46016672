package component

import "github.com/milk9111/bananarun/common"

// TweenField selects which properties a tween drives.
type TweenField uint8

const (
	TweenX TweenField = 1 << iota
	TweenY
	TweenAlpha
	TweenScale

	TweenPosition = TweenX | TweenY
)

// Pose is the set of tweenable values.
type Pose struct {
	X     float64
	Y     float64
	Alpha float64
	Scale float64
}

// Tween interpolates Transform/Visual from From to To over DurationMs.
// Yoyo tweens run back to From and repeat forever.
type Tween struct {
	Fields     TweenField
	From       Pose
	To         Pose
	DurationMs float64
	ElapsedMs  float64
	Ease       common.Ease
	Yoyo       bool
	// HideOnDone hides the Visual when a one-shot tween completes.
	HideOnDone bool
	// DestroyOnDone destroys the entity when a one-shot tween completes.
	DestroyOnDone bool
}

var TweenComponent = NewComponent[Tween]()
