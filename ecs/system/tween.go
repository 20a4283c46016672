package system

import (
	"math"

	"github.com/milk9111/bananarun/common"
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
)

// TweenSystem advances tweens and writes the eased pose back to Transform
// and Visual.
type TweenSystem struct{}

func NewTweenSystem() *TweenSystem {
	return &TweenSystem{}
}

func (s *TweenSystem) Update(w *ecs.World) {
	frame, ok := currentFrame(w)
	if !ok {
		return
	}

	ecs.ForEach(w, component.TweenComponent.Kind(), func(e ecs.Entity, tw *component.Tween) {
		tw.ElapsedMs += frame.DtMs
		done := false
		var p float64
		switch {
		case tw.DurationMs <= 0:
			p, done = 1, !tw.Yoyo
		case tw.Yoyo:
			cycle := math.Mod(tw.ElapsedMs, 2*tw.DurationMs)
			p = cycle / tw.DurationMs
			if p > 1 {
				p = 2 - p
			}
		default:
			p = tw.ElapsedMs / tw.DurationMs
			if p >= 1 {
				p, done = 1, true
			}
		}

		applyPose(w, e, tw, tw.Ease.Apply(p))
		if !done {
			return
		}

		if tw.DestroyOnDone {
			ecs.DestroyEntity(w, e)
			return
		}
		if tw.HideOnDone {
			if vis, ok := ecs.Get(w, e, component.VisualComponent.Kind()); ok {
				vis.Hidden = true
			}
		}
		ecs.Remove(w, e, component.TweenComponent.Kind())
	})
}

func applyPose(w *ecs.World, e ecs.Entity, tw *component.Tween, k float64) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		if tw.Fields&component.TweenX != 0 {
			t.X = common.Lerp(tw.From.X, tw.To.X, k)
		}
		if tw.Fields&component.TweenY != 0 {
			t.Y = common.Lerp(tw.From.Y, tw.To.Y, k)
		}
		if tw.Fields&component.TweenScale != 0 {
			t.ScaleX = common.Lerp(tw.From.Scale, tw.To.Scale, k)
			t.ScaleY = t.ScaleX
		}
	}
	if tw.Fields&component.TweenAlpha != 0 {
		if vis, ok := ecs.Get(w, e, component.VisualComponent.Kind()); ok {
			vis.Alpha = common.Lerp(tw.From.Alpha, tw.To.Alpha, k)
		}
	}
}

// StartTween replaces any running tween on e. From is taken from the
// entity's current pose.
func StartTween(w *ecs.World, e ecs.Entity, fields component.TweenField, to component.Pose, durationMs float64, ease common.Ease) *component.Tween {
	tw := &component.Tween{
		Fields:     fields,
		From:       CurrentPose(w, e),
		To:         to,
		DurationMs: durationMs,
		Ease:       ease,
	}
	if err := ecs.Add(w, e, component.TweenComponent.Kind(), tw); err != nil {
		return nil
	}
	return tw
}

// CurrentPose reads the tweenable values of e.
func CurrentPose(w *ecs.World, e ecs.Entity) component.Pose {
	pose := component.Pose{Alpha: 1, Scale: 1}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pose.X, pose.Y = t.X, t.Y
		if t.ScaleX != 0 {
			pose.Scale = t.ScaleX
		}
	}
	if vis, ok := ecs.Get(w, e, component.VisualComponent.Kind()); ok {
		pose.Alpha = vis.Alpha
	}
	return pose
}
