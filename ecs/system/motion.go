package system

import (
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
)

// MotionSystem integrates acceleration, gravity and velocity.
type MotionSystem struct {
	Gravity float64
}

func NewMotionSystem(gravity float64) *MotionSystem {
	return &MotionSystem{Gravity: gravity}
}

func (s *MotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	frame, ok := currentFrame(w)
	if !ok || frame.DtMs <= 0 {
		return
	}
	dt := frame.DtMs / 1000

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, t *component.Transform, v *component.Velocity) {
		if acc, ok := ecs.Get(w, e, component.AccelerationComponent.Kind()); ok {
			v.X += acc.X * dt
			v.Y += acc.Y * dt
		}
		if g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
			v.Y += s.Gravity * g.Scale * dt
			if g.MaxFall > 0 && v.Y > g.MaxFall {
				v.Y = g.MaxFall
			}
		}
		t.X += v.X * dt
		t.Y += v.Y * dt
	})
}
