package system

import (
	"math"

	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
)

// PatrolSystem keeps patrol actors inside their bounds. The velocity sign
// flips exactly at a bound and the position is clamped onto it.
type PatrolSystem struct{}

func NewPatrolSystem() *PatrolSystem {
	return &PatrolSystem{}
}

func (s *PatrolSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	frame, _ := currentFrame(w)

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.VelocityComponent.Kind(), component.PatrolComponent.Kind(), func(e ecs.Entity, t *component.Transform, v *component.Velocity, p *component.Patrol) {
		speed := math.Abs(p.Speed)
		if t.X <= p.MinX {
			t.X = p.MinX
			v.X = speed
		}
		if t.X >= p.MaxX {
			t.X = p.MaxX
			v.X = -speed
		}

		if vis, ok := ecs.Get(w, e, component.VisualComponent.Kind()); ok {
			vis.FlipX = v.X < 0
		}
		if p.Bounce {
			p.Spin += v.X * (frame.DtMs / 1200)
		}
	})
}

// ReversePatrol flips a bouncing patrol after a side hit on a platform.
func ReversePatrol(w *ecs.World, e ecs.Entity) {
	p, ok := ecs.Get(w, e, component.PatrolComponent.Kind())
	if !ok || !p.Bounce {
		return
	}
	v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		return
	}
	v.X = -v.X
}
