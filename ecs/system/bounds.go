package system

import (
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
)

// Margins past the level rectangle before a hazard is collected.
const (
	boundsMarginBottom = 120.0
	boundsMarginSide   = 100.0
)

// BoundsCleanupSystem destroys hazards that left the level.
type BoundsCleanupSystem struct{}

func NewBoundsCleanupSystem() *BoundsCleanupSystem {
	return &BoundsCleanupSystem{}
}

func (s *BoundsCleanupSystem) Update(w *ecs.World) {
	be, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, ok := ecs.Get(w, be, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.HazardComponent.Kind(), func(e ecs.Entity, t *component.Transform, _ *component.Hazard) {
		if t.Y > bounds.Height+boundsMarginBottom || t.X < -boundsMarginSide || t.X > bounds.Width+boundsMarginSide {
			ecs.DestroyEntity(w, e)
			w.Events().Push(ecs.Event{Type: ecs.EventDespawn, Entity: e, X: t.X, Y: t.Y})
		}
	})
}
