package system

import (
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
)

// TurretFacingSystem turns every turret toward the player.
type TurretFacingSystem struct{}

func NewTurretFacingSystem() *TurretFacingSystem {
	return &TurretFacingSystem{}
}

func (s *TurretFacingSystem) Update(w *ecs.World) {
	frame, ok := currentFrame(w)
	if !ok {
		return
	}
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.TurretComponent.Kind(), func(e ecs.Entity, t *component.Transform, tur *component.Turret) {
		tur.FacingLeft = frame.PlayerX < t.X
		if vis, ok := ecs.Get(w, e, component.VisualComponent.Kind()); ok {
			vis.FlipX = tur.FacingLeft
		}
	})
}
