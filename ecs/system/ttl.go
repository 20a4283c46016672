package system

import (
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
)

// TTLSystem counts TTL components down by the frame delta and destroys
// entities whose time ran out.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	frame, ok := currentFrame(w)
	if !ok {
		return
	}

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Ms -= frame.DtMs
		if ttl.Ms > 0 {
			return
		}
		ecs.DestroyEntity(w, e)
	})
}
