package system

import (
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
)

func currentFrame(w *ecs.World) (component.Frame, bool) {
	e, ok := ecs.First(w, component.FrameComponent.Kind())
	if !ok {
		return component.Frame{}, false
	}
	f, ok := ecs.Get(w, e, component.FrameComponent.Kind())
	if !ok || f == nil {
		return component.Frame{}, false
	}
	return *f, true
}

// SetFrame writes the per-tick singleton, creating it on first use.
func SetFrame(w *ecs.World, f component.Frame) {
	if w == nil {
		return
	}
	e, ok := ecs.First(w, component.FrameComponent.Kind())
	if !ok {
		e = ecs.CreateEntity(w)
	}
	_ = ecs.Add(w, e, component.FrameComponent.Kind(), &f)
}
