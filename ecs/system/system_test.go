package system

import (
	"math"
	"testing"

	"github.com/milk9111/bananarun/common"
	"github.com/milk9111/bananarun/ecs"
	"github.com/milk9111/bananarun/ecs/component"
)

func newWorld(t *testing.T, dt float64) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	SetFrame(w, component.Frame{DtMs: dt})
	return w
}

func spawn(t *testing.T, w *ecs.World, x, y, vx, vy float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: vx, Y: vy}); err != nil {
		t.Fatalf("add velocity: %v", err)
	}
	return e
}

func TestMotionSystem(t *testing.T) {
	w := newWorld(t, 500)
	plain := spawn(t, w, 0, 0, 100, 0)
	falling := spawn(t, w, 0, 0, 0, 10)
	_ = ecs.Add(w, falling, component.AccelerationComponent.Kind(), &component.Acceleration{Y: 20})
	_ = ecs.Add(w, falling, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 1})

	w.Update(NewMotionSystem(100))

	pt, _ := ecs.Get(w, plain, component.TransformComponent.Kind())
	if pt.X != 50 || pt.Y != 0 {
		t.Fatalf("plain moved to (%v,%v), want (50,0)", pt.X, pt.Y)
	}
	fv, _ := ecs.Get(w, falling, component.VelocityComponent.Kind())
	if fv.Y != 10+10+50 {
		t.Fatalf("falling vy = %v, want 70", fv.Y)
	}
}

func TestPatrolFlipsAtBounds(t *testing.T) {
	tests := []struct {
		name   string
		x      float64
		vx     float64
		wantX  float64
		wantVX float64
	}{
		{"inside", 150, 60, 150, 60},
		{"at_min", 100, -60, 100, 60},
		{"past_min", 90, -60, 100, 60},
		{"at_max", 200, 60, 200, -60},
		{"past_max", 230, 60, 200, -60},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld(t, 16)
			e := spawn(t, w, tc.x, 0, tc.vx, 0)
			_ = ecs.Add(w, e, component.PatrolComponent.Kind(), &component.Patrol{MinX: 100, MaxX: 200, Speed: 60})

			w.Update(NewPatrolSystem())

			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
			if tr.X != tc.wantX || v.X != tc.wantVX {
				t.Fatalf("got x=%v vx=%v, want x=%v vx=%v", tr.X, v.X, tc.wantX, tc.wantVX)
			}
		})
	}
}

func TestPatrolStaysInBoundsOverTime(t *testing.T) {
	w := newWorld(t, 16)
	e := spawn(t, w, 150, 0, 90, 0)
	_ = ecs.Add(w, e, component.PatrolComponent.Kind(), &component.Patrol{MinX: 100, MaxX: 200, Speed: 90})
	motion, patrol := NewMotionSystem(0), NewPatrolSystem()

	for i := 0; i < 600; i++ {
		w.Update(motion, patrol)
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if tr.X < 100 || tr.X > 200 {
			t.Fatalf("tick %d: x=%v left [100,200]", i, tr.X)
		}
	}
}

func TestReversePatrolOnlyBounces(t *testing.T) {
	w := newWorld(t, 16)
	boulder := spawn(t, w, 0, 0, 50, 0)
	snail := spawn(t, w, 0, 0, 50, 0)
	_ = ecs.Add(w, boulder, component.PatrolComponent.Kind(), &component.Patrol{Bounce: true})
	_ = ecs.Add(w, snail, component.PatrolComponent.Kind(), &component.Patrol{})

	ReversePatrol(w, boulder)
	ReversePatrol(w, snail)

	if v, _ := ecs.Get(w, boulder, component.VelocityComponent.Kind()); v.X != -50 {
		t.Fatalf("boulder vx = %v, want -50", v.X)
	}
	if v, _ := ecs.Get(w, snail, component.VelocityComponent.Kind()); v.X != 50 {
		t.Fatalf("snail vx = %v, want 50", v.X)
	}
}

func TestTurretFacing(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 100})
	_ = ecs.Add(w, e, component.TurretComponent.Kind(), &component.Turret{})

	for _, tc := range []struct {
		playerX  float64
		wantLeft bool
	}{{50, true}, {100, false}, {150, false}} {
		SetFrame(w, component.Frame{PlayerX: tc.playerX})
		w.Update(NewTurretFacingSystem())
		tur, _ := ecs.Get(w, e, component.TurretComponent.Kind())
		if tur.FacingLeft != tc.wantLeft {
			t.Fatalf("playerX=%v: FacingLeft=%v, want %v", tc.playerX, tur.FacingLeft, tc.wantLeft)
		}
	}
}

func TestTTLSystem(t *testing.T) {
	w := newWorld(t, 100)
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Ms: 250})

	ttl := NewTTLSystem()
	w.Update(ttl)
	w.Update(ttl)
	if !ecs.IsAlive(w, e) {
		t.Fatalf("entity destroyed early")
	}
	w.Update(ttl)
	if ecs.IsAlive(w, e) {
		t.Fatalf("entity should expire after 300ms")
	}
}

func TestTween(t *testing.T) {
	t.Run("one_shot_hides", func(t *testing.T) {
		w := newWorld(t, 50)
		e := spawn(t, w, 0, 0, 0, 0)
		_ = ecs.Add(w, e, component.VisualComponent.Kind(), &component.Visual{Alpha: 1})
		tw := StartTween(w, e, component.TweenPosition|component.TweenAlpha, component.Pose{X: 100, Y: -40, Alpha: 0}, 100, common.EaseLinear)
		tw.HideOnDone = true

		w.Update(NewTweenSystem())
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if tr.X != 50 || tr.Y != -20 {
			t.Fatalf("halfway pose = (%v,%v), want (50,-20)", tr.X, tr.Y)
		}
		w.Update(NewTweenSystem())
		vis, _ := ecs.Get(w, e, component.VisualComponent.Kind())
		if !vis.Hidden || vis.Alpha != 0 {
			t.Fatalf("expected hidden with alpha 0, got %+v", *vis)
		}
		if ecs.Has(w, e, component.TweenComponent.Kind()) {
			t.Fatalf("finished tween should be removed")
		}
	})

	t.Run("yoyo_returns", func(t *testing.T) {
		w := newWorld(t, 100)
		e := spawn(t, w, 0, 0, 0, 0)
		StartTween(w, e, component.TweenY, component.Pose{Y: 10}, 100, common.EaseLinear).Yoyo = true

		sys := NewTweenSystem()
		w.Update(sys)
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if tr.Y != 10 {
			t.Fatalf("peak y = %v, want 10", tr.Y)
		}
		w.Update(sys)
		if math.Abs(tr.Y) > 1e-9 {
			t.Fatalf("yoyo y = %v, want 0", tr.Y)
		}
		if !ecs.Has(w, e, component.TweenComponent.Kind()) {
			t.Fatalf("yoyo tween should keep running")
		}
	})
}

func TestBoundsCleanup(t *testing.T) {
	tests := []struct {
		name      string
		x, y      float64
		wantAlive bool
	}{
		{"inside", 500, 500, true},
		{"below", 500, 1121, false},
		{"bottom_margin", 500, 1120, true},
		{"left", -101, 0, false},
		{"right", 2101, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld(t, 16)
			b := ecs.CreateEntity(w)
			_ = ecs.Add(w, b, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 2000, Height: 1000})
			e := spawn(t, w, tc.x, tc.y, 0, 0)
			_ = ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{Kind: component.HazardDrop})

			w.Update(NewBoundsCleanupSystem())

			if ecs.IsAlive(w, e) != tc.wantAlive {
				t.Fatalf("alive = %v, want %v", !tc.wantAlive, tc.wantAlive)
			}
			if !tc.wantAlive && len(w.Events().Drain()) != 1 {
				t.Fatalf("expected one despawn event")
			}
		})
	}
}
