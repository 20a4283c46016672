package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/bananarun/ecs/component"
)

type testPos struct{ X, Y float64 }
type testVel struct{ X, Y float64 }
type testTag struct{}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
		wantAlive    int
	}{
		{"single", 1, 0, 0},
		{"three_destroy_middle", 3, 1, 2},
		{"none_destroyed", 2, -1, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for a live entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
			}
			if got := len(Entities(w)); got != c.wantAlive {
				t.Fatalf("expected %d live entities, got %d", c.wantAlive, got)
			}
		})
	}
}

func TestStaleHandleAfterSlotReuse(t *testing.T) {
	w := NewWorld()
	pos := component.NewComponent[testPos]()

	old := CreateEntity(w)
	if err := Add(w, old, pos.Kind(), &testPos{X: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("reused slot must carry a new generation")
	}
	if _, ok := Get(w, old, pos.Kind()); ok {
		t.Fatalf("stale handle must not see components")
	}
	if _, ok := Get(w, fresh, pos.Kind()); ok {
		t.Fatalf("fresh entity must not inherit components of the destroyed one")
	}
	if err := Add(w, old, pos.Kind(), &testPos{}); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestAddValidation(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	tests := []struct {
		name string
		add  func() error
		want error
	}{
		{"nil_value", func() error { return Add[testPos](w, e, component.NewComponentKind[testPos](), nil) }, component.ErrNilComponent},
		{"zero_kind", func() error { return Add(w, e, component.ComponentKind[testPos]{}, &testPos{}) }, component.ErrInvalidComponentKind},
		{"ok", func() error { return Add(w, e, component.NewComponentKind[testPos](), &testPos{}) }, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.add(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestComponentsAndQueries(t *testing.T) {
	w := NewWorld()
	pos := component.NewComponent[testPos]()
	vel := component.NewComponent[testVel]()
	tag := component.NewComponent[testTag]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "get_returns_stored_pointer",
			setup: func() error { return Add(w, e1, pos.Kind(), &testPos{X: 10}) },
			check: func(t *testing.T) {
				p, ok := Get(w, e1, pos.Kind())
				if !ok || p.X != 10 {
					t.Fatalf("expected X=10, got %v ok=%v", p, ok)
				}
				p.X = 12
				again, _ := Get(w, e1, pos.Kind())
				if again.X != 12 {
					t.Fatalf("expected mutation through pointer to stick, got %v", again.X)
				}
			},
		},
		{
			name: "foreach2_intersection",
			setup: func() error {
				if err := Add(w, e2, pos.Kind(), &testPos{}); err != nil {
					return err
				}
				if err := Add(w, e2, vel.Kind(), &testVel{X: 3}); err != nil {
					return err
				}
				return Add(w, e3, vel.Kind(), &testVel{X: 4})
			},
			check: func(t *testing.T) {
				var got []Entity
				ForEach2(w, pos.Kind(), vel.Kind(), func(e Entity, _ *testPos, _ *testVel) { got = append(got, e) })
				if len(got) != 1 || got[0] != e2 {
					t.Fatalf("expected only e2, got %v", got)
				}
			},
		},
		{
			name: "remove_detaches",
			setup: func() error {
				return Add(w, e3, tag.Kind(), &testTag{})
			},
			check: func(t *testing.T) {
				if !Remove(w, e3, tag.Kind()) {
					t.Fatalf("expected Remove to report true")
				}
				if Has(w, e3, tag.Kind()) || Remove(w, e3, tag.Kind()) {
					t.Fatalf("tag should be gone")
				}
			},
		},
		{
			name:  "first_finds_singleton",
			setup: func() error { return Add(w, e1, tag.Kind(), &testTag{}) },
			check: func(t *testing.T) {
				e, ok := First(w, tag.Kind())
				if !ok || e != e1 {
					t.Fatalf("expected e1, got %v ok=%v", e, ok)
				}
				if Count(w, tag.Kind()) != 1 {
					t.Fatalf("expected one tagged entity")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestForEachToleratesDestroyDuringIteration(t *testing.T) {
	w := NewWorld()
	pos := component.NewComponent[testPos]()
	for i := 0; i < 5; i++ {
		e := CreateEntity(w)
		if err := Add(w, e, pos.Kind(), &testPos{X: float64(i)}); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	visited := 0
	ForEach(w, pos.Kind(), func(e Entity, p *testPos) {
		visited++
		if p.X < 3 {
			DestroyEntity(w, e)
		}
	})
	if visited != 5 {
		t.Fatalf("expected 5 visits, got %d", visited)
	}
	if got := Count(w, pos.Kind()); got != 2 {
		t.Fatalf("expected 2 survivors, got %d", got)
	}
}

func TestForEach3And4(t *testing.T) {
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()
	kd := component.NewComponentKind[int]()
	one := func() *int { v := 1; return &v }

	tests := []struct {
		name  string
		build func(w *World) Entity
		want3 bool
		want4 bool
	}{
		{
			name: "all_four",
			build: func(w *World) Entity {
				e := CreateEntity(w)
				_ = Add(w, e, ka, one())
				_ = Add(w, e, kb, one())
				_ = Add(w, e, kc, one())
				_ = Add(w, e, kd, one())
				return e
			},
			want3: true,
			want4: true,
		},
		{
			name: "three_only",
			build: func(w *World) Entity {
				e := CreateEntity(w)
				_ = Add(w, e, ka, one())
				_ = Add(w, e, kb, one())
				_ = Add(w, e, kc, one())
				return e
			},
			want3: true,
		},
		{
			name: "dead_entity",
			build: func(w *World) Entity {
				e := CreateEntity(w)
				_ = Add(w, e, ka, one())
				_ = Add(w, e, kb, one())
				_ = Add(w, e, kc, one())
				_ = Add(w, e, kd, one())
				DestroyEntity(w, e)
				return e
			},
		},
		{
			name: "missing_store",
			build: func(w *World) Entity {
				e := CreateEntity(w)
				_ = Add(w, e, ka, one())
				return e
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			tc.build(w)
			n3, n4 := 0, 0
			ForEach3(w, ka, kb, kc, func(Entity, *int, *int, *int) { n3++ })
			ForEach4(w, ka, kb, kc, kd, func(Entity, *int, *int, *int, *int) { n4++ })
			if (n3 == 1) != tc.want3 || (n4 == 1) != tc.want4 {
				t.Fatalf("ForEach3=%d ForEach4=%d, want3=%v want4=%v", n3, n4, tc.want3, tc.want4)
			}
		})
	}
}
