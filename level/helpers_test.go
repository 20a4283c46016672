package level

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bananarun/collision"
	"github.com/milk9111/bananarun/common"
	"github.com/milk9111/bananarun/content"
	"github.com/milk9111/bananarun/control"
	"github.com/milk9111/bananarun/notify"
	"github.com/milk9111/bananarun/settings"
	"github.com/rs/zerolog"
)

type fakePhysics struct {
	pos      cp.Vector
	vel      cp.Vector
	grounded bool
	gravity  float64
	paused   bool
}

func (f *fakePhysics) Position() cp.Vector     { return f.pos }
func (f *fakePhysics) SetPosition(p cp.Vector) { f.pos = p }
func (f *fakePhysics) Velocity() cp.Vector     { return f.vel }
func (f *fakePhysics) SetVelocity(v cp.Vector) { f.vel = v }
func (f *fakePhysics) Grounded() bool          { return f.grounded }
func (f *fakePhysics) SetGravity(y float64)    { f.gravity = y }
func (f *fakePhysics) Pause()                  { f.paused = true }
func (f *fakePhysics) Resume()                 { f.paused = false }

func ptr(v float64) *float64 { return &v }

func baseLevel(id string) *content.Level {
	return &content.Level{
		ID:          id,
		Name:        id,
		PlayerSpawn: content.Point{X: 200, Y: 900},
		Goal:        content.Rect{X: 3000, Y: 800, Width: 120, Height: 170},
		WorldWidth:  4000,
		WorldHeight: 1400,
		Checkpoints: []content.Checkpoint{
			{ID: "c1", X: 900, Y: 900, Spawn: content.Point{X: 900, Y: 880}},
			{ID: "c2", X: 1800, Y: 900, Spawn: content.Point{X: 1800, Y: 880}},
		},
		Springs: []content.Spring{
			{ID: "s1", X: 1200, Y: 950, LaunchX: ptr(-300), LaunchY: ptr(-500)},
		},
		GroundDanger: content.GroundDanger{Type: content.GroundLava},
	}
}

type fixture struct {
	rt      *Runtime
	phys    *fakePhysics
	hooks   *notify.Recorder
	store   *settings.Store
	catalog *content.Catalog
}

func newFixture(t *testing.T, lvl *content.Level, role settings.Role, mutate func(*settings.Snapshot)) *fixture {
	t.Helper()
	if lvl == nil {
		lvl = baseLevel("level-1")
	}
	levels := []*content.Level{lvl}
	if lvl.ID != "level-1" {
		levels = append(levels, baseLevel("level-1"))
	}
	if lvl.ID != "level-2" {
		levels = append(levels, baseLevel("level-2"))
	}
	cat := content.NewCatalog(levels, "level-1", map[settings.Role][]string{
		settings.RoleMonkey: {"level-1", "level-2"},
		settings.RoleSpud:   {"level-1", "level-2"},
	})

	snap := settings.Defaults()
	if mutate != nil {
		mutate(&snap)
	}
	f := &fixture{
		phys:    &fakePhysics{},
		hooks:   &notify.Recorder{},
		store:   settings.NewStore(snap),
		catalog: cat,
	}
	f.rt = Load(lvl.ID, role, Deps{
		Catalog:  cat,
		Settings: f.store,
		Physics:  f.phys,
		Hooks:    f.hooks,
		Logger:   zerolog.Nop(),
		Rand:     common.NewRand(7),
	})
	return f
}

func (f *fixture) playerBox() collision.Box {
	size := control.PlayerSize(f.rt.Role())
	return collision.Box{Group: collision.GroupPlayer, ID: "player", Center: f.phys.pos, Width: size.X, Height: size.Y}
}

// touch builds a player contact with the first collider of group (and id,
// when given).
func (f *fixture) touch(t *testing.T, group collision.Group, id string) collision.Contact {
	t.Helper()
	for _, b := range f.rt.Colliders() {
		if b.Group == group && (id == "" || b.ID == id) {
			return collision.Contact{A: f.playerBox(), B: b, Side: collision.SideTop}
		}
	}
	t.Fatalf("no collider %v %q", group, id)
	return collision.Contact{}
}

func (f *fixture) tick(dt float64, contacts ...collision.Contact) {
	f.rt.Tick(dt, controlIdle, contacts)
}

var controlIdle = control.State{}

var moveRight = control.State{MoveX: 1}

func unitSpeed(s *settings.Snapshot) { s.SpeedMultiplier = 1 }
